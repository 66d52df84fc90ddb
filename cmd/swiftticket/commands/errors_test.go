// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/swiftticket/swiftticket/cmd/swiftticket/cli"
	"github.com/swiftticket/swiftticket/lib/aiassist"
	"github.com/swiftticket/swiftticket/lib/authorization"
	"github.com/swiftticket/swiftticket/lib/schema"
	"github.com/swiftticket/swiftticket/lib/tracker"
)

func apiFailure(status int) error {
	return &tracker.TransportError{
		Method: http.MethodGet,
		Path:   "/tickets/1/",
		Err:    &tracker.APIError{StatusCode: status, Message: http.StatusText(status)},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantHint string
	}{
		{
			name:     "ai_unavailable_wrapping_transport",
			err:      &aiassist.AIUnavailableError{Operation: aiassist.OperationSummarize, Err: apiFailure(http.StatusInternalServerError)},
			wantCode: 5,
			wantHint: "AI summary failed",
		},
		{
			name:     "authorization",
			err:      fmt.Errorf("workflow: %w", &authorization.AuthorizationError{Role: schema.RoleDeveloper, Action: authorization.ActionReassignTicket}),
			wantCode: 3,
		},
		{name: "validation", err: schema.Invalid("title", "title is required"), wantCode: 2},
		{name: "unauthorized", err: apiFailure(http.StatusUnauthorized), wantCode: 3, wantHint: "swiftticket login"},
		{name: "forbidden", err: apiFailure(http.StatusForbidden), wantCode: 3},
		{name: "not_found", err: apiFailure(http.StatusNotFound), wantCode: 1},
		{name: "bad_request", err: apiFailure(http.StatusBadRequest), wantCode: 2},
		{name: "conflict", err: apiFailure(http.StatusConflict), wantCode: 1},
		{name: "server_error", err: apiFailure(http.StatusBadGateway), wantCode: 4},
		{name: "connection_refused", err: &tracker.TransportError{Method: http.MethodGet, Path: "/projects/", Err: errors.New("connection refused")}, wantCode: 4},
		{name: "deadline", err: fmt.Errorf("loading: %w", context.DeadlineExceeded), wantCode: 4},
		{name: "unclassified", err: errors.New("boom"), wantCode: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			classified := classify(test.err)
			if code := cli.ExitCodeFor(classified); code != test.wantCode {
				t.Errorf("ExitCodeFor(classify(%v)) = %d, want %d", test.err, code, test.wantCode)
			}
			if !errors.Is(classified, test.err) {
				t.Errorf("classified error %v does not wrap the original", classified)
			}
			if test.wantHint != "" && !strings.Contains(classified.Error(), test.wantHint) {
				t.Errorf("classified error %q missing hint %q", classified.Error(), test.wantHint)
			}
		})
	}
}

func TestClassifyPassesToolErrorsThrough(t *testing.T) {
	original := cli.NotFound("ticket %d not found", 9)
	if classified := classify(original); classified != error(original) {
		t.Errorf("classify changed an existing ToolError: %v", classified)
	}
	if classify(nil) != nil {
		t.Error("classify(nil) should be nil")
	}
}
