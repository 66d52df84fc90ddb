// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"net/http"

	"github.com/swiftticket/swiftticket/cmd/swiftticket/cli"
	"github.com/swiftticket/swiftticket/lib/aiassist"
	"github.com/swiftticket/swiftticket/lib/authorization"
	"github.com/swiftticket/swiftticket/lib/schema"
	"github.com/swiftticket/swiftticket/lib/tracker"
)

const loginHint = "Run 'swiftticket login <username>' or set SWIFTTICKET_TOKEN."

// classify maps library errors onto CLI error categories. AI failures
// are checked first because they wrap the transport error that caused
// them.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var toolError *cli.ToolError
	if errors.As(err, &toolError) {
		return err
	}
	var exitError *cli.ExitError
	if errors.As(err, &exitError) {
		return err
	}

	var (
		category cli.ErrorCategory
		hint     string
	)
	switch {
	case aiassist.IsAIUnavailable(err):
		category = cli.CategoryUnavailable
		hint = aiassist.NoticeFor(err)
	case authorization.IsAuthorization(err):
		category = cli.CategoryForbidden
	case schema.IsValidation(err):
		category = cli.CategoryValidation
	case tracker.IsUnauthorized(err):
		category = cli.CategoryForbidden
		hint = loginHint
	case tracker.IsForbidden(err):
		category = cli.CategoryForbidden
	case tracker.IsNotFound(err):
		category = cli.CategoryNotFound
	case tracker.IsBadRequest(err):
		category = cli.CategoryValidation
	case tracker.StatusCode(err) == http.StatusConflict:
		category = cli.CategoryConflict
	case tracker.IsTransport(err), errors.Is(err, context.DeadlineExceeded):
		category = cli.CategoryTransient
	default:
		return err
	}
	return &cli.ToolError{Category: category, Err: err, Hint: hint}
}
