// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError represents a non-2xx response from the server. The backend
// reports errors in three shapes: {"error": "..."} from custom
// actions, {"detail": "..."} from the framework's permission and
// authentication layer, and field maps such as
// {"title": ["This field is required."]} from serializer validation.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Message is the top-level error description. For field-map
	// responses it summarizes the first field error.
	Message string

	// Fields holds per-field validation messages keyed by JSON field
	// name. Errors not tied to a field appear under
	// "non_field_errors".
	Fields map[string][]string
}

func (err *APIError) Error() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "HTTP %d", err.StatusCode)
	if err.Message != "" {
		fmt.Fprintf(&builder, ": %s", err.Message)
	}
	for _, field := range err.fieldNames() {
		fmt.Fprintf(&builder, "; %s: %s", field, strings.Join(err.Fields[field], " "))
	}
	return builder.String()
}

func (err *APIError) fieldNames() []string {
	names := make([]string, 0, len(err.Fields))
	for name := range err.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseAPIErrorFromBody builds an APIError from a status code and
// response body. Bodies that are not JSON are used verbatim as the
// message; an empty body falls back to the status text.
func parseAPIErrorFromBody(statusCode int, body []byte) *APIError {
	apiError := &APIError{StatusCode: statusCode}

	var wire map[string]json.RawMessage
	if json.Unmarshal(body, &wire) != nil {
		apiError.Message = strings.TrimSpace(string(body))
		if apiError.Message == "" {
			apiError.Message = http.StatusText(statusCode)
		}
		return apiError
	}

	for _, key := range []string{"error", "detail", "message"} {
		if raw, ok := wire[key]; ok {
			if messages := decodeMessages(raw); len(messages) > 0 {
				apiError.Message = messages[0]
			}
			delete(wire, key)
			break
		}
	}

	for field, raw := range wire {
		messages := decodeMessages(raw)
		if len(messages) == 0 {
			continue
		}
		if apiError.Fields == nil {
			apiError.Fields = make(map[string][]string)
		}
		apiError.Fields[field] = messages
	}

	if apiError.Message == "" {
		if names := apiError.fieldNames(); len(names) > 0 {
			apiError.Message = fmt.Sprintf("%s: %s", names[0], apiError.Fields[names[0]][0])
		} else {
			apiError.Message = http.StatusText(statusCode)
		}
	}
	return apiError
}

// decodeMessages accepts a string, a list of strings, or anything else
// JSON (rendered compactly).
func decodeMessages(raw json.RawMessage) []string {
	var single string
	if json.Unmarshal(raw, &single) == nil {
		if single == "" {
			return nil
		}
		return []string{single}
	}
	var many []string
	if json.Unmarshal(raw, &many) == nil {
		return many
	}
	var nested any
	if json.Unmarshal(raw, &nested) == nil {
		if encoded, err := json.Marshal(nested); err == nil {
			return []string{string(encoded)}
		}
	}
	return nil
}

// TransportError reports a request that did not produce a usable
// response: the connection failed, the server returned a non-2xx
// status, or the body did not decode.
type TransportError struct {
	Method string
	Path   string

	// RequestID is the X-Request-ID sent with the request. Empty for
	// decode failures detected after the exchange completed.
	RequestID string

	Err error
}

func (err *TransportError) Error() string {
	return fmt.Sprintf("tracker: %s %s: %v", err.Method, err.Path, err.Err)
}

func (err *TransportError) Unwrap() error {
	return err.Err
}

// IsTransport reports whether err is or wraps a *TransportError.
func IsTransport(err error) bool {
	var transportError *TransportError
	return errors.As(err, &transportError)
}

// StatusCode returns the HTTP status of an API error in err's chain,
// or zero when err carries none.
func StatusCode(err error) int {
	var apiError *APIError
	if errors.As(err, &apiError) {
		return apiError.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsForbidden reports whether err is a 403 response.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsUnauthorized reports whether err is a 401 response, meaning the
// token is missing, expired, or the credentials were rejected.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsBadRequest reports whether err is a 400 response.
func IsBadRequest(err error) bool {
	return StatusCode(err) == http.StatusBadRequest
}
