// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies command errors so that scripts can react to
// the failure (fix input, log in again, retry later) without parsing
// error text. Each category maps to a process exit code.
type ErrorCategory string

const (
	// CategoryValidation indicates invalid input: missing arguments,
	// unparseable IDs, values outside a closed set, or a payload the
	// server rejected field by field.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced ticket, project or user
	// does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden indicates the signed-in role may not perform
	// the action, or the server refused the token.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryConflict indicates the operation conflicts with existing
	// state, such as removing a project's creator.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryTransient indicates the server could not be reached or
	// answered with a server error. Retrying may help.
	CategoryTransient ErrorCategory = "transient"

	// CategoryUnavailable indicates an AI-assist feature failed. The
	// rest of the tracker keeps working.
	CategoryUnavailable ErrorCategory = "unavailable"

	// CategoryInternal indicates an unexpected failure.
	CategoryInternal ErrorCategory = "internal"
)

// ExitCode returns the process exit code for the category.
func (category ErrorCategory) ExitCode() int {
	switch category {
	case CategoryValidation:
		return 2
	case CategoryForbidden:
		return 3
	case CategoryTransient:
		return 4
	case CategoryUnavailable:
		return 5
	default:
		return 1
	}
}

// ToolError is a categorized error returned by commands. It wraps the
// inner error, so errors.Is and errors.As see the full chain.
type ToolError struct {
	Category ErrorCategory
	Err      error

	// Hint is an optional next step printed after the message.
	Hint string
}

// Error returns the underlying message, followed by the hint when set.
func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

func (e *ToolError) Unwrap() error { return e.Err }

// WithHint sets the hint and returns the receiver for chaining.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Forbidden creates a forbidden error.
func Forbidden(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error.
func Conflict(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Unavailable creates an AI-unavailable error.
func Unavailable(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryUnavailable, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// ExitCodeFor returns the exit code for err: the code of the first
// [ToolError] in its chain, or 1.
func ExitCodeFor(err error) int {
	var toolError *ToolError
	if errors.As(err, &toolError) {
		return toolError.Category.ExitCode()
	}
	return 1
}
