// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package aiassist

import (
	"errors"
	"fmt"
)

// Operation names an AI feature.
type Operation string

const (
	OperationClassify  Operation = "classify"
	OperationSummarize Operation = "summarize"
	OperationSuggest   Operation = "suggest_assignee"
)

// AIUnavailableError reports that an AI feature produced no usable
// result. Err is the underlying cause, nil when the service answered
// with an empty result.
type AIUnavailableError struct {
	Operation Operation
	Err       error
}

func (err *AIUnavailableError) Error() string {
	if err.Err == nil {
		return fmt.Sprintf("aiassist: %s returned no result", err.Operation)
	}
	return fmt.Sprintf("aiassist: %s: %v", err.Operation, err.Err)
}

func (err *AIUnavailableError) Unwrap() error {
	return err.Err
}

// Notice returns the dismissible message shown to the user.
func (err *AIUnavailableError) Notice() string {
	switch err.Operation {
	case OperationClassify:
		return "AI classification failed. Please classify manually."
	case OperationSummarize:
		return "AI summary failed. Please try again later."
	case OperationSuggest:
		return "AI assignment suggestion failed. Please assign manually."
	default:
		return "AI assistance is unavailable."
	}
}

// IsAIUnavailable reports whether err is or wraps an
// *AIUnavailableError.
func IsAIUnavailable(err error) bool {
	var unavailable *AIUnavailableError
	return errors.As(err, &unavailable)
}

// NoticeFor returns the user-facing notice when err is an
// *AIUnavailableError, and the empty string otherwise.
func NoticeFor(err error) string {
	var unavailable *AIUnavailableError
	if errors.As(err, &unavailable) {
		return unavailable.Notice()
	}
	return ""
}
