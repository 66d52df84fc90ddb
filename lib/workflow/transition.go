// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import "github.com/swiftticket/swiftticket/lib/schema"

// ValidateTransition checks that a ticket in status from may be moved
// to status to. Any workflow state may be reached from any other,
// including from a status the client does not recognize. The target
// must be a workflow state.
func ValidateTransition(from, to schema.Status) error {
	if to == "" {
		return schema.Invalid("status", "target status is required")
	}
	if !to.IsKnown() {
		return schema.Invalid("status", "invalid status %q", to)
	}
	return nil
}

// Targets returns the statuses a ticket in status from can be moved
// to, in display order. The current status is excluded because moving
// to it is a no-op.
func Targets(from schema.Status) []schema.Status {
	var targets []schema.Status
	for _, status := range schema.Statuses() {
		if status == from {
			continue
		}
		if ValidateTransition(from, status) == nil {
			targets = append(targets, status)
		}
	}
	return targets
}
