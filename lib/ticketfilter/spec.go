// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketfilter

import (
	"fmt"

	"github.com/swiftticket/swiftticket/lib/schema"
)

// Scope constrains tickets by assignee relative to the session user.
type Scope string

const (
	// ScopeAll applies no assignee constraint. The zero Scope behaves
	// the same way.
	ScopeAll Scope = "all"

	// ScopeMe keeps tickets assigned to the session user.
	ScopeMe Scope = "me"

	// ScopeUnassigned keeps tickets with no assignee.
	ScopeUnassigned Scope = "unassigned"
)

// Scopes returns the defined scopes in display order.
func Scopes() []Scope {
	return []Scope{ScopeAll, ScopeMe, ScopeUnassigned}
}

// ParseScope converts a flag or query value into a Scope. The empty
// string maps to ScopeAll.
func ParseScope(value string) (Scope, error) {
	switch Scope(value) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeMe, ScopeUnassigned:
		return Scope(value), nil
	default:
		return "", schema.Invalid("assigned_to", "unknown scope %q (want all, me, or unassigned)", value)
	}
}

// Spec is a set of constraints combined with AND. Zero-valued fields
// impose no constraint, so the zero Spec is the identity filter.
type Spec struct {
	// Search is matched case-insensitively as a substring of the
	// ticket's title or description.
	Search string

	// Status, when non-empty, must equal the ticket's status exactly.
	Status schema.Status

	// Priority, when non-empty, must equal the ticket's priority.
	Priority schema.Priority

	// Project, when non-zero, must equal the ticket's project ID.
	Project int

	// AssignedTo selects by assignee.
	AssignedTo Scope
}

// Clear returns the identity spec.
func (spec Spec) Clear() Spec {
	return Spec{}
}

// IsIdentity reports whether spec imposes no constraint.
func (spec Spec) IsIdentity() bool {
	return spec.Search == "" &&
		spec.Status == "" &&
		spec.Priority == "" &&
		spec.Project == 0 &&
		(spec.AssignedTo == "" || spec.AssignedTo == ScopeAll)
}

// Validate rejects enum values outside the closed sets. Search and
// Project are free-form.
func (spec Spec) Validate() error {
	if spec.Status != "" && !spec.Status.IsKnown() {
		return schema.Invalid("status", "invalid status %q", spec.Status)
	}
	if spec.Priority != "" && !spec.Priority.IsKnown() {
		return schema.Invalid("priority", "invalid priority %q", spec.Priority)
	}
	if spec.Project < 0 {
		return schema.Invalid("project", "project id must not be negative")
	}
	if _, err := ParseScope(string(spec.AssignedTo)); err != nil {
		return err
	}
	return nil
}

// String renders the active constraints for log lines.
func (spec Spec) String() string {
	if spec.IsIdentity() {
		return "all tickets"
	}
	var description string
	add := func(part string) {
		if description != "" {
			description += " "
		}
		description += part
	}
	if spec.Search != "" {
		add(fmt.Sprintf("search=%q", spec.Search))
	}
	if spec.Status != "" {
		add("status=" + string(spec.Status))
	}
	if spec.Priority != "" {
		add("priority=" + string(spec.Priority))
	}
	if spec.Project != 0 {
		add(fmt.Sprintf("project=%d", spec.Project))
	}
	if spec.AssignedTo != "" && spec.AssignedTo != ScopeAll {
		add("assigned=" + string(spec.AssignedTo))
	}
	return description
}
