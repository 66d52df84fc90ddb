// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"strings"
	"time"
)

// Ticket is a unit of work tracked through the status workflow within
// a project.
//
// A fetched Ticket is a value owned by the view that fetched it. The
// workflow and filter packages never mutate a Ticket in place; they
// return modified copies.
type Ticket struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        TicketType `json:"ticket_type"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`

	// Component is empty when the ticket has none.
	Component Component `json:"component,omitempty"`

	// Project is required and immutable after creation.
	Project Project `json:"project"`

	// CreatedBy is immutable.
	CreatedBy User `json:"created_by"`

	// AssignedTo is nil when the ticket is unassigned. When set, the
	// user's role is developer or admin.
	AssignedTo *User `json:"assigned_to"`

	// Summary is the AI-generated digest of the description. Empty
	// until a summarization succeeds.
	Summary string `json:"summary,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAssigned reports whether the ticket has an assignee.
func (ticket Ticket) IsAssigned() bool {
	return ticket.AssignedTo != nil
}

// IsAssignedTo reports whether the ticket's assignee is userID.
func (ticket Ticket) IsAssignedTo(userID int) bool {
	return ticket.AssignedTo != nil && ticket.AssignedTo.ID == userID
}

// AssigneeName returns the assignee's display name, or "Unassigned".
func (ticket Ticket) AssigneeName() string {
	if ticket.AssignedTo == nil {
		return "Unassigned"
	}
	return ticket.AssignedTo.DisplayName()
}

// HasSummary reports whether a non-blank summary is stored.
func (ticket Ticket) HasSummary() bool {
	return strings.TrimSpace(ticket.Summary) != ""
}

// ValidateAssignee checks the assignment invariant for user.
func ValidateAssignee(user User) error {
	if !user.IsAssignable() {
		return Invalid("assigned_to_id", "%s has role %s; only developers and admins can be assigned tickets",
			user.Username, user.Role)
	}
	return nil
}
