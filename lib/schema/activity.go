// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "time"

// ActionType is the kind of event an Activity records.
type ActionType string

const (
	ActionTicketCreated   ActionType = "ticket_created"
	ActionTicketUpdated   ActionType = "ticket_updated"
	ActionTicketDeleted   ActionType = "ticket_deleted"
	ActionStatusChanged   ActionType = "status_changed"
	ActionPriorityChanged ActionType = "priority_changed"
	ActionAssigned        ActionType = "assigned"
	ActionUnassigned      ActionType = "unassigned"
	ActionCommentAdded    ActionType = "comment_added"
	ActionProjectCreated  ActionType = "project_created"
	ActionMemberAdded     ActionType = "member_added"
	ActionMemberRemoved   ActionType = "member_removed"
)

// ActionTypes returns every known action type.
func ActionTypes() []ActionType {
	return []ActionType{
		ActionTicketCreated, ActionTicketUpdated, ActionTicketDeleted,
		ActionStatusChanged, ActionPriorityChanged, ActionAssigned,
		ActionUnassigned, ActionCommentAdded, ActionProjectCreated,
		ActionMemberAdded, ActionMemberRemoved,
	}
}

// IsKnown reports whether action is one of the defined action types.
func (action ActionType) IsKnown() bool {
	for _, known := range ActionTypes() {
		if action == known {
			return true
		}
	}
	return false
}

// Activity is an immutable, server-generated audit record. The client
// only ever reads activities.
//
// The ticket and project references are weak: an identifier plus the
// title or name cached at the time the event was recorded. They never
// own or point into the referenced entity, so a renamed or deleted
// ticket leaves its history readable.
type Activity struct {
	ID          int        `json:"id"`
	ActionType  ActionType `json:"action_type"`
	User        User       `json:"user"`
	Description string     `json:"description"`

	// TicketID is nil when the event concerns no ticket.
	TicketID    *int   `json:"ticket"`
	TicketTitle string `json:"ticket_title,omitempty"`

	// ProjectID is nil when the event concerns no project.
	ProjectID   *int   `json:"project"`
	ProjectName string `json:"project_name,omitempty"`

	// Metadata carries event-specific details, for example old_status
	// and new_status on status_changed.
	Metadata map[string]any `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
