// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package authorization

import "github.com/swiftticket/swiftticket/lib/schema"

// Action is a permission-checked operation.
type Action string

const (
	// ActionCreateProject creates a new project.
	ActionCreateProject Action = "create_project"

	// ActionManageProjectMembers adds or removes project members.
	ActionManageProjectMembers Action = "manage_project_members"

	// ActionCreateTicket creates a ticket in a project.
	ActionCreateTicket Action = "create_ticket"

	// ActionEditTicket changes title, description, type, priority or
	// component.
	ActionEditTicket Action = "edit_ticket"

	// ActionChangeTicketStatus moves a ticket through the workflow.
	ActionChangeTicketStatus Action = "change_ticket_status"

	// ActionReassignTicket changes or clears a ticket's assignee.
	ActionReassignTicket Action = "reassign_ticket"

	// ActionUseAIFeatures covers classification, summarization and
	// assignee suggestion.
	ActionUseAIFeatures Action = "use_ai_features"
)

// Actions returns every action in matrix row order.
func Actions() []Action {
	return []Action{
		ActionCreateProject,
		ActionManageProjectMembers,
		ActionCreateTicket,
		ActionEditTicket,
		ActionChangeTicketStatus,
		ActionReassignTicket,
		ActionUseAIFeatures,
	}
}

// IsKnown reports whether action is part of the matrix.
func (action Action) IsKnown() bool {
	_, exists := matrix[action]
	return exists
}

// matrix is the permission table. A role absent from an action's set
// is denied.
var matrix = map[Action]map[schema.Role]bool{
	ActionCreateProject: {
		schema.RoleAdmin:          true,
		schema.RoleProjectManager: true,
	},
	ActionManageProjectMembers: {
		schema.RoleAdmin:          true,
		schema.RoleProjectManager: true,
	},
	ActionCreateTicket: {
		schema.RoleAdmin:          true,
		schema.RoleProjectManager: true,
	},
	ActionEditTicket: {
		schema.RoleAdmin:          true,
		schema.RoleProjectManager: true,
	},
	ActionChangeTicketStatus: {
		schema.RoleAdmin:     true,
		schema.RoleDeveloper: true,
	},
	ActionReassignTicket: {
		schema.RoleAdmin:          true,
		schema.RoleProjectManager: true,
	},
	ActionUseAIFeatures: {
		schema.RoleAdmin:          true,
		schema.RoleProjectManager: true,
	},
}

// Can reports whether role may perform action.
func Can(role schema.Role, action Action) bool {
	return matrix[action][role]
}

// CanCreateProject reports whether role may create projects.
func CanCreateProject(role schema.Role) bool { return Can(role, ActionCreateProject) }

// CanManageProjectMembers reports whether role may add and remove
// project members.
func CanManageProjectMembers(role schema.Role) bool {
	return Can(role, ActionManageProjectMembers)
}

// CanCreateTicket reports whether role may create tickets.
func CanCreateTicket(role schema.Role) bool { return Can(role, ActionCreateTicket) }

// CanEditTicket reports whether role may edit ticket fields.
func CanEditTicket(role schema.Role) bool { return Can(role, ActionEditTicket) }

// CanChangeTicketStatus reports whether role may change ticket status.
func CanChangeTicketStatus(role schema.Role) bool { return Can(role, ActionChangeTicketStatus) }

// CanReassignTicket reports whether role may change ticket assignees.
func CanReassignTicket(role schema.Role) bool { return Can(role, ActionReassignTicket) }

// CanUseAIFeatures reports whether role may invoke the AI assistant.
func CanUseAIFeatures(role schema.Role) bool { return Can(role, ActionUseAIFeatures) }

// AssignableRoles returns the roles a ticket assignee may hold.
func AssignableRoles() []schema.Role {
	return []schema.Role{schema.RoleDeveloper, schema.RoleAdmin}
}

// MemberCandidateRoles returns the roles offered when adding project
// members.
func MemberCandidateRoles() []schema.Role {
	return []schema.Role{schema.RoleDeveloper, schema.RoleProjectManager}
}
