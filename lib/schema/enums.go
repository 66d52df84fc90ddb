// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// Role determines which actions a user may perform. See the
// authorization package for the permission matrix.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleProjectManager Role = "project_manager"
	RoleDeveloper      Role = "developer"
)

// Roles returns every known role in matrix column order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleProjectManager, RoleDeveloper}
}

// IsKnown reports whether role is one of the defined roles.
func (role Role) IsKnown() bool {
	switch role {
	case RoleAdmin, RoleProjectManager, RoleDeveloper:
		return true
	}
	return false
}

// Label returns the display form of the role.
func (role Role) Label() string {
	switch role {
	case RoleAdmin:
		return "Admin"
	case RoleProjectManager:
		return "Project Manager"
	case RoleDeveloper:
		return "Developer"
	default:
		return string(role)
	}
}

// TicketType classifies the kind of work a ticket represents.
type TicketType string

const (
	TypeBug         TicketType = "bug"
	TypeFeature     TicketType = "feature"
	TypeImprovement TicketType = "improvement"
	TypeTask        TicketType = "task"
)

// TicketTypes returns every known ticket type.
func TicketTypes() []TicketType {
	return []TicketType{TypeBug, TypeFeature, TypeImprovement, TypeTask}
}

// IsKnown reports whether ticketType is one of the defined types.
func (ticketType TicketType) IsKnown() bool {
	switch ticketType {
	case TypeBug, TypeFeature, TypeImprovement, TypeTask:
		return true
	}
	return false
}

// Priority is the urgency of a ticket.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities returns every known priority, lowest first.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// IsKnown reports whether priority is one of the defined priorities.
func (priority Priority) IsKnown() bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Rank orders priorities for sorting: critical is 0, low is 3, unknown
// values sort last at 4.
func (priority Priority) Rank() int {
	switch priority {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Status is a ticket's position in the workflow.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusInReview   Status = "in_review"
	StatusDone       Status = "done"
)

// Statuses returns every workflow state in display order.
func Statuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusInReview, StatusDone}
}

// IsKnown reports whether status is one of the workflow states.
func (status Status) IsKnown() bool {
	switch status {
	case StatusOpen, StatusInProgress, StatusInReview, StatusDone:
		return true
	}
	return false
}

// Label returns the display form of the status ("In Progress").
func (status Status) Label() string {
	switch status {
	case StatusOpen:
		return "Open"
	case StatusInProgress:
		return "In Progress"
	case StatusInReview:
		return "In Review"
	case StatusDone:
		return "Done"
	default:
		return string(status)
	}
}

// Component is the area of the system a ticket touches.
type Component string

const (
	ComponentFrontend Component = "frontend"
	ComponentBackend  Component = "backend"
	ComponentAPI      Component = "api"
	ComponentDatabase Component = "database"
	ComponentMobile   Component = "mobile"
	ComponentDevOps   Component = "devops"
)

// Components returns every known component.
func Components() []Component {
	return []Component{
		ComponentFrontend, ComponentBackend, ComponentAPI,
		ComponentDatabase, ComponentMobile, ComponentDevOps,
	}
}

// IsKnown reports whether component is one of the defined components.
func (component Component) IsKnown() bool {
	switch component {
	case ComponentFrontend, ComponentBackend, ComponentAPI,
		ComponentDatabase, ComponentMobile, ComponentDevOps:
		return true
	}
	return false
}
