// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"net/mail"
	"strings"
)

// MinPasswordLength is the shortest password registration accepts.
const MinPasswordLength = 8

// TicketDraft is the creation body for POST /tickets/.
//
// AssigneeID is a pointer with omitempty: an unassigned draft omits the
// assigned_to_id key entirely rather than sending null. The backend
// treats the two differently on creation.
type TicketDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ProjectID   int        `json:"project_id"`
	Type        TicketType `json:"ticket_type"`
	Priority    Priority   `json:"priority"`
	Component   Component  `json:"component,omitempty"`
	AssigneeID  *int       `json:"assigned_to_id,omitempty"`
}

// NewTicketDraft returns a draft for projectID with the form defaults:
// bug, medium priority, backend component, unassigned.
func NewTicketDraft(projectID int) TicketDraft {
	return TicketDraft{
		ProjectID: projectID,
		Type:      TypeBug,
		Priority:  PriorityMedium,
		Component: ComponentBackend,
	}
}

// Assign sets the draft's assignee. A zero or negative id clears it.
func (draft *TicketDraft) Assign(userID int) {
	if userID <= 0 {
		draft.AssigneeID = nil
		return
	}
	draft.AssigneeID = &userID
}

// Validate checks that the draft can be submitted.
func (draft *TicketDraft) Validate() error {
	if strings.TrimSpace(draft.Title) == "" {
		return Invalid("title", "title is required")
	}
	if strings.TrimSpace(draft.Description) == "" {
		return Invalid("description", "description is required")
	}
	if draft.ProjectID <= 0 {
		return Invalid("project_id", "project is required")
	}
	if !draft.Type.IsKnown() {
		return Invalid("ticket_type", "unknown ticket type %q", draft.Type)
	}
	if !draft.Priority.IsKnown() {
		return Invalid("priority", "unknown priority %q", draft.Priority)
	}
	if draft.Component != "" && !draft.Component.IsKnown() {
		return Invalid("component", "unknown component %q", draft.Component)
	}
	if draft.AssigneeID != nil && *draft.AssigneeID <= 0 {
		return Invalid("assigned_to_id", "assignee id must be positive, got %d", *draft.AssigneeID)
	}
	return nil
}

// TicketEdit is the body for PUT /tickets/{id}/ when editing the
// descriptive fields. Nil fields are left out of the request.
type TicketEdit struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Type        *TicketType `json:"ticket_type,omitempty"`
	Priority    *Priority   `json:"priority,omitempty"`
	Component   *Component  `json:"component,omitempty"`
}

// IsEmpty reports whether the edit changes nothing.
func (edit *TicketEdit) IsEmpty() bool {
	return edit.Title == nil && edit.Description == nil && edit.Type == nil &&
		edit.Priority == nil && edit.Component == nil
}

// Validate checks each field the edit sets.
func (edit *TicketEdit) Validate() error {
	if edit.IsEmpty() {
		return Invalid("", "edit changes no fields")
	}
	if edit.Title != nil && strings.TrimSpace(*edit.Title) == "" {
		return Invalid("title", "title cannot be blank")
	}
	if edit.Description != nil && strings.TrimSpace(*edit.Description) == "" {
		return Invalid("description", "description cannot be blank")
	}
	if edit.Type != nil && !edit.Type.IsKnown() {
		return Invalid("ticket_type", "unknown ticket type %q", *edit.Type)
	}
	if edit.Priority != nil && !edit.Priority.IsKnown() {
		return Invalid("priority", "unknown priority %q", *edit.Priority)
	}
	if edit.Component != nil && !edit.Component.IsKnown() {
		return Invalid("component", "unknown component %q", *edit.Component)
	}
	return nil
}

// Reassignment is the body for PUT /tickets/{id}/ when changing the
// assignee. Unlike TicketDraft, the assigned_to_id key is always sent:
// a nil AssigneeID encodes as null and unassigns the ticket.
type Reassignment struct {
	AssigneeID *int `json:"assigned_to_id"`
}

// StatusChange is the body for POST /tickets/{id}/update_status/.
type StatusChange struct {
	Status Status `json:"status"`
}

// MemberChange is the body for the add_member and remove_member
// project actions.
type MemberChange struct {
	UserID int `json:"user_id"`
}

// ClassifyRequest is the body for POST /tickets/ai_classify/.
type ClassifyRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ProjectDraft is the creation and update body for projects.
type ProjectDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Key         string `json:"key,omitempty"`
	MemberIDs   []int  `json:"member_ids,omitempty"`
}

// Validate checks that the draft can be submitted.
func (draft *ProjectDraft) Validate() error {
	if strings.TrimSpace(draft.Name) == "" {
		return Invalid("name", "name is required")
	}
	if draft.Key != "" {
		if err := ValidateKey(draft.Key); err != nil {
			return err
		}
	}
	for _, id := range draft.MemberIDs {
		if id <= 0 {
			return Invalid("member_ids", "member id must be positive, got %d", id)
		}
	}
	return nil
}

// Registration is the body for POST /auth/register/.
type Registration struct {
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	PasswordAgain  string   `json:"password2"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Role           Role     `json:"role"`
	ExpertiseAreas []string `json:"expertise_areas"`
}

// Validate checks the registration form in the order the form reports
// problems: identity fields, password confirmation, password length,
// then developer expertise.
func (registration *Registration) Validate() error {
	if strings.TrimSpace(registration.Username) == "" {
		return Invalid("username", "username is required")
	}
	if err := validateEmail(registration.Email); err != nil {
		return err
	}
	if strings.TrimSpace(registration.FirstName) == "" {
		return Invalid("first_name", "first name is required")
	}
	if strings.TrimSpace(registration.LastName) == "" {
		return Invalid("last_name", "last name is required")
	}
	if !registration.Role.IsKnown() {
		return Invalid("role", "unknown role %q", registration.Role)
	}
	if registration.Password != registration.PasswordAgain {
		return Invalid("password", "passwords do not match")
	}
	if len(registration.Password) < MinPasswordLength {
		return Invalid("password", "password must be at least %d characters", MinPasswordLength)
	}
	if registration.Role == RoleDeveloper && len(registration.ExpertiseAreas) == 0 {
		return Invalid("expertise_areas", "please select at least one area of expertise")
	}
	return nil
}

// ProfileUpdate is the body for PUT /auth/profile/.
type ProfileUpdate struct {
	Bio            string   `json:"bio"`
	ExpertiseAreas []string `json:"expertise_areas"`
}

// Validate rejects blank expertise tags.
func (update *ProfileUpdate) Validate() error {
	for index, area := range update.ExpertiseAreas {
		if strings.TrimSpace(area) == "" {
			return Invalid("expertise_areas", "expertise area %d is blank", index)
		}
	}
	return nil
}

// InfoUpdate is the body for PUT /auth/update-info/.
type InfoUpdate struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Validate requires both name parts and a well-formed email.
func (update *InfoUpdate) Validate() error {
	if strings.TrimSpace(update.FirstName) == "" {
		return Invalid("first_name", "first name is required")
	}
	if strings.TrimSpace(update.LastName) == "" {
		return Invalid("last_name", "last name is required")
	}
	return validateEmail(update.Email)
}

// Credentials is the body for POST /auth/login/.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate requires both fields.
func (credentials *Credentials) Validate() error {
	if strings.TrimSpace(credentials.Username) == "" {
		return Invalid("username", "username is required")
	}
	if credentials.Password == "" {
		return Invalid("password", "password is required")
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return Invalid("email", "email is required")
	}
	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return Invalid("email", "%q is not a valid email address", email)
	}
	return nil
}
