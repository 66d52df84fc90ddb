// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"regexp"
	"time"
)

// Project is a named container of tickets owned by its creator.
type Project struct {
	ID int `json:"id"`

	// Key is the short uppercase code shown next to ticket numbers
	// ("API", "WEB2"). Unique across projects.
	Key string `json:"key,omitempty"`

	Name        string `json:"name"`
	Description string `json:"description"`

	// CreatedBy is the immutable owner. The creator is always a member,
	// whether or not the backend lists them in Members.
	CreatedBy User `json:"created_by"`

	// Members in server order. The set is unique; display order is the
	// order the server returned.
	Members []User `json:"members"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsCreator reports whether userID owns the project.
func (project Project) IsCreator(userID int) bool {
	return project.CreatedBy.ID != 0 && project.CreatedBy.ID == userID
}

// IsMember reports whether userID belongs to the project. The creator
// is implicitly a member.
func (project Project) IsMember(userID int) bool {
	if project.IsCreator(userID) {
		return true
	}
	for _, member := range project.Members {
		if member.ID == userID {
			return true
		}
	}
	return false
}

// CanAddMember checks that userID may be added to the member set.
func (project Project) CanAddMember(userID int) error {
	if userID <= 0 {
		return Invalid("user_id", "user_id is required")
	}
	if project.IsMember(userID) {
		return Invalid("user_id", "user is already a member")
	}
	return nil
}

// CanRemoveMember checks that userID may be removed from the member
// set. The creator can never be removed.
func (project Project) CanRemoveMember(userID int) error {
	if userID <= 0 {
		return Invalid("user_id", "user_id is required")
	}
	if project.IsCreator(userID) {
		return Invalid("user_id", "cannot remove project creator")
	}
	if !project.IsMember(userID) {
		return Invalid("user_id", "user is not a member")
	}
	return nil
}

// RemovableMembers returns the members that CanRemoveMember accepts,
// in server order. Views use it to decide which rows get a remove
// control.
func (project Project) RemovableMembers() []User {
	var result []User
	for _, member := range project.Members {
		if !project.IsCreator(member.ID) {
			result = append(result, member)
		}
	}
	return result
}

var projectKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{0,9}$`)

// ValidateKey checks a project key: an uppercase letter followed by up
// to nine uppercase letters or digits.
func ValidateKey(key string) error {
	if key == "" {
		return Invalid("key", "key is required")
	}
	if !projectKeyPattern.MatchString(key) {
		return Invalid("key", "key %q must be 1-10 uppercase letters or digits, starting with a letter", key)
	}
	return nil
}

// ProjectStats is the backend's per-project status breakdown returned
// by the stats endpoint.
type ProjectStats struct {
	TotalTickets      int `json:"total_tickets"`
	OpenTickets       int `json:"open_tickets"`
	InProgressTickets int `json:"in_progress_tickets"`
	CompletedTickets  int `json:"completed_tickets"`
}
