// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "strings"

// User is an account on the tracker.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`

	// Profile is nil when the backend has no profile row for the user.
	// Only developers carry meaningful expertise and workload values.
	Profile *Profile `json:"profile,omitempty"`
}

// Profile holds the optional self-description and the assignment
// signals used by assignee suggestion.
type Profile struct {
	Bio string `json:"bio"`

	// ExpertiseAreas is a set of free-form tags ("frontend", "api").
	// Order carries no meaning.
	ExpertiseAreas []string `json:"expertise_areas"`

	// CurrentWorkload is the number of active tickets assigned to the
	// user, maintained by the backend.
	CurrentWorkload int `json:"current_workload"`

	Avatar string `json:"avatar,omitempty"`
}

// DisplayName returns "First Last", or the username when both name
// parts are empty.
func (user User) DisplayName() string {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		return user.Username
	}
	return name
}

// HasExpertise reports whether the user's profile lists tag,
// compared case-insensitively.
func (user User) HasExpertise(tag string) bool {
	if user.Profile == nil {
		return false
	}
	for _, area := range user.Profile.ExpertiseAreas {
		if strings.EqualFold(area, tag) {
			return true
		}
	}
	return false
}

// Workload returns the profile's current workload, zero without a
// profile.
func (user User) Workload() int {
	if user.Profile == nil {
		return 0
	}
	return user.Profile.CurrentWorkload
}

// IsAssignable reports whether the user's role may hold ticket
// assignments. Only developers and admins qualify.
func (user User) IsAssignable() bool {
	return user.Role == RoleDeveloper || user.Role == RoleAdmin
}

// FindUserByUsername returns the user with exactly the given username.
func FindUserByUsername(users []User, username string) (User, bool) {
	for _, user := range users {
		if user.Username == username {
			return user, true
		}
	}
	return User{}, false
}

// FindUserByID returns the user with the given identifier.
func FindUserByID(users []User, id int) (User, bool) {
	for _, user := range users {
		if user.ID == id {
			return user, true
		}
	}
	return User{}, false
}
