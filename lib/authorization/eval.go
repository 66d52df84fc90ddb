// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package authorization

import (
	"errors"
	"fmt"

	"github.com/swiftticket/swiftticket/lib/schema"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Deny means the action is not permitted.
	Deny Decision = iota

	// Allow means the action is permitted.
	Allow
)

// String returns "allow" or "deny".
func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// DenyReason describes why a check was denied.
type DenyReason int

const (
	// ReasonRoleLacksAction means the matrix does not grant the action
	// to the role.
	ReasonRoleLacksAction DenyReason = iota

	// ReasonUnknownRole means the session's role is not one of the
	// defined roles.
	ReasonUnknownRole

	// ReasonUnknownAction means the action is not part of the matrix.
	ReasonUnknownAction

	// ReasonNoSession means no authenticated user was supplied.
	ReasonNoSession
)

// String returns a human-readable reason.
func (r DenyReason) String() string {
	switch r {
	case ReasonRoleLacksAction:
		return "role does not permit action"
	case ReasonUnknownRole:
		return "unknown role"
	case ReasonUnknownAction:
		return "unknown action"
	case ReasonNoSession:
		return "not signed in"
	default:
		return "unknown"
	}
}

// Result describes the outcome of a check with enough context for log
// lines and error messages.
type Result struct {
	Decision Decision

	// Reason is meaningful only when Decision is Deny.
	Reason DenyReason

	Role   schema.Role
	Action Action
}

// Session is the explicit current-user context passed into every
// permission-sensitive operation.
type Session struct {
	User schema.User
}

// NewSession returns a session for user.
func NewSession(user schema.User) *Session {
	return &Session{User: user}
}

// Role returns the session user's role. A nil session has no role.
func (session *Session) Role() schema.Role {
	if session == nil {
		return ""
	}
	return session.User.Role
}

// UserID returns the session user's identifier, zero for a nil session.
func (session *Session) UserID() int {
	if session == nil {
		return 0
	}
	return session.User.ID
}

// Evaluate checks action for the session and explains the outcome.
func (session *Session) Evaluate(action Action) Result {
	result := Result{Decision: Deny, Role: session.Role(), Action: action}
	switch {
	case session == nil:
		result.Reason = ReasonNoSession
	case !action.IsKnown():
		result.Reason = ReasonUnknownAction
	case !session.User.Role.IsKnown():
		result.Reason = ReasonUnknownRole
	case !Can(session.User.Role, action):
		result.Reason = ReasonRoleLacksAction
	default:
		result.Decision = Allow
	}
	return result
}

// Can reports whether the session may perform action.
func (session *Session) Can(action Action) bool {
	return session.Evaluate(action).Decision == Allow
}

// Require returns nil when the session may perform action, and an
// *AuthorizationError otherwise.
func (session *Session) Require(action Action) error {
	result := session.Evaluate(action)
	if result.Decision == Allow {
		return nil
	}
	return &AuthorizationError{Role: result.Role, Action: action, Reason: result.Reason}
}

// AuthorizationError reports an action attempted by a role that lacks
// it. It is raised locally and never reaches the transport.
type AuthorizationError struct {
	Role   schema.Role
	Action Action
	Reason DenyReason
}

func (err *AuthorizationError) Error() string {
	if err.Reason == ReasonNoSession {
		return fmt.Sprintf("authorization: %s requires a signed-in user", err.Action)
	}
	return fmt.Sprintf("authorization: role %q may not %s (%s)", err.Role, err.Action, err.Reason)
}

// IsAuthorization reports whether err is or wraps an
// *AuthorizationError.
func IsAuthorization(err error) bool {
	var authorizationError *AuthorizationError
	return errors.As(err, &authorizationError)
}
