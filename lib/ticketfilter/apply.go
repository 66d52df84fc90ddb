// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketfilter

import (
	"strings"

	"github.com/swiftticket/swiftticket/lib/authorization"
	"github.com/swiftticket/swiftticket/lib/schema"
)

// Result is the output of Apply.
type Result struct {
	// Tickets holds the matching tickets in input order. It is a new
	// slice; the input is never modified.
	Tickets []schema.Ticket

	// Visible is len(Tickets).
	Visible int

	// Total is the length of the unfiltered input.
	Total int
}

// Apply returns the tickets matching spec. The session supplies the
// user for ScopeMe; with a nil session ScopeMe matches nothing.
func Apply(tickets []schema.Ticket, spec Spec, session *authorization.Session) Result {
	matcher := newMatcher(spec, session)
	matched := make([]schema.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if matcher.matches(ticket) {
			matched = append(matched, ticket)
		}
	}
	return Result{
		Tickets: matched,
		Visible: len(matched),
		Total:   len(tickets),
	}
}

// Matches reports whether a single ticket satisfies spec.
func Matches(ticket schema.Ticket, spec Spec, session *authorization.Session) bool {
	return newMatcher(spec, session).matches(ticket)
}

// matcher holds a spec with its search query lowercased once.
type matcher struct {
	spec   Spec
	query  string
	userID int
}

func newMatcher(spec Spec, session *authorization.Session) matcher {
	return matcher{
		spec:   spec,
		query:  strings.ToLower(spec.Search),
		userID: session.UserID(),
	}
}

func (matcher matcher) matches(ticket schema.Ticket) bool {
	spec := matcher.spec

	if matcher.query != "" &&
		!strings.Contains(strings.ToLower(ticket.Title), matcher.query) &&
		!strings.Contains(strings.ToLower(ticket.Description), matcher.query) {
		return false
	}
	if spec.Status != "" && ticket.Status != spec.Status {
		return false
	}
	if spec.Priority != "" && ticket.Priority != spec.Priority {
		return false
	}
	if spec.Project != 0 && ticket.Project.ID != spec.Project {
		return false
	}

	switch spec.AssignedTo {
	case ScopeMe:
		if matcher.userID == 0 || !ticket.IsAssignedTo(matcher.userID) {
			return false
		}
	case ScopeUnassigned:
		if ticket.IsAssigned() {
			return false
		}
	}
	return true
}

// MyTickets returns the dashboard's personal ticket list. Developers
// see tickets assigned to them or created by them; other roles see
// every ticket.
func MyTickets(tickets []schema.Ticket, session *authorization.Session) []schema.Ticket {
	mine := make([]schema.Ticket, 0, len(tickets))
	if session.Role() != schema.RoleDeveloper {
		return append(mine, tickets...)
	}
	userID := session.UserID()
	for _, ticket := range tickets {
		if ticket.IsAssignedTo(userID) || ticket.CreatedBy.ID == userID {
			mine = append(mine, ticket)
		}
	}
	return mine
}

// Candidates returns the users a ticket may be assigned to, preserving
// input order.
func Candidates(users []schema.User) []schema.User {
	candidates := make([]schema.User, 0, len(users))
	for _, user := range users {
		if user.IsAssignable() {
			candidates = append(candidates, user)
		}
	}
	return candidates
}
