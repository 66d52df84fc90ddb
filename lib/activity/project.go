// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package activity

import (
	"net/url"
	"strconv"

	"github.com/swiftticket/swiftticket/lib/clock"
	"github.com/swiftticket/swiftticket/lib/schema"
)

// RecentLimit is the number of entries the server's recent-activity
// endpoint returns.
const RecentLimit = 20

// Window returns at most limit activities from the front of the list,
// preserving server order. A limit of zero or less means no bound. The
// result is always a new slice.
func Window(activities []schema.Activity, limit int) []schema.Activity {
	count := len(activities)
	if limit > 0 && limit < count {
		count = limit
	}
	window := make([]schema.Activity, count)
	copy(window, activities[:count])
	return window
}

// TargetKind names what selecting an activity navigates to.
type TargetKind string

const (
	TargetTicket  TargetKind = "ticket"
	TargetProject TargetKind = "project"

	// TargetNone marks an inert entry.
	TargetNone TargetKind = "none"
)

// Target is the navigation destination for an activity.
type Target struct {
	Kind TargetKind `json:"kind"`
	ID   int        `json:"id,omitempty"`
}

// Navigable reports whether selecting the entry goes anywhere.
func (target Target) Navigable() bool {
	return target.Kind != TargetNone
}

// TargetFor resolves the navigation target. A ticket reference takes
// precedence over a project reference.
func TargetFor(activity schema.Activity) Target {
	if activity.TicketID != nil {
		return Target{Kind: TargetTicket, ID: *activity.TicketID}
	}
	if activity.ProjectID != nil {
		return Target{Kind: TargetProject, ID: *activity.ProjectID}
	}
	return Target{Kind: TargetNone}
}

// Entry is one render-ready feed row.
type Entry struct {
	Activity schema.Activity `json:"activity"`
	Glyph    Glyph           `json:"glyph"`
	When     string          `json:"when"`
	Target   Target          `json:"target"`
}

// Projector builds feed rows. The zero value uses the real clock.
type Projector struct {
	Clock clock.Clock
}

// NewProjector returns a Projector reading time from clk.
func NewProjector(clk clock.Clock) *Projector {
	return &Projector{Clock: clk}
}

// Project bounds activities to limit and decorates each entry. Every
// entry's relative time is computed against a single reading of the
// clock.
func (projector *Projector) Project(activities []schema.Activity, limit int) []Entry {
	clk := projector.Clock
	if clk == nil {
		clk = clock.Real()
	}
	now := clk.Now()

	window := Window(activities, limit)
	entries := make([]Entry, len(window))
	for index, activity := range window {
		entries[index] = Entry{
			Activity: activity,
			Glyph:    GlyphFor(activity.ActionType),
			When:     RelativeTime(activity.CreatedAt, now),
			Target:   TargetFor(activity),
		}
	}
	return entries
}

// Query selects the activity list to fetch. Ticket and project combine
// with AND on the server; with neither set the caller should use the
// recent endpoint instead.
type Query struct {
	Ticket  int
	Project int
}

// IsRecent reports whether the query names neither a ticket nor a
// project.
func (query Query) IsRecent() bool {
	return query.Ticket == 0 && query.Project == 0
}

// Values encodes the query string for the activity list endpoint.
func (query Query) Values() url.Values {
	values := url.Values{}
	if query.Ticket != 0 {
		values.Set("ticket", strconv.Itoa(query.Ticket))
	}
	if query.Project != 0 {
		values.Set("project", strconv.Itoa(query.Project))
	}
	return values
}
