// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package activity

import (
	"testing"
	"time"

	"github.com/swiftticket/swiftticket/lib/clock"
	"github.com/swiftticket/swiftticket/lib/schema"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestRelativeTime(t *testing.T) {
	tests := []struct {
		name string
		age  time.Duration
		want string
	}{
		{name: "zero", age: 0, want: "just now"},
		{name: "59s", age: 59 * time.Second, want: "just now"},
		{name: "59.9s", age: 59*time.Second + 900*time.Millisecond, want: "just now"},
		{name: "60s", age: 60 * time.Second, want: "1m ago"},
		{name: "3599s", age: 3599 * time.Second, want: "59m ago"},
		{name: "3600s", age: 3600 * time.Second, want: "1h ago"},
		{name: "86399s", age: 86399 * time.Second, want: "23h ago"},
		{name: "86400s", age: 86400 * time.Second, want: "1d ago"},
		{name: "6d", age: 6*24*time.Hour + 23*time.Hour, want: "6d ago"},
		{name: "7d_same_year", age: 7 * 24 * time.Hour, want: "Mar 8"},
		{name: "future", age: -5 * time.Minute, want: "just now"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := RelativeTime(now.Add(-test.age), now)
			if got != test.want {
				t.Errorf("RelativeTime(age %v) = %q, want %q", test.age, got, test.want)
			}
		})
	}
}

func TestRelativeTimeOtherYear(t *testing.T) {
	created := time.Date(2025, 12, 30, 8, 0, 0, 0, time.UTC)
	later := time.Date(2026, 1, 20, 8, 0, 0, 0, time.UTC)
	if got := RelativeTime(created, later); got != "Dec 30, 2025" {
		t.Errorf("RelativeTime = %q, want %q", got, "Dec 30, 2025")
	}
}

func TestGlyphFor(t *testing.T) {
	for _, action := range schema.ActionTypes() {
		glyph := GlyphFor(action)
		if glyph == FallbackGlyph {
			t.Errorf("GlyphFor(%s) fell back", action)
		}
		if glyph.Icon == "" || glyph.Color == "" || glyph.Symbol == "" {
			t.Errorf("GlyphFor(%s) = %+v has empty fields", action, glyph)
		}
	}

	if got := GlyphFor(schema.ActionStatusChanged); got.Icon != "GitBranch" || got.Color != "#ff9800" {
		t.Errorf("status_changed glyph = %+v", got)
	}
	if got := GlyphFor("ticket_archived"); got != FallbackGlyph {
		t.Errorf("unknown action glyph = %+v, want fallback", got)
	}
	if GlyphFor(schema.ActionTicketCreated) != GlyphFor(schema.ActionProjectCreated) {
		t.Error("ticket_created and project_created should share a glyph")
	}
}

func intPointer(value int) *int {
	return &value
}

func TestTargetFor(t *testing.T) {
	tests := []struct {
		name     string
		activity schema.Activity
		want     Target
	}{
		{name: "ticket_wins", activity: schema.Activity{TicketID: intPointer(4), ProjectID: intPointer(2)}, want: Target{Kind: TargetTicket, ID: 4}},
		{name: "project_only", activity: schema.Activity{ProjectID: intPointer(2)}, want: Target{Kind: TargetProject, ID: 2}},
		{name: "inert", activity: schema.Activity{}, want: Target{Kind: TargetNone}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := TargetFor(test.activity)
			if got != test.want {
				t.Errorf("TargetFor = %+v, want %+v", got, test.want)
			}
			if got.Navigable() != (test.want.Kind != TargetNone) {
				t.Errorf("Navigable = %v", got.Navigable())
			}
		})
	}
}

func feed(count int) []schema.Activity {
	activities := make([]schema.Activity, count)
	for index := range activities {
		activities[index] = schema.Activity{
			ID:         count - index,
			ActionType: schema.ActionTicketUpdated,
			CreatedAt:  now.Add(-time.Duration(index) * time.Hour),
		}
	}
	return activities
}

func TestWindow(t *testing.T) {
	activities := feed(5)

	bounded := Window(activities, 3)
	if len(bounded) != 3 {
		t.Fatalf("len(Window(5, 3)) = %d, want 3", len(bounded))
	}
	for index, activity := range bounded {
		if activity.ID != activities[index].ID {
			t.Errorf("Window[%d].ID = %d, want %d", index, activity.ID, activities[index].ID)
		}
	}

	bounded[0].Description = "changed"
	if activities[0].Description != "" {
		t.Error("Window shares storage with its input")
	}

	if got := len(Window(activities, 0)); got != 5 {
		t.Errorf("len(Window(5, 0)) = %d, want 5", got)
	}
	if got := len(Window(activities, 50)); got != 5 {
		t.Errorf("len(Window(5, 50)) = %d, want 5", got)
	}
	if got := Window(nil, 10); got == nil || len(got) != 0 {
		t.Errorf("Window(nil) = %v, want empty non-nil slice", got)
	}
}

func TestProject(t *testing.T) {
	fake := clock.Fake(now)
	projector := NewProjector(fake)

	entries := projector.Project(feed(30), RecentLimit)
	if len(entries) != RecentLimit {
		t.Fatalf("len(entries) = %d, want %d", len(entries), RecentLimit)
	}
	if entries[0].When != "just now" {
		t.Errorf("entries[0].When = %q, want just now", entries[0].When)
	}
	if entries[2].When != "2h ago" {
		t.Errorf("entries[2].When = %q, want 2h ago", entries[2].When)
	}
	if entries[0].Glyph.Icon != "Edit" {
		t.Errorf("entries[0].Glyph = %+v, want Edit", entries[0].Glyph)
	}
	if entries[0].Target.Kind != TargetNone {
		t.Errorf("entries[0].Target = %+v, want none", entries[0].Target)
	}

	fake.Advance(24 * time.Hour)
	later := projector.Project(feed(1), 0)
	if later[0].When != "1d ago" {
		t.Errorf("after a day When = %q, want 1d ago", later[0].When)
	}
}

func TestQueryValues(t *testing.T) {
	if !(Query{}).IsRecent() {
		t.Error("empty query should be recent")
	}
	if got := (Query{Ticket: 3}).Values().Encode(); got != "ticket=3" {
		t.Errorf("ticket query = %q, want ticket=3", got)
	}
	if got := (Query{Ticket: 3, Project: 9}).Values().Encode(); got != "project=9&ticket=3" {
		t.Errorf("combined query = %q, want project=9&ticket=3", got)
	}
	if got := (Query{Project: 9}).Values().Encode(); got != "project=9" {
		t.Errorf("project query = %q, want project=9", got)
	}
}
