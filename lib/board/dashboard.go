// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package board

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/swiftticket/swiftticket/lib/activity"
	"github.com/swiftticket/swiftticket/lib/authorization"
	"github.com/swiftticket/swiftticket/lib/schema"
	"github.com/swiftticket/swiftticket/lib/ticketfilter"
)

// RecentTicketLimit is the number of newest personal tickets the
// dashboard lists.
const RecentTicketLimit = 5

// DashboardFeedLimit is the number of activity entries the dashboard
// shows.
const DashboardFeedLimit = 10

// Dashboard is the derived state of the home screen.
type Dashboard struct {
	User schema.User `json:"user"`

	// TotalTickets counts every ticket visible to the user.
	TotalTickets int `json:"total_tickets"`

	// MyTickets are the tickets the user works with: all of them for
	// admins and project managers, assigned or created ones for
	// developers.
	MyTickets []schema.Ticket `json:"my_tickets"`

	// Stats counts MyTickets by status.
	Stats ticketfilter.Stats `json:"stats"`

	TotalProjects int `json:"total_projects"`

	// RecentTickets are the newest MyTickets by creation time.
	RecentTickets []schema.Ticket `json:"recent_tickets"`

	Feed []activity.Entry `json:"feed"`
}

// LoadDashboard fetches tickets, projects, and recent activity in
// parallel and derives the dashboard once all three have returned.
func (loader *Loader) LoadDashboard(ctx context.Context, session *authorization.Session, feedLimit int) (*Dashboard, error) {
	var (
		tickets    []schema.Ticket
		projects   []schema.Project
		activities []schema.Activity
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		tickets, err = loader.fetcher.ListTickets(groupCtx)
		if err != nil {
			return fmt.Errorf("board: loading tickets: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		projects, err = loader.fetcher.ListProjects(groupCtx)
		if err != nil {
			return fmt.Errorf("board: loading projects: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		activities, err = loader.fetcher.RecentActivities(groupCtx)
		if err != nil {
			return fmt.Errorf("board: loading activity: %w", err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	mine := ticketfilter.MyTickets(tickets, session)
	projector := activity.NewProjector(loader.clock)

	dashboard := &Dashboard{
		TotalTickets:  len(tickets),
		MyTickets:     mine,
		Stats:         ticketfilter.Aggregate(mine),
		TotalProjects: len(projects),
		RecentTickets: newestFirst(mine, RecentTicketLimit),
		Feed:          projector.Project(activities, feedLimit),
	}
	if session != nil {
		dashboard.User = session.User
	}
	return dashboard, nil
}

// newestFirst returns up to limit tickets ordered by creation time,
// newest first, without reordering the input.
func newestFirst(tickets []schema.Ticket, limit int) []schema.Ticket {
	sorted := make([]schema.Ticket, len(tickets))
	copy(sorted, tickets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
