// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/swiftticket/swiftticket/lib/authorization"
	"github.com/swiftticket/swiftticket/lib/clock"
	"github.com/swiftticket/swiftticket/lib/schema"
	"github.com/swiftticket/swiftticket/lib/ticketfilter"
)

// Fetcher is the subset of the REST client a Loader reads from.
// tracker.Client implements it.
type Fetcher interface {
	ListTickets(ctx context.Context) ([]schema.Ticket, error)
	ListProjects(ctx context.Context) ([]schema.Project, error)
	ProjectStats(ctx context.Context, projectID int) (*schema.ProjectStats, error)
	RecentActivities(ctx context.Context) ([]schema.Activity, error)
}

// Config holds the dependencies of a Loader.
type Config struct {
	// Fetcher is required.
	Fetcher Fetcher

	// Clock stamps snapshots. Defaults to clock.Real().
	Clock clock.Clock

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Loader fetches and derives snapshots.
type Loader struct {
	fetcher Fetcher
	clock   clock.Clock
	logger  *slog.Logger
}

// NewLoader creates a Loader.
func NewLoader(config Config) (*Loader, error) {
	if config.Fetcher == nil {
		return nil, errors.New("board: Fetcher is required")
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{fetcher: config.Fetcher, clock: clk, logger: logger}, nil
}

// Snapshot is the derived state of a ticket list screen.
type Snapshot struct {
	// Tickets is the full fetched list, in server order.
	Tickets []schema.Ticket

	Projects []schema.Project

	// ProjectNames maps project ID to name for rendering.
	ProjectNames map[int]string

	// Spec is the filter Result was derived with.
	Spec ticketfilter.Spec

	// Result is Tickets narrowed by Spec.
	Result ticketfilter.Result

	// Stats counts Tickets, or comes from the server when Spec names
	// a project and its stats endpoint answered.
	Stats ticketfilter.Stats

	LoadedAt time.Time
}

// Refilter derives a new snapshot from the same fetched data with a
// different spec. Server stats are kept while the project is
// unchanged; otherwise stats are recounted locally until the next
// load fetches them.
func (snapshot *Snapshot) Refilter(spec ticketfilter.Spec, session *authorization.Session) *Snapshot {
	refiltered := *snapshot
	refiltered.Spec = spec
	refiltered.Result = ticketfilter.Apply(snapshot.Tickets, spec, session)
	if !snapshot.Stats.FromServer || spec.Project != snapshot.Spec.Project {
		refiltered.Stats = ticketfilter.Aggregate(projectTickets(snapshot.Tickets, spec.Project))
	}
	return &refiltered
}

// projectTickets narrows tickets to one project; zero means all.
func projectTickets(tickets []schema.Ticket, projectID int) []schema.Ticket {
	if projectID == 0 {
		return tickets
	}
	return ticketfilter.Apply(tickets, ticketfilter.Spec{Project: projectID}, nil).Tickets
}

// Load fetches tickets and projects in parallel, plus the project's
// server stats when spec names a project, and derives a snapshot once
// every fetch has returned.
//
// A failure fetching tickets or projects fails the load. Stats are
// advisory: if that fetch fails the snapshot falls back to local
// aggregation.
func (loader *Loader) Load(ctx context.Context, session *authorization.Session, spec ticketfilter.Spec) (*Snapshot, error) {
	var (
		tickets     []schema.Ticket
		projects    []schema.Project
		serverStats *schema.ProjectStats
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
	if spec.Project != 0 {
		group.Go(func() error {
			stats, err := loader.fetcher.ProjectStats(groupCtx, spec.Project)
			if err != nil {
				loader.logger.Warn("project stats unavailable, counting locally",
					"project_id", spec.Project,
					"error", err,
				)
				return nil
			}
			serverStats = stats
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		Tickets:      tickets,
		Projects:     projects,
		ProjectNames: projectNames(projects),
		Spec:         spec,
		Result:       ticketfilter.Apply(tickets, spec, session),
		LoadedAt:     loader.clock.Now(),
	}
	scoped := projectTickets(tickets, spec.Project)
	if serverStats != nil {
		if err := ticketfilter.CrossCheck(*serverStats, ticketfilter.Aggregate(scoped)); err != nil {
			loader.logger.Debug("server stats differ from fetched tickets",
				"project_id", spec.Project,
				"error", err,
			)
		}
	}
	snapshot.Stats = ticketfilter.Resolve(serverStats, scoped)

	loader.logger.Debug("board loaded",
		"tickets", len(tickets),
		"visible", snapshot.Result.Visible,
		"projects", len(projects),
		"filter", spec.String(),
	)
	return snapshot, nil
}

func projectNames(projects []schema.Project) map[int]string {
	names := make(map[int]string, len(projects))
	for _, project := range projects {
		names[project.ID] = project.Name
	}
	return names
}
