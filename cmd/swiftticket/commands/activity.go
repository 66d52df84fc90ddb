// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/swiftticket/swiftticket/cmd/swiftticket/cli"
	"github.com/swiftticket/swiftticket/lib/activity"
	"github.com/swiftticket/swiftticket/lib/clock"
	"github.com/swiftticket/swiftticket/lib/schema"
	"github.com/swiftticket/swiftticket/lib/termui"
)

type activityParams struct {
	cli.JSONOutput
	Ticket  string `json:"ticket"  flag:"ticket"  desc:"only activity on this ticket (12, #12, or KEY-12)"`
	Project int    `json:"project" flag:"project" desc:"only activity in this project"`
	Limit   int    `json:"limit"   flag:"limit"   desc:"maximum entries (default: activity.recent_limit from config)"`
	Recent  bool   `json:"recent"  flag:"recent"  desc:"use the server's recent-activity window"`
}

func activityCommand(globals *globalParams) *cli.Command {
	var params activityParams

	return &cli.Command{
		Name:    "activity",
		Summary: "Show the activity feed",
		Description: `Show recent activity, newest first, as the server orders it. With
--ticket or --project the feed is narrowed to that ticket or project;
both together must match. Times are relative ("5m ago").`,
		Usage: "swiftticket activity [--ticket <id>] [--project <id>] [--limit <n>] [--recent]",
		Examples: []cli.Example{
			{Description: "What happened on API-12", Command: "swiftticket activity --ticket API-12"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 0, "swiftticket activity [flags]"); err != nil {
				return err
			}
			var query activity.Query
			if params.Ticket != "" {
				ticketID, err := parseTicketID(params.Ticket)
				if err != nil {
					return err
				}
				query.Ticket = ticketID
			}
			if params.Project < 0 {
				return cli.Validation("invalid project id %d", params.Project)
			}
			query.Project = params.Project
			if params.Limit < 0 {
				return cli.Validation("--limit must not be negative")
			}

			env, err := globals.connect(logger)
			if err != nil {
				return err
			}

			var activities []schema.Activity
			if params.Recent || query.IsRecent() {
				activities, err = env.client.RecentActivities(ctx)
			} else {
				activities, err = env.client.ListActivities(ctx, query)
			}
			if err != nil {
				return err
			}

			limit := params.Limit
			if limit == 0 {
				limit = env.config.Activity.RecentLimit
			}
			entries := activity.NewProjector(clock.Real()).Project(activities, limit)

			if done, err := params.EmitJSON(entries); done {
				return err
			}
			fmt.Print(termui.ActivityFeed(env.styler, entries, env.width))
			return nil
		},
	}
}
