// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/swiftticket/swiftticket/cmd/swiftticket/cli"
	"github.com/swiftticket/swiftticket/lib/board"
	"github.com/swiftticket/swiftticket/lib/boardui"
	"github.com/swiftticket/swiftticket/lib/schema"
	"github.com/swiftticket/swiftticket/lib/termui"
	"github.com/swiftticket/swiftticket/lib/ticketfilter"
)

type boardParams struct {
	Search   string `json:"search"   flag:"search"   desc:"initial search text"`
	Status   string `json:"status"   flag:"status"   desc:"initial status filter"`
	Priority string `json:"priority" flag:"priority" desc:"initial priority filter"`
	Project  int    `json:"project"  flag:"project"  desc:"initial project filter"`
	Assigned string `json:"assigned" flag:"assigned" desc:"initial assignee scope: all, me, or unassigned" default:"all"`
	LogFile  string `json:"-"        flag:"log-file" desc:"write logs to this file (the board otherwise logs nothing)"`
}

func boardCommand(globals *globalParams) *cli.Command {
	var params boardParams

	return &cli.Command{
		Name:    "board",
		Summary: "Interactive ticket board",
		Description: `Open a full-screen ticket list with a detail pane. Filters apply as
you type; the selection stays on the same ticket when the list
changes.

Keys: / search, esc clear search, s status, p priority, a assignee
scope, P project, c clear filters, r refresh, tab switch pane, q quit.`,
		Usage:  "swiftticket board [flags]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if err := requireArgs(args, 0, "swiftticket board [flags]"); err != nil {
				return err
			}
			scope, err := ticketfilter.ParseScope(params.Assigned)
			if err != nil {
				return err
			}
			spec := ticketfilter.Spec{
				Search:     params.Search,
				Status:     schema.Status(params.Status),
				Priority:   schema.Priority(params.Priority),
				Project:    params.Project,
				AssignedTo: scope,
			}
			if err := spec.Validate(); err != nil {
				return err
			}

			logger := cli.DiscardLogger()
			if params.LogFile != "" {
				loaded, err := globals.config()
				if err != nil {
					return err
				}
				level, err := cli.ParseLevel(globals.levelName(loaded))
				if err != nil {
					return err
				}
				fileLogger, closer, err := cli.NewFileLogger(params.LogFile, level)
				if err != nil {
					return cli.Internal("%w", err)
				}
				defer closer.Close()
				logger = fileLogger
			}

			env, err := globals.connect(logger)
			if err != nil {
				return err
			}
			session, err := env.signIn(ctx)
			if err != nil {
				return err
			}
			loader, err := board.NewLoader(board.Config{Fetcher: env.client, Logger: logger})
			if err != nil {
				return cli.Internal("%w", err)
			}

			view := board.NewView(ctx, loader, session, spec)
			defer view.Wait()
			defer view.Close()

			styler := termui.NewStyler(os.Stdout, termui.ColorMode(env.config.UI.Color), termui.DefaultTheme)
			model := boardui.NewModel(view, session, styler)
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := program.Run(); err != nil && ctx.Err() == nil {
				return cli.Internal("board: %w", err)
			}
			return nil
		},
	}
}
