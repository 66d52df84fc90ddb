// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/swiftticket/swiftticket/cmd/swiftticket/cli"
	"github.com/swiftticket/swiftticket/lib/board"
	"github.com/swiftticket/swiftticket/lib/termui"
)

type dashboardParams struct {
	cli.JSONOutput
}

func dashboardCommand(globals *globalParams) *cli.Command {
	var params dashboardParams

	return &cli.Command{
		Name:    "dashboard",
		Summary: "Show your tickets, counts, and recent activity",
		Description: `Show the home screen: ticket and project totals, your tickets by
status, the newest of them, and the latest activity. Admins and
project managers see every ticket; developers see the ones assigned
to or created by them.`,
		Usage:  "swiftticket dashboard [--json]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 0, "swiftticket dashboard"); err != nil {
				return err
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
			dashboard, err := loader.LoadDashboard(ctx, session, env.config.Activity.FeedLimit)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(dashboard); done {
				return err
			}
			fmt.Print(termui.Dashboard(env.styler, dashboard, env.width))
			return nil
		},
	}
}
