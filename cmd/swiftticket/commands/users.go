// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/swiftticket/swiftticket/cmd/swiftticket/cli"
	"github.com/swiftticket/swiftticket/lib/schema"
	"github.com/swiftticket/swiftticket/lib/termui"
	"github.com/swiftticket/swiftticket/lib/ticketfilter"
)

func usersCommand(globals *globalParams) *cli.Command {
	return &cli.Command{
		Name:    "users",
		Summary: "List users",
		Subcommands: []*cli.Command{
			usersListCommand(globals),
		},
	}
}

type usersListParams struct {
	cli.JSONOutput
	Role       string `json:"role"       flag:"role"       desc:"admin, project_manager, or developer"`
	Assignable bool   `json:"assignable" flag:"assignable" desc:"only users a ticket can be assigned to"`
	Available  bool   `json:"available"  flag:"available"  desc:"only users offered as new project members"`
	Expertise  string `json:"expertise"  flag:"expertise"  desc:"only users with this expertise tag"`
}

func usersListCommand(globals *globalParams) *cli.Command {
	var params usersListParams

	return &cli.Command{
		Name:    "list",
		Summary: "List users with role, expertise, and workload",
		Usage:   "swiftticket users list [flags]",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 0, "swiftticket users list [flags]"); err != nil {
				return err
			}
			role := schema.Role(params.Role)
			if role != "" && !role.IsKnown() {
				return cli.Validation("unknown role %q (want admin, project_manager, or developer)", params.Role)
			}

			env, err := globals.connect(logger)
			if err != nil {
				return err
			}
			var users []schema.User
			if params.Available {
				users, err = env.client.AvailableUsers(ctx)
			} else {
				users, err = env.client.ListUsers(ctx)
			}
			if err != nil {
				return err
			}
			if params.Assignable {
				users = ticketfilter.Candidates(users)
			}
			users = filterUsers(users, role, strings.TrimSpace(params.Expertise))

			if done, err := params.EmitJSON(users); done {
				return err
			}
			fmt.Print(termui.UserTable(env.styler, users, env.width))
			return nil
		},
	}
}

func filterUsers(users []schema.User, role schema.Role, expertise string) []schema.User {
	filtered := make([]schema.User, 0, len(users))
	for _, user := range users {
		if role != "" && user.Role != role {
			continue
		}
		if expertise != "" && !user.HasExpertise(expertise) {
			continue
		}
		filtered = append(filtered, user)
	}
	return filtered
}
