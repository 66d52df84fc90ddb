// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/swiftticket/swiftticket/cmd/swiftticket/cli"
	"github.com/swiftticket/swiftticket/lib/schema"
	"github.com/swiftticket/swiftticket/lib/termui"
)

type meParams struct {
	cli.JSONOutput
}

func meCommand(globals *globalParams) *cli.Command {
	var params meParams

	return &cli.Command{
		Name:    "me",
		Summary: "Show or update your account",
		Description: `Show the signed-in user: name, role, expertise, and workload.
The subcommands update your name and email or your profile.`,
		Usage:  "swiftticket me [--json] | swiftticket me <command> [flags]",
		Params: func() any { return &params },
		Subcommands: []*cli.Command{
			meInfoCommand(globals),
			meProfileCommand(globals),
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 0, "swiftticket me [--json]"); err != nil {
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
			user := session.User
			if done, err := params.EmitJSON(user); done {
				return err
			}
			fmt.Print(termui.UserDetail(env.styler, user))
			return nil
		},
	}
}

type meInfoParams struct {
	cli.JSONOutput
	FirstName string `json:"first_name" flag:"first-name" desc:"first name (required)"`
	LastName  string `json:"last_name"  flag:"last-name"  desc:"last name (required)"`
	Email     string `json:"email"      flag:"email"      desc:"email address (required)"`
}

func meInfoCommand(globals *globalParams) *cli.Command {
	var params meInfoParams

	return &cli.Command{
		Name:    "info",
		Summary: "Update your name and email",
		Usage:   "swiftticket me info --first-name <name> --last-name <name> --email <address>",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 0, "swiftticket me info [flags]"); err != nil {
				return err
			}
			env, err := globals.connect(logger)
			if err != nil {
				return err
			}
			user, err := env.client.UpdateInfo(ctx, schema.InfoUpdate{
				FirstName: params.FirstName,
				LastName:  params.LastName,
				Email:     params.Email,
			})
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(user); done {
				return err
			}
			fmt.Print(termui.UserDetail(env.styler, *user))
			return nil
		},
	}
}

type meProfileParams struct {
	cli.JSONOutput
	Bio       string   `json:"bio"       flag:"bio"       desc:"short self-description"`
	Expertise []string `json:"expertise" flag:"expertise" desc:"expertise tag, e.g. frontend or api (repeatable or comma-separated)"`
}

func meProfileCommand(globals *globalParams) *cli.Command {
	var params meProfileParams

	return &cli.Command{
		Name:    "profile",
		Summary: "Replace your bio and expertise areas",
		Description: `Replace your bio and expertise areas. Expertise tags feed the AI
assignee suggestion, so developers should keep them current.`,
		Usage: "swiftticket me profile [--bio <text>] [--expertise <tag>...]",
		Examples: []cli.Example{
			{Command: "swiftticket me profile --bio 'Backend and API work' --expertise backend,api"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 0, "swiftticket me profile [flags]"); err != nil {
				return err
			}
			env, err := globals.connect(logger)
			if err != nil {
				return err
			}
			user, err := env.client.UpdateProfile(ctx, schema.ProfileUpdate{
				Bio:            params.Bio,
				ExpertiseAreas: params.Expertise,
			})
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(user); done {
				return err
			}
			fmt.Print(termui.UserDetail(env.styler, *user))
			return nil
		},
	}
}
