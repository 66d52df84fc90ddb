// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/swiftticket/swiftticket/cmd/swiftticket/cli"
	"github.com/swiftticket/swiftticket/lib/schema"
)

type loginParams struct {
	PasswordFile string `json:"-" flag:"password-file" desc:"path to a file containing the password, or - to prompt (default: prompt)"`
}

func loginCommand(globals *globalParams) *cli.Command {
	var params loginParams

	return &cli.Command{
		Name:    "login",
		Summary: "Sign in and save the session",
		Description: `Sign in to the configured server and save the access token.

Later commands use the saved session when neither the config file nor
SWIFTTICKET_TOKEN provides a token. The session file is
~/.config/swiftticket/session.json (or $SWIFTTICKET_SESSION_FILE, or
$XDG_CONFIG_HOME/swiftticket/session.json), written with mode 0600.`,
		Usage: "swiftticket login <username> [--password-file <path>]",
		Examples: []cli.Example{
			{Description: "Sign in interactively", Command: "swiftticket login ada"},
			{Description: "Sign in from a script", Command: "swiftticket login ada --password-file ~/.swiftticket-password"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 1, "swiftticket login <username> [--password-file <path>]"); err != nil {
				return err
			}
			password, err := cli.ReadPassword(params.PasswordFile)
			if err != nil {
				return err
			}

			env, err := globals.connect(logger)
			if err != nil {
				return err
			}
			result, err := env.client.Login(ctx, schema.Credentials{Username: args[0], Password: password})
			if err != nil {
				return err
			}

			path := cli.SessionFilePath()
			session := &cli.Session{
				Username:     result.User.Username,
				AccessToken:  result.Access,
				RefreshToken: result.Refresh,
				BaseURL:      env.client.BaseURL(),
			}
			if err := cli.SaveSessionTo(session, path); err != nil {
				return cli.Internal("save session: %w", err)
			}
			logger.Info("signed in", "user_id", result.User.ID, "role", string(result.User.Role))

			fmt.Fprintf(os.Stderr, "Logged in as %s (%s)\n", result.User.DisplayName(), result.User.Role.Label())
			fmt.Fprintf(os.Stderr, "Session saved to %s\n", path)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Remove the saved session",
		Usage:   "swiftticket logout",
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if err := requireArgs(args, 0, "swiftticket logout"); err != nil {
				return err
			}
			path := cli.SessionFilePath()
			if err := cli.RemoveSessionAt(path); err != nil {
				return cli.Internal("%w", err)
			}
			fmt.Fprintf(os.Stderr, "Removed session %s\n", path)
			return nil
		},
	}
}

type registerParams struct {
	cli.JSONOutput
	Email        string   `json:"email"      flag:"email"         desc:"email address (required)"`
	FirstName    string   `json:"first_name" flag:"first-name"    desc:"first name (required)"`
	LastName     string   `json:"last_name"  flag:"last-name"     desc:"last name (required)"`
	Role         string   `json:"role"       flag:"role"          desc:"admin, project_manager, or developer" default:"developer"`
	Expertise    []string `json:"expertise"  flag:"expertise"     desc:"expertise tag (required for developers; repeatable)"`
	PasswordFile string   `json:"-"          flag:"password-file" desc:"path to a file containing the password, or - to prompt (default: prompt)"`
}

func registerCommand(globals *globalParams) *cli.Command {
	var params registerParams

	return &cli.Command{
		Name:    "register",
		Summary: "Create an account",
		Description: `Create an account on the configured server. Passwords must be at
least 8 characters. Developers must list at least one expertise area.
The form is checked locally before anything is sent. Run
"swiftticket login" afterwards to sign in.`,
		Usage: "swiftticket register <username> --email <address> --first-name <name> --last-name <name> [flags]",
		Examples: []cli.Example{
			{Command: "swiftticket register ada --email ada@example.com --first-name Ada --last-name Lovelace --expertise backend"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 1, "swiftticket register <username> [flags]"); err != nil {
				return err
			}
			registration := schema.Registration{
				Username:       args[0],
				Email:          params.Email,
				FirstName:      params.FirstName,
				LastName:       params.LastName,
				Role:           schema.Role(params.Role),
				ExpertiseAreas: params.Expertise,
			}

			password, err := cli.ReadPassword(params.PasswordFile)
			if err != nil {
				return err
			}
			registration.Password = password
			registration.PasswordAgain = password
			if params.PasswordFile == "" || params.PasswordFile == "-" {
				fmt.Fprintln(os.Stderr, "Confirm password.")
				again, err := cli.ReadPassword(params.PasswordFile)
				if err != nil {
					return err
				}
				registration.PasswordAgain = again
			}
			if err := registration.Validate(); err != nil {
				return err
			}

			env, err := globals.connect(logger)
			if err != nil {
				return err
			}
			user, err := env.client.Register(ctx, registration)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(user); done {
				return err
			}
			fmt.Printf("Registered %s (%s). Run 'swiftticket login %s' to sign in.\n",
				user.DisplayName(), user.Role.Label(), user.Username)
			return nil
		},
	}
}
