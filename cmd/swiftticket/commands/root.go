// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"

	"github.com/swiftticket/swiftticket/cmd/swiftticket/cli"
	"github.com/swiftticket/swiftticket/lib/config"
)

// globalParams are the flags accepted before the command name.
type globalParams struct {
	ConfigPath string `json:"-" flag:"config" desc:"path to a YAML or JSONC config file (default: $SWIFTTICKET_CONFIG)"`
	LogLevel   string `json:"-" flag:"log-level" desc:"debug, info, warn, or error (default: from config)"`

	loaded *config.Config
}

// Root returns the top-level command.
func Root() *cli.Command {
	globals := &globalParams{}

	root := &cli.Command{
		Name:    "swiftticket",
		Summary: "Team ticket tracker client",
		Description: `swiftticket talks to a SwiftTicket server: list and filter tickets,
move them through the workflow, manage projects and members, follow
the activity feed, and use the AI assistant for classification,
summaries and assignee suggestions.

Configuration comes from the file named by --config or
$SWIFTTICKET_CONFIG. The access token comes from the config file,
$SWIFTTICKET_TOKEN, or the session saved by "swiftticket login".`,
		Params: func() any { return globals },
		Logger: globals.logger,
		Subcommands: []*cli.Command{
			loginCommand(globals),
			logoutCommand(),
			registerCommand(globals),
			meCommand(globals),
			ticketsCommand(globals),
			projectsCommand(globals),
			usersCommand(globals),
			activityCommand(globals),
			dashboardCommand(globals),
			boardCommand(globals),
			versionCommand(),
		},
	}
	classifyErrors(root)
	return root
}

// config loads and validates the configuration once per invocation.
func (globals *globalParams) config() (*config.Config, error) {
	if globals.loaded != nil {
		return globals.loaded, nil
	}
	var (
		loaded *config.Config
		err    error
	)
	if globals.ConfigPath != "" {
		loaded, err = config.LoadFile(globals.ConfigPath)
	} else {
		loaded, err = config.Load()
	}
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	if err := loaded.Validate(); err != nil {
		return nil, cli.Validation("%w", err)
	}
	globals.loaded = loaded
	return loaded, nil
}

// logger builds the command logger.
func (globals *globalParams) logger() (*slog.Logger, error) {
	loaded, err := globals.config()
	if err != nil {
		return nil, err
	}
	level, err := cli.ParseLevel(globals.levelName(loaded))
	if err != nil {
		return nil, err
	}
	return cli.NewCommandLogger(level), nil
}

// levelName returns --log-level when given, else log.level.
func (globals *globalParams) levelName(loaded *config.Config) string {
	if globals.LogLevel != "" {
		return globals.LogLevel
	}
	return loaded.Log.Level
}

// classifyErrors wraps every Run in the tree so returned errors carry
// a category and exit code.
func classifyErrors(command *cli.Command) {
	if run := command.Run; run != nil {
		command.Run = func(ctx context.Context, args []string, logger *slog.Logger) error {
			return classify(run(ctx, args, logger))
		}
	}
	for _, sub := range command.Subcommands {
		classifyErrors(sub)
	}
}
