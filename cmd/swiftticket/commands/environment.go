// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/swiftticket/swiftticket/cmd/swiftticket/cli"
	"github.com/swiftticket/swiftticket/lib/aiassist"
	"github.com/swiftticket/swiftticket/lib/authorization"
	"github.com/swiftticket/swiftticket/lib/config"
	"github.com/swiftticket/swiftticket/lib/termui"
	"github.com/swiftticket/swiftticket/lib/tracker"
	"github.com/swiftticket/swiftticket/lib/workflow"
)

// defaultWidth is the render width when stdout is not a terminal and
// ui.width is unset.
const defaultWidth = 100

// environment is what a command needs to talk to the server and print
// results.
type environment struct {
	config *config.Config
	client *tracker.Client
	logger *slog.Logger
	styler *termui.Styler
	width  int
}

// connect builds the environment for one command invocation.
func (globals *globalParams) connect(logger *slog.Logger) (*environment, error) {
	loaded, err := globals.config()
	if err != nil {
		return nil, err
	}

	token, err := resolveToken(loaded)
	if err != nil {
		return nil, err
	}

	client, err := tracker.NewClient(tracker.Config{
		BaseURL:    loaded.Server.BaseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: loaded.RequestTimeout()},
		Logger:     logger,
	})
	if err != nil {
		return nil, cli.Validation("%w", err)
	}

	return &environment{
		config: loaded,
		client: client,
		logger: logger,
		styler: termui.NewStyler(os.Stdout, termui.ColorMode(loaded.UI.Color), termui.DefaultTheme),
		width:  outputWidth(loaded.UI.Width),
	}, nil
}

// resolveToken returns the configured token, or the saved session's
// token when the session was issued by the configured server.
func resolveToken(loaded *config.Config) (string, error) {
	if loaded.Server.Token != "" {
		return loaded.Server.Token, nil
	}
	session, err := cli.LoadSessionFrom(cli.SessionFilePath())
	if err != nil {
		return "", cli.Internal("%w", err)
	}
	if session == nil || !sameServer(session.BaseURL, loaded.Server.BaseURL) {
		return "", nil
	}
	return session.AccessToken, nil
}

func sameServer(a, b string) bool {
	return strings.TrimRight(a, "/") == strings.TrimRight(b, "/")
}

func outputWidth(configured int) int {
	if configured > 0 {
		return configured
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return defaultWidth
}

// signIn resolves the token's user into an authorization session.
func (env *environment) signIn(ctx context.Context) (*authorization.Session, error) {
	user, err := env.client.Me(ctx)
	if err != nil {
		if tracker.IsUnauthorized(err) {
			return nil, cli.Forbidden("not signed in: %w", err).WithHint(loginHint)
		}
		return nil, err
	}
	env.logger.Debug("signed in", "user_id", user.ID, "role", string(user.Role))
	return authorization.NewSession(*user), nil
}

// authorize signs in and checks action locally, before any write.
func (env *environment) authorize(ctx context.Context, action authorization.Action) (*authorization.Session, error) {
	session, err := env.signIn(ctx)
	if err != nil {
		return nil, err
	}
	if err := session.Require(action); err != nil {
		return nil, cli.Forbidden("%w", err)
	}
	return session, nil
}

func (env *environment) machine() (*workflow.Machine, error) {
	machine, err := workflow.New(workflow.Config{Backend: env.client, Logger: env.logger})
	if err != nil {
		return nil, cli.Internal("%w", err)
	}
	return machine, nil
}

func (env *environment) assistant() (*aiassist.Assistant, error) {
	assistant, err := aiassist.New(aiassist.Config{Gateway: env.client, Logger: env.logger})
	if err != nil {
		return nil, cli.Internal("%w", err)
	}
	return assistant, nil
}

// parseTicketID accepts "12", "#12", or a project-keyed "API-12".
func parseTicketID(argument string) (int, error) {
	text := strings.TrimPrefix(argument, "#")
	if index := strings.LastIndexByte(text, '-'); index > 0 {
		text = text[index+1:]
	}
	id, err := strconv.Atoi(text)
	if err != nil || id <= 0 {
		return 0, cli.Validation("invalid ticket id %q (want 12, #12, or KEY-12)", argument)
	}
	return id, nil
}

// parsePositiveID parses a project or user ID argument.
func parsePositiveID(kind, argument string) (int, error) {
	id, err := strconv.Atoi(argument)
	if err != nil || id <= 0 {
		return 0, cli.Validation("invalid %s id %q", kind, argument)
	}
	return id, nil
}

// requireArgs checks the positional argument count.
func requireArgs(args []string, count int, usage string) error {
	if len(args) < count {
		return cli.Validation("missing arguments\n\nUsage: %s", usage)
	}
	if len(args) > count {
		return cli.Validation("unexpected argument: %s\n\nUsage: %s", args[count], usage)
	}
	return nil
}
