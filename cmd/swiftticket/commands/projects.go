// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/swiftticket/swiftticket/cmd/swiftticket/cli"
	"github.com/swiftticket/swiftticket/lib/authorization"
	"github.com/swiftticket/swiftticket/lib/schema"
	"github.com/swiftticket/swiftticket/lib/termui"
	"github.com/swiftticket/swiftticket/lib/ticketfilter"
	"github.com/swiftticket/swiftticket/lib/tracker"
)

func projectsCommand(globals *globalParams) *cli.Command {
	return &cli.Command{
		Name:    "projects",
		Summary: "List, inspect, and manage projects",
		Subcommands: []*cli.Command{
			projectsListCommand(globals),
			projectsShowCommand(globals),
			projectsCreateCommand(globals),
			projectsMemberCommand(globals, "add-member"),
			projectsMemberCommand(globals, "remove-member"),
		},
	}
}

type projectsListParams struct {
	cli.JSONOutput
}

func projectsListCommand(globals *globalParams) *cli.Command {
	var params projectsListParams

	return &cli.Command{
		Name:    "list",
		Summary: "List projects",
		Usage:   "swiftticket projects list [--json]",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 0, "swiftticket projects list"); err != nil {
				return err
			}
			env, err := globals.connect(logger)
			if err != nil {
				return err
			}
			projects, err := env.client.ListProjects(ctx)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(projects); done {
				return err
			}
			fmt.Print(termui.ProjectTable(env.styler, projects, env.width))
			return nil
		},
	}
}

type projectShowParams struct {
	cli.JSONOutput
}

// projectShowResult is the --json shape of "projects show".
type projectShowResult struct {
	Project schema.Project     `json:"project"`
	Stats   ticketfilter.Stats `json:"stats"`
}

func projectsShowCommand(globals *globalParams) *cli.Command {
	var params projectShowParams

	return &cli.Command{
		Name:    "show",
		Summary: "Show a project with its members and ticket counts",
		Description: `Show a project, its members, and its ticket counts by status. The
counts come from the server's stats endpoint; when that fails they
are computed from the project's tickets and marked as local.`,
		Usage:  "swiftticket projects show <id>",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 1, "swiftticket projects show <id>"); err != nil {
				return err
			}
			projectID, err := parsePositiveID("project", args[0])
			if err != nil {
				return err
			}
			env, err := globals.connect(logger)
			if err != nil {
				return err
			}
			project, err := env.client.GetProject(ctx, projectID)
			if err != nil {
				return err
			}
			stats, err := projectStats(ctx, env, projectID)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(projectShowResult{Project: *project, Stats: stats}); done {
				return err
			}
			fmt.Print(termui.ProjectDetail(env.styler, *project, stats, env.width))
			return nil
		},
	}
}

// projectStats prefers the server's counts and falls back to counting
// the project's tickets locally.
func projectStats(ctx context.Context, env *environment, projectID int) (ticketfilter.Stats, error) {
	server, err := env.client.ProjectStats(ctx, projectID)
	if err == nil {
		return ticketfilter.FromServer(*server), nil
	}
	env.logger.Warn("project stats unavailable, counting locally", "project_id", projectID, "error", err)

	tickets, listErr := env.client.ListTickets(ctx)
	if listErr != nil {
		return ticketfilter.Stats{}, listErr
	}
	scoped := ticketfilter.Apply(tickets, ticketfilter.Spec{Project: projectID}, nil)
	return ticketfilter.Resolve(nil, scoped.Tickets), nil
}

type projectCreateParams struct {
	cli.JSONOutput
	Name        string   `json:"name"        flag:"name"        desc:"project name (required)"`
	Key         string   `json:"key"         flag:"key"         desc:"short uppercase key used in ticket IDs, e.g. API"`
	Description string   `json:"description" flag:"description" desc:"project description"`
	Members     []string `json:"members"     flag:"member"      desc:"user ID to add as a member (repeatable)"`
}

func projectsCreateCommand(globals *globalParams) *cli.Command {
	var params projectCreateParams

	return &cli.Command{
		Name:    "create",
		Summary: "Create a project",
		Description: `Create a project. Admins and project managers may create projects.
The creator becomes a member automatically.`,
		Usage: "swiftticket projects create --name <name> [--key KEY] [--description <text>] [--member <id>...]",
		Examples: []cli.Example{
			{Description: "Create the API project", Command: `swiftticket projects create --name "Public API" --key API --member 4 --member 7`},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 0, "swiftticket projects create --name <name> [flags]"); err != nil {
				return err
			}
			draft := schema.ProjectDraft{Name: params.Name, Key: params.Key, Description: params.Description}
			for _, member := range params.Members {
				memberID, err := parsePositiveID("member", member)
				if err != nil {
					return err
				}
				draft.MemberIDs = append(draft.MemberIDs, memberID)
			}
			if err := draft.Validate(); err != nil {
				return err
			}

			env, err := globals.connect(logger)
			if err != nil {
				return err
			}
			if _, err := env.authorize(ctx, authorization.ActionCreateProject); err != nil {
				return err
			}
			project, err := env.client.CreateProject(ctx, draft)
			if err != nil {
				return err
			}
			logger.Info("project created", "project_id", project.ID, "key", project.Key)

			if done, err := params.EmitJSON(project); done {
				return err
			}
			fmt.Printf("Created project %d: %s\n", project.ID, project.Name)
			return nil
		},
	}
}

type memberParams struct {
	cli.JSONOutput
}

// projectsMemberCommand builds "add-member" or "remove-member". Both
// check membership locally before the request: adding an existing
// member or removing the creator never reaches the server.
func projectsMemberCommand(globals *globalParams, name string) *cli.Command {
	var params memberParams
	adding := name == "add-member"
	usage := fmt.Sprintf("swiftticket projects %s <project-id> <user-id>", name)

	summary := "Remove a member from a project"
	if adding {
		summary = "Add a member to a project"
	}

	return &cli.Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 2, usage); err != nil {
				return err
			}
			projectID, err := parsePositiveID("project", args[0])
			if err != nil {
				return err
			}
			userID, err := parsePositiveID("user", args[1])
			if err != nil {
				return err
			}

			env, err := globals.connect(logger)
			if err != nil {
				return err
			}
			if _, err := env.authorize(ctx, authorization.ActionManageProjectMembers); err != nil {
				return err
			}
			project, err := env.client.GetProject(ctx, projectID)
			if err != nil {
				return err
			}

			var result *tracker.MembershipResult
			if adding {
				if err := project.CanAddMember(userID); err != nil {
					return err
				}
				result, err = env.client.AddMember(ctx, projectID, userID)
			} else {
				if err := project.CanRemoveMember(userID); err != nil {
					return err
				}
				result, err = env.client.RemoveMember(ctx, projectID, userID)
			}
			if err != nil {
				return err
			}
			logger.Info("project membership changed", "project_id", projectID, "user_id", userID, "action", name)

			if done, err := params.EmitJSON(result); done {
				return err
			}
			if result.Message != "" {
				fmt.Println(result.Message)
			}
			if result.Project.ID != 0 {
				fmt.Printf("%s now has %d members\n", result.Project.Name, len(result.Project.Members))
			}
			return nil
		},
	}
}
