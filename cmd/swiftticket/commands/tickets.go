// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/swiftticket/swiftticket/cmd/swiftticket/cli"
	"github.com/swiftticket/swiftticket/lib/authorization"
	"github.com/swiftticket/swiftticket/lib/schema"
	"github.com/swiftticket/swiftticket/lib/termui"
	"github.com/swiftticket/swiftticket/lib/ticketfilter"
)

func ticketsCommand(globals *globalParams) *cli.Command {
	return &cli.Command{
		Name:    "tickets",
		Summary: "List, inspect, and change tickets",
		Subcommands: []*cli.Command{
			ticketsListCommand(globals),
			ticketsShowCommand(globals),
			ticketsCreateCommand(globals),
			ticketsEditCommand(globals),
			ticketsStatusCommand(globals),
			ticketsAssignCommand(globals),
			ticketsClassifyCommand(globals),
			ticketsSummarizeCommand(globals),
			ticketsSuggestCommand(globals),
		},
	}
}

type ticketsListParams struct {
	cli.JSONOutput
	Search   string `json:"search"   flag:"search"   desc:"case-insensitive substring of title or description"`
	Status   string `json:"status"   flag:"status"   desc:"open, in_progress, in_review, or done"`
	Priority string `json:"priority" flag:"priority" desc:"low, medium, high, or critical"`
	Project  int    `json:"project"  flag:"project"  desc:"project ID"`
	Assigned string `json:"assigned" flag:"assigned" desc:"all, me, or unassigned" default:"all"`
	Mine     bool   `json:"mine"     flag:"mine"     desc:"only tickets you work with (assigned or created, for developers)"`
}

// ticketListResult is the --json shape of "tickets list".
type ticketListResult struct {
	Tickets []schema.Ticket `json:"tickets"`
	Visible int             `json:"visible"`
	Total   int             `json:"total"`
}

func ticketsListCommand(globals *globalParams) *cli.Command {
	var params ticketsListParams

	return &cli.Command{
		Name:    "list",
		Summary: "List tickets matching filters",
		Description: `List tickets. Filters combine with AND; omitted filters match
everything. The search is a case-insensitive substring match on the
title and description.`,
		Usage: "swiftticket tickets list [flags]",
		Examples: []cli.Example{
			{Description: "Open critical tickets", Command: "swiftticket tickets list --status open --priority critical"},
			{Description: "Unassigned tickets in project 3", Command: "swiftticket tickets list --project 3 --assigned unassigned"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 0, "swiftticket tickets list [flags]"); err != nil {
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

			env, err := globals.connect(logger)
			if err != nil {
				return err
			}

			var session *authorization.Session
			if params.Mine || scope == ticketfilter.ScopeMe {
				if session, err = env.signIn(ctx); err != nil {
					return err
				}
			}

			tickets, err := env.client.ListTickets(ctx)
			if err != nil {
				return err
			}
			if params.Mine {
				tickets = ticketfilter.MyTickets(tickets, session)
			}

			result := ticketfilter.Apply(tickets, spec, session)
			logger.Debug("filtered tickets", "filter", spec.String(), "visible", result.Visible, "total", result.Total)

			if done, err := params.EmitJSON(ticketListResult{
				Tickets: result.Tickets,
				Visible: result.Visible,
				Total:   result.Total,
			}); done {
				return err
			}
			fmt.Print(termui.TicketList(env.styler, result, spec, env.width))
			return nil
		},
	}
}

type ticketShowParams struct {
	cli.JSONOutput
}

func ticketsShowCommand(globals *globalParams) *cli.Command {
	var params ticketShowParams

	return &cli.Command{
		Name:    "show",
		Summary: "Show one ticket",
		Usage:   "swiftticket tickets show <id> [flags]",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 1, "swiftticket tickets show <id>"); err != nil {
				return err
			}
			ticketID, err := parseTicketID(args[0])
			if err != nil {
				return err
			}
			env, err := globals.connect(logger)
			if err != nil {
				return err
			}
			ticket, err := env.client.GetTicket(ctx, ticketID)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(ticket); done {
				return err
			}
			fmt.Print(termui.TicketDetail(env.styler, *ticket, env.width))
			return nil
		},
	}
}

type ticketCreateParams struct {
	cli.JSONOutput
	Project     int    `json:"project"     flag:"project"     desc:"project ID (required)"`
	Title       string `json:"title"       flag:"title"       desc:"ticket title (required)"`
	Description string `json:"description" flag:"description" desc:"ticket description, markdown (required)"`
	Type        string `json:"type"        flag:"type"        desc:"bug, feature, improvement, or task (default: bug)"`
	Priority    string `json:"priority"    flag:"priority"    desc:"low, medium, high, or critical (default: medium)"`
	Component   string `json:"component"   flag:"component"   desc:"frontend, backend, api, database, mobile, or devops"`
	Assignee    int    `json:"assignee"    flag:"assignee"    desc:"user ID of a developer or admin to assign"`
	Classify    bool   `json:"classify"    flag:"classify"    desc:"ask the AI assistant for type, priority, and component first"`
}

func ticketsCreateCommand(globals *globalParams) *cli.Command {
	var params ticketCreateParams

	return &cli.Command{
		Name:    "create",
		Summary: "Create a ticket",
		Description: `Create a ticket in a project. Admins and project managers may create
tickets; developers may not.

With --classify, the AI assistant suggests type, priority, and
component from the title and description. Flags given explicitly win
over the suggestion. A failed classification prints a notice and the
ticket is created with the remaining values.`,
		Usage: "swiftticket tickets create --project <id> --title <title> --description <text> [flags]",
		Examples: []cli.Example{
			{
				Description: "File a high-priority frontend bug",
				Command:     `swiftticket tickets create --project 3 --title "Login button dead on Safari" --description "Nothing happens on click." --priority high --component frontend`,
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 0, "swiftticket tickets create [flags]"); err != nil {
				return err
			}
			env, err := globals.connect(logger)
			if err != nil {
				return err
			}
			session, err := env.authorize(ctx, authorization.ActionCreateTicket)
			if err != nil {
				return err
			}
			if params.Assignee != 0 {
				if err := checkAssignee(ctx, env, params.Assignee); err != nil {
					return err
				}
			}

			draft := schema.NewTicketDraft(params.Project)
			draft.Title = params.Title
			draft.Description = params.Description

			if params.Classify {
				assistant, err := env.assistant()
				if err != nil {
					return err
				}
				classification, err := assistant.Classify(ctx, session, draft.Title, draft.Description)
				switch {
				case err == nil:
					classification.Apply(&draft)
				case schema.IsValidation(err):
					return err
				default:
					logger.Warn("classification failed, creating without it", "error", err)
					fmt.Fprintln(os.Stderr, termui.AINotice(env.styler, err))
				}
			}

			if params.Type != "" {
				draft.Type = schema.TicketType(params.Type)
			}
			if params.Priority != "" {
				draft.Priority = schema.Priority(params.Priority)
			}
			if params.Component != "" {
				draft.Component = schema.Component(params.Component)
			}
			if params.Assignee != 0 {
				draft.Assign(params.Assignee)
			}

			ticket, err := env.client.CreateTicket(ctx, draft)
			if err != nil {
				return err
			}
			logger.Info("ticket created", "ticket_id", ticket.ID, "project_id", params.Project)

			if done, err := params.EmitJSON(ticket); done {
				return err
			}
			fmt.Printf("Created %s: %s\n", termui.TicketID(*ticket), ticket.Title)
			return nil
		},
	}
}

// checkAssignee resolves userID against the server's users and checks
// that the role may hold assignments.
func checkAssignee(ctx context.Context, env *environment, userID int) error {
	users, err := env.client.ListUsers(ctx)
	if err != nil {
		return err
	}
	user, found := schema.FindUserByID(users, userID)
	if !found {
		return schema.Invalid("assigned_to_id", "no user with id %d", userID)
	}
	return schema.ValidateAssignee(user)
}

type ticketEditParams struct {
	cli.JSONOutput
	Title       string `json:"title"       flag:"title"       desc:"new title"`
	Description string `json:"description" flag:"description" desc:"new description"`
	Type        string `json:"type"        flag:"type"        desc:"bug, feature, improvement, or task"`
	Priority    string `json:"priority"    flag:"priority"    desc:"low, medium, high, or critical"`
	Component   string `json:"component"   flag:"component"   desc:"frontend, backend, api, database, mobile, or devops"`
}

// edit returns the fields named by non-empty flags.
func (params *ticketEditParams) edit() schema.TicketEdit {
	var edit schema.TicketEdit
	if params.Title != "" {
		edit.Title = &params.Title
	}
	if params.Description != "" {
		edit.Description = &params.Description
	}
	if params.Type != "" {
		ticketType := schema.TicketType(params.Type)
		edit.Type = &ticketType
	}
	if params.Priority != "" {
		priority := schema.Priority(params.Priority)
		edit.Priority = &priority
	}
	if params.Component != "" {
		component := schema.Component(params.Component)
		edit.Component = &component
	}
	return edit
}

func ticketsEditCommand(globals *globalParams) *cli.Command {
	var params ticketEditParams

	return &cli.Command{
		Name:    "edit",
		Summary: "Change a ticket's title, description, type, priority, or component",
		Usage:   "swiftticket tickets edit <id> [flags]",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 1, "swiftticket tickets edit <id> [flags]"); err != nil {
				return err
			}
			ticketID, err := parseTicketID(args[0])
			if err != nil {
				return err
			}
			edit := params.edit()
			if err := edit.Validate(); err != nil {
				return err
			}

			env, err := globals.connect(logger)
			if err != nil {
				return err
			}
			session, err := env.authorize(ctx, authorization.ActionEditTicket)
			if err != nil {
				return err
			}
			machine, err := env.machine()
			if err != nil {
				return err
			}
			ticket, err := env.client.GetTicket(ctx, ticketID)
			if err != nil {
				return err
			}
			updated, err := machine.Edit(ctx, session, *ticket, edit)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(updated); done {
				return err
			}
			fmt.Printf("Updated %s: %s\n", termui.TicketID(updated), updated.Title)
			return nil
		},
	}
}

type ticketStatusParams struct {
	cli.JSONOutput
}

func ticketsStatusCommand(globals *globalParams) *cli.Command {
	var params ticketStatusParams

	return &cli.Command{
		Name:    "status",
		Summary: "Move a ticket to another workflow status",
		Description: `Move a ticket to open, in_progress, in_review, or done. Any status
can be reached from any other. Setting the current status changes
nothing and makes no request. Only admins and developers may change
status.`,
		Usage: "swiftticket tickets status <id> <status>",
		Examples: []cli.Example{
			{Description: "Start work on API-12", Command: "swiftticket tickets status API-12 in_progress"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 2, "swiftticket tickets status <id> <status>"); err != nil {
				return err
			}
			ticketID, err := parseTicketID(args[0])
			if err != nil {
				return err
			}
			target := schema.Status(args[1])
			if !target.IsKnown() {
				return cli.Validation("invalid status %q (want open, in_progress, in_review, or done)", args[1])
			}

			env, err := globals.connect(logger)
			if err != nil {
				return err
			}
			session, err := env.authorize(ctx, authorization.ActionChangeTicketStatus)
			if err != nil {
				return err
			}
			machine, err := env.machine()
			if err != nil {
				return err
			}
			ticket, err := env.client.GetTicket(ctx, ticketID)
			if err != nil {
				return err
			}
			previous := ticket.Status
			updated, err := machine.ChangeStatus(ctx, session, *ticket, target)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(updated); done {
				return err
			}
			if previous == target {
				fmt.Printf("%s is already %s\n", termui.TicketID(updated), env.styler.Status(updated.Status))
				return nil
			}
			fmt.Printf("%s: %s -> %s\n", termui.TicketID(updated), env.styler.Status(previous), env.styler.Status(updated.Status))
			return nil
		},
	}
}

type ticketAssignParams struct {
	cli.JSONOutput
	User int  `json:"user" flag:"user" desc:"user ID of a developer or admin"`
	None bool `json:"none" flag:"none" desc:"clear the assignee"`
}

func ticketsAssignCommand(globals *globalParams) *cli.Command {
	var params ticketAssignParams

	return &cli.Command{
		Name:    "assign",
		Summary: "Assign or unassign a ticket",
		Description: `Set a ticket's assignee to a developer or admin, or clear it with
--none. Only admins and project managers may reassign tickets.`,
		Usage: "swiftticket tickets assign <id> (--user <id> | --none)",
		Examples: []cli.Example{
			{Description: "Assign API-12 to user 7", Command: "swiftticket tickets assign API-12 --user 7"},
			{Description: "Unassign API-12", Command: "swiftticket tickets assign API-12 --none"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 1, "swiftticket tickets assign <id> (--user <id> | --none)"); err != nil {
				return err
			}
			ticketID, err := parseTicketID(args[0])
			if err != nil {
				return err
			}
			if (params.User == 0) == !params.None {
				return cli.Validation("exactly one of --user or --none is required")
			}
			if params.User < 0 {
				return cli.Validation("invalid user id %d", params.User)
			}

			env, err := globals.connect(logger)
			if err != nil {
				return err
			}
			session, err := env.authorize(ctx, authorization.ActionReassignTicket)
			if err != nil {
				return err
			}
			machine, err := env.machine()
			if err != nil {
				return err
			}
			ticket, err := env.client.GetTicket(ctx, ticketID)
			if err != nil {
				return err
			}
			var candidates []schema.User
			if params.User != 0 {
				users, err := env.client.ListUsers(ctx)
				if err != nil {
					return err
				}
				candidates = ticketfilter.Candidates(users)
			}
			updated, err := machine.Reassign(ctx, session, *ticket, candidates, params.User)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(updated); done {
				return err
			}
			if !updated.IsAssigned() {
				fmt.Printf("%s is now unassigned\n", termui.TicketID(updated))
				return nil
			}
			fmt.Printf("%s assigned to %s\n", termui.TicketID(updated), updated.AssigneeName())
			return nil
		},
	}
}
