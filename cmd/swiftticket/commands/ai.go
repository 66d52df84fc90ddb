// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/swiftticket/swiftticket/cmd/swiftticket/cli"
	"github.com/swiftticket/swiftticket/lib/authorization"
	"github.com/swiftticket/swiftticket/lib/termui"
	"github.com/swiftticket/swiftticket/lib/ticketfilter"
)

type classifyParams struct {
	cli.JSONOutput
	Title       string `json:"title"       flag:"title"       desc:"draft title"`
	Description string `json:"description" flag:"description" desc:"draft description"`
}

func ticketsClassifyCommand(globals *globalParams) *cli.Command {
	var params classifyParams

	return &cli.Command{
		Name:    "classify",
		Summary: "Ask the AI assistant to classify a draft ticket",
		Description: `Suggest a type, priority, and component for a ticket that has not
been created yet. At least one of --title or --description is
required. Available to admins and project managers.`,
		Usage:  "swiftticket tickets classify --title <title> [--description <text>]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 0, "swiftticket tickets classify --title <title> [--description <text>]"); err != nil {
				return err
			}
			env, err := globals.connect(logger)
			if err != nil {
				return err
			}
			session, err := env.authorize(ctx, authorization.ActionUseAIFeatures)
			if err != nil {
				return err
			}
			assistant, err := env.assistant()
			if err != nil {
				return err
			}
			classification, err := assistant.Classify(ctx, session, params.Title, params.Description)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(classification); done {
				return err
			}
			fmt.Print(termui.Classification(env.styler, classification))
			return nil
		},
	}
}

type summarizeParams struct {
	cli.JSONOutput
}

func ticketsSummarizeCommand(globals *globalParams) *cli.Command {
	var params summarizeParams

	return &cli.Command{
		Name:    "summarize",
		Summary: "Generate an AI summary of a ticket's description",
		Description: `Generate a short summary of a ticket's description. The server stores
it on the ticket. A ticket that already has a summary is left as it
is. Available to admins and project managers.`,
		Usage:  "swiftticket tickets summarize <id>",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 1, "swiftticket tickets summarize <id>"); err != nil {
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
			session, err := env.authorize(ctx, authorization.ActionUseAIFeatures)
			if err != nil {
				return err
			}
			assistant, err := env.assistant()
			if err != nil {
				return err
			}
			ticket, err := env.client.GetTicket(ctx, ticketID)
			if err != nil {
				return err
			}
			summarized, err := assistant.Summarize(ctx, session, *ticket)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(summarized); done {
				return err
			}
			fmt.Println(env.styler.Header("AI Summary"))
			fmt.Print(termui.Markdown(env.styler, summarized.Summary, env.width))
			return nil
		},
	}
}

type suggestParams struct {
	cli.JSONOutput
	Apply bool `json:"apply" flag:"apply" desc:"assign the ticket to the suggested user"`
}

func ticketsSuggestCommand(globals *globalParams) *cli.Command {
	var params suggestParams

	return &cli.Command{
		Name:    "suggest",
		Summary: "Ask the AI assistant who should take a ticket",
		Description: `Suggest an assignee from the developers and admins, based on
expertise and current workload. With --apply, a matched suggestion
is assigned right away.`,
		Usage:  "swiftticket tickets suggest <id> [--apply]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 1, "swiftticket tickets suggest <id> [--apply]"); err != nil {
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
			session, err := env.authorize(ctx, authorization.ActionUseAIFeatures)
			if err != nil {
				return err
			}
			if params.Apply {
				if err := session.Require(authorization.ActionReassignTicket); err != nil {
					return cli.Forbidden("%w", err)
				}
			}
			assistant, err := env.assistant()
			if err != nil {
				return err
			}
			ticket, err := env.client.GetTicket(ctx, ticketID)
			if err != nil {
				return err
			}
			users, err := env.client.ListUsers(ctx)
			if err != nil {
				return err
			}
			candidates := ticketfilter.Candidates(users)

			suggestion, err := assistant.SuggestAssignee(ctx, session, *ticket, candidates)
			if err != nil {
				return err
			}

			if params.Apply && suggestion.Matched() {
				machine, err := env.machine()
				if err != nil {
					return err
				}
				updated, err := machine.Reassign(ctx, session, *ticket, candidates, suggestion.User.ID)
				if err != nil {
					return err
				}
				if done, err := params.EmitJSON(updated); done {
					return err
				}
				fmt.Println(termui.Suggestion(env.styler, suggestion))
				fmt.Printf("%s assigned to %s\n", termui.TicketID(updated), updated.AssigneeName())
				return nil
			}

			if done, err := params.EmitJSON(suggestion); done {
				return err
			}
			fmt.Println(termui.Suggestion(env.styler, suggestion))
			return nil
		},
	}
}
