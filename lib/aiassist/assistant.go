// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package aiassist

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/swiftticket/swiftticket/lib/authorization"
	"github.com/swiftticket/swiftticket/lib/schema"
)

// Gateway is the AI service as exposed by the server.
// tracker.Client implements it.
type Gateway interface {
	Classify(ctx context.Context, title, description string) (Classification, error)
	Summarize(ctx context.Context, ticketID int) (string, error)
	SuggestAssignee(ctx context.Context, ticketID int) (string, error)
}

// Classification is a suggested type, priority, and component for a
// ticket draft. Empty fields were not suggested.
type Classification struct {
	Type      schema.TicketType `json:"type,omitempty"`
	Priority  schema.Priority   `json:"priority,omitempty"`
	Component schema.Component  `json:"component,omitempty"`
}

// IsEmpty reports whether no field was suggested.
func (classification Classification) IsEmpty() bool {
	return classification.Type == "" && classification.Priority == "" && classification.Component == ""
}

// sanitized drops values outside the closed enumerations.
func (classification Classification) sanitized() Classification {
	if !classification.Type.IsKnown() {
		classification.Type = ""
	}
	if !classification.Priority.IsKnown() {
		classification.Priority = ""
	}
	if !classification.Component.IsKnown() {
		classification.Component = ""
	}
	return classification
}

// Apply copies the suggested fields into draft, leaving fields the
// classification does not set untouched.
func (classification Classification) Apply(draft *schema.TicketDraft) {
	if classification.Type != "" {
		draft.Type = classification.Type
	}
	if classification.Priority != "" {
		draft.Priority = classification.Priority
	}
	if classification.Component != "" {
		draft.Component = classification.Component
	}
}

// Suggestion is the outcome of an assignee suggestion. When the
// suggested username matches no candidate, User is nil and Notice
// explains why nothing was selected.
type Suggestion struct {
	Username string       `json:"username"`
	User     *schema.User `json:"user,omitempty"`
	Notice   string       `json:"notice,omitempty"`
}

// Matched reports whether the suggestion resolved to a candidate.
func (suggestion Suggestion) Matched() bool {
	return suggestion.User != nil
}

// Config holds the dependencies of an Assistant.
type Config struct {
	// Gateway is required.
	Gateway Gateway

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Assistant applies role gating, input validation, and result cleanup
// around a Gateway.
type Assistant struct {
	gateway Gateway
	logger  *slog.Logger
}

// New creates an Assistant.
func New(config Config) (*Assistant, error) {
	if config.Gateway == nil {
		return nil, errors.New("aiassist: Gateway is required")
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Assistant{gateway: config.Gateway, logger: logger}, nil
}

// Classify suggests a classification for a draft's title and
// description. At least one of them must be non-blank.
func (assistant *Assistant) Classify(ctx context.Context, session *authorization.Session, title, description string) (Classification, error) {
	if err := session.Require(authorization.ActionUseAIFeatures); err != nil {
		return Classification{}, err
	}
	if strings.TrimSpace(title) == "" && strings.TrimSpace(description) == "" {
		return Classification{}, schema.Invalid("", "enter a title or description first")
	}

	raw, err := assistant.gateway.Classify(ctx, title, description)
	if err != nil {
		assistant.logger.Warn("classification failed", "error", err)
		return Classification{}, &AIUnavailableError{Operation: OperationClassify, Err: err}
	}
	classification := raw.sanitized()
	if classification != raw {
		assistant.logger.Debug("dropped unknown classification values",
			"type", raw.Type,
			"priority", raw.Priority,
			"component", raw.Component,
		)
	}
	if classification.IsEmpty() {
		return Classification{}, &AIUnavailableError{Operation: OperationClassify}
	}
	return classification, nil
}

// summaryPreamble matches the conversational lead-in some models put
// before the summary proper, through the first colon on its line.
var summaryPreamble = regexp.MustCompile(`(?i)^here is a summary[^:\n]*:\s*`)

// CleanSummary strips a leading "Here is a summary ...:" preamble and
// surrounding quotes from model output.
func CleanSummary(text string) string {
	text = strings.TrimSpace(text)
	text = summaryPreamble.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"'`)
	return strings.TrimSpace(text)
}

// Summarize requests a summary for ticket. A summary is written once:
// a ticket that already has one is refused with a ValidationError and
// the gateway is not called. On success the returned copy carries the
// new summary. On failure the ticket is returned unchanged with an
// *AIUnavailableError.
func (assistant *Assistant) Summarize(ctx context.Context, session *authorization.Session, ticket schema.Ticket) (schema.Ticket, error) {
	if err := session.Require(authorization.ActionUseAIFeatures); err != nil {
		return ticket, err
	}
	if ticket.HasSummary() {
		return ticket, schema.Invalid("summary", "ticket %d already has a summary", ticket.ID)
	}

	text, err := assistant.gateway.Summarize(ctx, ticket.ID)
	if err != nil {
		assistant.logger.Warn("summarization failed", "ticket_id", ticket.ID, "error", err)
		return ticket, &AIUnavailableError{Operation: OperationSummarize, Err: err}
	}
	summary := CleanSummary(text)
	if summary == "" {
		assistant.logger.Warn("summarization returned empty text", "ticket_id", ticket.ID)
		return ticket, &AIUnavailableError{Operation: OperationSummarize}
	}

	ticket.Summary = summary
	return ticket, nil
}

// SuggestAssignee asks for an assignee and resolves the answer against
// candidates. Only developers and admins are eligible, and usernames
// match case-sensitively. An unmatched suggestion is not an error: the
// returned Suggestion has no User and carries a notice.
func (assistant *Assistant) SuggestAssignee(ctx context.Context, session *authorization.Session, ticket schema.Ticket, candidates []schema.User) (Suggestion, error) {
	if err := session.Require(authorization.ActionUseAIFeatures); err != nil {
		return Suggestion{}, err
	}

	username, err := assistant.gateway.SuggestAssignee(ctx, ticket.ID)
	if err != nil {
		assistant.logger.Warn("assignee suggestion failed", "ticket_id", ticket.ID, "error", err)
		return Suggestion{}, &AIUnavailableError{Operation: OperationSuggest, Err: err}
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return Suggestion{}, &AIUnavailableError{Operation: OperationSuggest}
	}

	suggestion := Suggestion{Username: username}
	for _, candidate := range candidates {
		if candidate.Username == username && candidate.IsAssignable() {
			user := candidate
			suggestion.User = &user
			return suggestion, nil
		}
	}
	suggestion.Notice = "AI suggested: " + username + ", but user not found"
	assistant.logger.Info("suggested assignee not among candidates",
		"ticket_id", ticket.ID,
		"username", username,
	)
	return suggestion, nil
}
