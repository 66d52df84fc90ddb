// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracker

import (
	"context"

	"github.com/swiftticket/swiftticket/lib/aiassist"
	"github.com/swiftticket/swiftticket/lib/schema"
)

// Classify asks the server to suggest a type, priority, and component
// for a ticket draft. Values are returned as the server sent them;
// aiassist drops any outside the known enumerations.
func (client *Client) Classify(ctx context.Context, title, description string) (aiassist.Classification, error) {
	var classification aiassist.Classification
	request := schema.ClassifyRequest{Title: title, Description: description}
	if err := client.post(ctx, "/tickets/ai_classify/", request, &classification); err != nil {
		return aiassist.Classification{}, err
	}
	return classification, nil
}

// Summarize asks the server to generate and store a summary for a
// ticket and returns the summary text.
func (client *Client) Summarize(ctx context.Context, ticketID int) (string, error) {
	var response struct {
		Summary string `json:"summary"`
		Message string `json:"message"`
	}
	if err := client.post(ctx, ticketPath(ticketID)+"ai_summarize/", nil, &response); err != nil {
		return "", err
	}
	return response.Summary, nil
}

// SuggestAssignee asks the server for the username best suited to
// work on a ticket.
func (client *Client) SuggestAssignee(ctx context.Context, ticketID int) (string, error) {
	var response struct {
		SuggestedAssignee *string `json:"suggested_assignee"`
	}
	if err := client.post(ctx, ticketPath(ticketID)+"ai_suggest_assignee/", nil, &response); err != nil {
		return "", err
	}
	if response.SuggestedAssignee == nil {
		return "", nil
	}
	return *response.SuggestedAssignee, nil
}
