// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracker

import (
	"context"
	"fmt"

	"github.com/swiftticket/swiftticket/lib/schema"
)

// MembershipResult is the server's acknowledgement of a membership
// change.
type MembershipResult struct {
	Message string         `json:"message"`
	Project schema.Project `json:"project"`
}

// ListProjects returns the projects visible to the current user.
func (client *Client) ListProjects(ctx context.Context) ([]schema.Project, error) {
	return list[schema.Project](ctx, client, "/projects/")
}

// GetProject returns a single project.
func (client *Client) GetProject(ctx context.Context, projectID int) (*schema.Project, error) {
	var project schema.Project
	if err := client.get(ctx, fmt.Sprintf("/projects/%d/", projectID), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a project. The draft is validated before any
// request is made.
func (client *Client) CreateProject(ctx context.Context, draft schema.ProjectDraft) (*schema.Project, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var project schema.Project
	if err := client.post(ctx, "/projects/", draft, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject replaces a project's name, description, key, and
// member list.
func (client *Client) UpdateProject(ctx context.Context, projectID int, draft schema.ProjectDraft) (*schema.Project, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var project schema.Project
	if err := client.put(ctx, fmt.Sprintf("/projects/%d/", projectID), draft, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// ProjectStats returns the server's status breakdown for a project.
func (client *Client) ProjectStats(ctx context.Context, projectID int) (*schema.ProjectStats, error) {
	var stats schema.ProjectStats
	if err := client.get(ctx, fmt.Sprintf("/projects/%d/stats/", projectID), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// AddMember adds a user to a project.
func (client *Client) AddMember(ctx context.Context, projectID, userID int) (*MembershipResult, error) {
	return client.changeMembership(ctx, projectID, "add_member", userID)
}

// RemoveMember removes a user from a project. The server refuses to
// remove the project's creator.
func (client *Client) RemoveMember(ctx context.Context, projectID, userID int) (*MembershipResult, error) {
	return client.changeMembership(ctx, projectID, "remove_member", userID)
}

func (client *Client) changeMembership(ctx context.Context, projectID int, action string, userID int) (*MembershipResult, error) {
	if userID <= 0 {
		return nil, schema.Invalid("user_id", "user_id is required")
	}
	var result MembershipResult
	path := fmt.Sprintf("/projects/%d/%s/", projectID, action)
	if err := client.post(ctx, path, schema.MemberChange{UserID: userID}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AvailableUsers returns the users who may be added to projects:
// developers and project managers.
func (client *Client) AvailableUsers(ctx context.Context) ([]schema.User, error) {
	return list[schema.User](ctx, client, "/projects/available_users/")
}
