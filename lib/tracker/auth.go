// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracker

import (
	"context"

	"github.com/swiftticket/swiftticket/lib/schema"
)

// LoginResult is the token pair and user returned by Login.
type LoginResult struct {
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
	User    schema.User `json:"user"`
}

// Login exchanges credentials for tokens. On success the client uses
// the new access token for subsequent requests.
func (client *Client) Login(ctx context.Context, credentials schema.Credentials) (*LoginResult, error) {
	if err := credentials.Validate(); err != nil {
		return nil, err
	}
	var result LoginResult
	if err := client.post(ctx, "/auth/login/", credentials, &result); err != nil {
		return nil, err
	}
	if result.Access != "" {
		client.SetToken(result.Access)
	}
	return &result, nil
}

// Register creates an account. The registration is validated before
// any request is made.
func (client *Client) Register(ctx context.Context, registration schema.Registration) (*schema.User, error) {
	if err := registration.Validate(); err != nil {
		return nil, err
	}
	var user schema.User
	if err := client.post(ctx, "/auth/register/", registration, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every user.
func (client *Client) ListUsers(ctx context.Context) ([]schema.User, error) {
	return list[schema.User](ctx, client, "/auth/users/")
}

// Me returns the user the token belongs to.
func (client *Client) Me(ctx context.Context) (*schema.User, error) {
	var user schema.User
	if err := client.get(ctx, "/auth/me/", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile replaces the current user's bio and expertise areas.
func (client *Client) UpdateProfile(ctx context.Context, update schema.ProfileUpdate) (*schema.User, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	var user schema.User
	if err := client.put(ctx, "/auth/profile/", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateInfo replaces the current user's name and email.
func (client *Client) UpdateInfo(ctx context.Context, update schema.InfoUpdate) (*schema.User, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	var user schema.User
	if err := client.put(ctx, "/auth/update-info/", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
