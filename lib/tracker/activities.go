// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracker

import (
	"context"

	"github.com/swiftticket/swiftticket/lib/activity"
	"github.com/swiftticket/swiftticket/lib/schema"
)

// ListActivities returns the activity log filtered by query, newest
// first.
func (client *Client) ListActivities(ctx context.Context, query activity.Query) ([]schema.Activity, error) {
	path := "/activities/"
	if encoded := query.Values().Encode(); encoded != "" {
		path += "?" + encoded
	}
	return list[schema.Activity](ctx, client, path)
}

// RecentActivities returns the most recent activity.RecentLimit
// entries across all projects.
func (client *Client) RecentActivities(ctx context.Context) ([]schema.Activity, error) {
	return list[schema.Activity](ctx, client, "/activities/recent/")
}
