// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package activity

import (
	"fmt"
	"time"
)

// RelativeTime renders the age of created as seen at now:
//
//	under a minute      just now
//	under an hour       {m}m ago
//	under a day         {h}h ago
//	under a week        {d}d ago
//	otherwise           Jan 2, plus ", 2006" when the year differs
//
// Ages are truncated to whole seconds before bucketing. Timestamps in
// the future render as "just now".
func RelativeTime(created, now time.Time) string {
	seconds := int64(now.Sub(created) / time.Second)
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	case seconds < 604800:
		return fmt.Sprintf("%dd ago", seconds/86400)
	}

	// Calendar fields come from created's own location, which is the
	// server's offset as decoded from the timestamp.
	if created.Year() != now.In(created.Location()).Year() {
		return created.Format("Jan 2, 2006")
	}
	return created.Format("Jan 2")
}
