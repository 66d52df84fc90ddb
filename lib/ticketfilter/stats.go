// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketfilter

import (
	"errors"
	"fmt"

	"github.com/swiftticket/swiftticket/lib/schema"
)

// Stats counts tickets by workflow status.
type Stats struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`

	// InReviewOrUnlisted counts tickets whose status is in_review or
	// any value outside the workflow, such as the backend's
	// needs_review. It is always Total - Open - InProgress - Done.
	InReviewOrUnlisted int `json:"in_review_or_unlisted"`

	Done int `json:"done"`

	// FromServer is true when the counts came from the project stats
	// endpoint rather than local aggregation.
	FromServer bool `json:"from_server"`
}

// Aggregate counts tickets by exact status match.
func Aggregate(tickets []schema.Ticket) Stats {
	stats := Stats{Total: len(tickets)}
	for _, ticket := range tickets {
		switch ticket.Status {
		case schema.StatusOpen:
			stats.Open++
		case schema.StatusInProgress:
			stats.InProgress++
		case schema.StatusDone:
			stats.Done++
		}
	}
	stats.InReviewOrUnlisted = stats.Total - stats.Open - stats.InProgress - stats.Done
	return stats
}

// FromServer converts the project stats endpoint's response into
// Stats. The server reports done tickets as completed and does not
// count in_review separately; the remainder is derived.
func FromServer(server schema.ProjectStats) Stats {
	stats := Stats{
		Total:      server.TotalTickets,
		Open:       server.OpenTickets,
		InProgress: server.InProgressTickets,
		Done:       server.CompletedTickets,
		FromServer: true,
	}
	stats.InReviewOrUnlisted = stats.Total - stats.Open - stats.InProgress - stats.Done
	return stats
}

// Resolve returns the server's counts when server is non-nil and local
// aggregation of tickets otherwise.
func Resolve(server *schema.ProjectStats, tickets []schema.Ticket) Stats {
	if server != nil {
		return FromServer(*server)
	}
	return Aggregate(tickets)
}

// CrossCheck compares server counts with a local aggregation of the
// same tickets and reports every field that disagrees.
func CrossCheck(server schema.ProjectStats, local Stats) error {
	var errs []error
	compare := func(field string, serverValue, localValue int) {
		if serverValue != localValue {
			errs = append(errs, fmt.Errorf("%s: server %d, local %d", field, serverValue, localValue))
		}
	}
	compare("total_tickets", server.TotalTickets, local.Total)
	compare("open_tickets", server.OpenTickets, local.Open)
	compare("in_progress_tickets", server.InProgressTickets, local.InProgress)
	compare("completed_tickets", server.CompletedTickets, local.Done)
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("ticketfilter: stats mismatch: %w", errors.Join(errs...))
}
