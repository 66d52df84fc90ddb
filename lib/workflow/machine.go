// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/swiftticket/swiftticket/lib/authorization"
	"github.com/swiftticket/swiftticket/lib/clock"
	"github.com/swiftticket/swiftticket/lib/schema"
)

// Backend applies ticket mutations on the server and returns the
// server's view of the ticket afterwards. tracker.Client implements it.
type Backend interface {
	UpdateStatus(ctx context.Context, ticketID int, status schema.Status) (*schema.Ticket, error)
	ReassignTicket(ctx context.Context, ticketID int, reassignment schema.Reassignment) (*schema.Ticket, error)
	EditTicket(ctx context.Context, ticketID int, edit schema.TicketEdit) (*schema.Ticket, error)
}

// Config holds the dependencies of a Machine.
type Config struct {
	// Backend is required.
	Backend Backend

	// Clock stamps updated_at when an acknowledgement omits it.
	// Defaults to clock.Real().
	Clock clock.Clock

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Machine executes ticket mutations with acknowledge-before-commit
// semantics.
type Machine struct {
	backend Backend
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a Machine.
func New(config Config) (*Machine, error) {
	if config.Backend == nil {
		return nil, errors.New("workflow: Backend is required")
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{backend: config.Backend, clock: clk, logger: logger}, nil
}

// ChangeStatus moves ticket to target. Setting the current status is a
// no-op: the ticket is returned unchanged (updated_at included) and the
// backend is not called. On success the returned ticket is the
// backend's acknowledgement. On failure the original ticket is returned
// with the error.
func (machine *Machine) ChangeStatus(ctx context.Context, session *authorization.Session, ticket schema.Ticket, target schema.Status) (schema.Ticket, error) {
	if err := session.Require(authorization.ActionChangeTicketStatus); err != nil {
		return ticket, err
	}
	if err := ValidateTransition(ticket.Status, target); err != nil {
		return ticket, err
	}
	if ticket.Status == target {
		machine.logger.Debug("status unchanged, skipping update",
			"ticket_id", ticket.ID,
			"status", target,
		)
		return ticket, nil
	}

	acknowledged, err := machine.backend.UpdateStatus(ctx, ticket.ID, target)
	if err != nil {
		return ticket, fmt.Errorf("workflow: changing ticket %d status to %s: %w", ticket.ID, target, err)
	}

	committed := machine.commit(ticket, acknowledged, func(fallback *schema.Ticket) {
		fallback.Status = target
	})
	machine.logger.Info("ticket status changed",
		"ticket_id", ticket.ID,
		"from", ticket.Status,
		"to", committed.Status,
		"user_id", session.UserID(),
	)
	return committed, nil
}

// Reassign sets the ticket's assignee to assigneeID, or clears it when
// assigneeID is zero. A non-zero assignee must appear in candidates and
// hold an assignable role. Reassigning to the current assignee is a
// no-op.
func (machine *Machine) Reassign(ctx context.Context, session *authorization.Session, ticket schema.Ticket, candidates []schema.User, assigneeID int) (schema.Ticket, error) {
	if err := session.Require(authorization.ActionReassignTicket); err != nil {
		return ticket, err
	}

	var assignee *schema.User
	if assigneeID != 0 {
		candidate, found := schema.FindUserByID(candidates, assigneeID)
		if !found {
			return ticket, schema.Invalid("assigned_to_id", "user %d is not an assignment candidate", assigneeID)
		}
		if err := schema.ValidateAssignee(candidate); err != nil {
			return ticket, err
		}
		assignee = &candidate
	}

	if (assignee == nil && !ticket.IsAssigned()) || (assignee != nil && ticket.IsAssignedTo(assignee.ID)) {
		machine.logger.Debug("assignee unchanged, skipping update", "ticket_id", ticket.ID)
		return ticket, nil
	}

	var reassignment schema.Reassignment
	if assignee != nil {
		id := assignee.ID
		reassignment.AssigneeID = &id
	}

	acknowledged, err := machine.backend.ReassignTicket(ctx, ticket.ID, reassignment)
	if err != nil {
		return ticket, fmt.Errorf("workflow: reassigning ticket %d: %w", ticket.ID, err)
	}

	committed := machine.commit(ticket, acknowledged, func(fallback *schema.Ticket) {
		fallback.AssignedTo = assignee
	})
	machine.logger.Info("ticket reassigned",
		"ticket_id", ticket.ID,
		"assignee", committed.AssigneeName(),
		"user_id", session.UserID(),
	)
	return committed, nil
}

// Edit changes the descriptive fields named by edit.
func (machine *Machine) Edit(ctx context.Context, session *authorization.Session, ticket schema.Ticket, edit schema.TicketEdit) (schema.Ticket, error) {
	if err := session.Require(authorization.ActionEditTicket); err != nil {
		return ticket, err
	}
	if err := edit.Validate(); err != nil {
		return ticket, err
	}

	acknowledged, err := machine.backend.EditTicket(ctx, ticket.ID, edit)
	if err != nil {
		return ticket, fmt.Errorf("workflow: editing ticket %d: %w", ticket.ID, err)
	}

	committed := machine.commit(ticket, acknowledged, func(fallback *schema.Ticket) {
		applyEdit(fallback, edit)
	})
	machine.logger.Info("ticket edited", "ticket_id", ticket.ID, "user_id", session.UserID())
	return committed, nil
}

// commit produces the ticket value to store after a successful call.
// The acknowledgement wins when present. An empty acknowledgement
// (a 2xx with no body) applies the requested change to a copy of the
// original. Either way a missing updated_at is stamped from the clock.
func (machine *Machine) commit(original schema.Ticket, acknowledged *schema.Ticket, apply func(*schema.Ticket)) schema.Ticket {
	var committed schema.Ticket
	if acknowledged != nil && acknowledged.ID != 0 {
		committed = *acknowledged
	} else {
		committed = original
		apply(&committed)
		committed.UpdatedAt = machine.clock.Now()
	}
	if committed.UpdatedAt.IsZero() {
		committed.UpdatedAt = machine.clock.Now()
	}
	return committed
}

func applyEdit(ticket *schema.Ticket, edit schema.TicketEdit) {
	if edit.Title != nil {
		ticket.Title = *edit.Title
	}
	if edit.Description != nil {
		ticket.Description = *edit.Description
	}
	if edit.Type != nil {
		ticket.Type = *edit.Type
	}
	if edit.Priority != nil {
		ticket.Priority = *edit.Priority
	}
	if edit.Component != nil {
		ticket.Component = *edit.Component
	}
}
