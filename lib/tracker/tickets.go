// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracker

import (
	"context"
	"fmt"

	"github.com/swiftticket/swiftticket/lib/schema"
)

// ListTickets returns every ticket visible to the current user.
func (client *Client) ListTickets(ctx context.Context) ([]schema.Ticket, error) {
	return list[schema.Ticket](ctx, client, "/tickets/")
}

// MyTickets returns the tickets assigned to or created by the current
// user.
func (client *Client) MyTickets(ctx context.Context) ([]schema.Ticket, error) {
	return list[schema.Ticket](ctx, client, "/tickets/my_tickets/")
}

// GetTicket returns a single ticket.
func (client *Client) GetTicket(ctx context.Context, ticketID int) (*schema.Ticket, error) {
	var ticket schema.Ticket
	if err := client.get(ctx, ticketPath(ticketID), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// CreateTicket creates a ticket. The draft is validated before any
// request is made.
func (client *Client) CreateTicket(ctx context.Context, draft schema.TicketDraft) (*schema.Ticket, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var ticket schema.Ticket
	if err := client.post(ctx, "/tickets/", draft, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// UpdateTicket sends an arbitrary update body to the ticket resource.
// EditTicket and ReassignTicket are the typed entry points; this is
// the shared transport for both.
func (client *Client) UpdateTicket(ctx context.Context, ticketID int, body any) (*schema.Ticket, error) {
	var ticket schema.Ticket
	if err := client.put(ctx, ticketPath(ticketID), body, &ticket); err != nil {
		return nil, err
	}
	return acknowledged(&ticket), nil
}

// EditTicket changes the descriptive fields named by edit.
func (client *Client) EditTicket(ctx context.Context, ticketID int, edit schema.TicketEdit) (*schema.Ticket, error) {
	if err := edit.Validate(); err != nil {
		return nil, err
	}
	return client.UpdateTicket(ctx, ticketID, edit)
}

// ReassignTicket sets or clears the ticket's assignee. A nil
// AssigneeID is sent as an explicit null, which unassigns.
func (client *Client) ReassignTicket(ctx context.Context, ticketID int, reassignment schema.Reassignment) (*schema.Ticket, error) {
	return client.UpdateTicket(ctx, ticketID, reassignment)
}

// UpdateStatus moves a ticket to status. A nil ticket with a nil
// error means the server acknowledged the change without a body.
func (client *Client) UpdateStatus(ctx context.Context, ticketID int, status schema.Status) (*schema.Ticket, error) {
	var ticket schema.Ticket
	path := ticketPath(ticketID) + "update_status/"
	if err := client.post(ctx, path, schema.StatusChange{Status: status}, &ticket); err != nil {
		return nil, err
	}
	return acknowledged(&ticket), nil
}

// acknowledged returns nil for a ticket decoded from an empty body.
func acknowledged(ticket *schema.Ticket) *schema.Ticket {
	if ticket.ID == 0 {
		return nil
	}
	return ticket
}

func ticketPath(ticketID int) string {
	return fmt.Sprintf("/tickets/%d/", ticketID)
}
