// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the SwiftTicket domain model: users and their
// profiles, projects with a creator and member set, tickets moving
// through the status workflow, and the read-only activity records the
// backend produces for every state-changing event.
//
// Every type carries the JSON field names of the tracker REST API so
// values decode directly from responses and encode directly into
// request bodies.
//
// # Closed enumerations
//
// Role, TicketType, Priority, Status, Component and ActionType are
// string types with a fixed set of constants. Each has an IsKnown
// method. Decoding never rejects an unrecognized value: the raw string
// is kept so that aggregation can count, and rendering can fall back
// on, values a newer backend introduces (the backend already reports
// "needs_review" where the client workflow says "in_review").
// Validation of client-authored values (drafts, edits, status
// targets) does reject unknown values.
//
// # Write payloads
//
// TicketDraft, TicketEdit, Reassignment, ProjectDraft, Registration,
// ProfileUpdate and InfoUpdate are the request bodies the client
// sends. Their Validate methods run before any network call and return
// *ValidationError. TicketDraft omits the assigned_to_id key entirely
// when no assignee is chosen, while Reassignment always sends the key,
// using JSON null to unassign.
package schema
