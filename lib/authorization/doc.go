// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package authorization decides which roles may perform which
// actions. It is the single source of truth for every permission check
// in the client: views ask it which controls to expose, and the
// workflow, assistant and CLI layers ask it again before issuing a
// request, so a control that was wrongly exposed still cannot reach the
// backend.
//
// # Matrix
//
// The decision is a pure function of (role, action):
//
//	action                   admin  project_manager  developer
//	create_project           yes    yes              no
//	manage_project_members   yes    yes              no
//	create_ticket            yes    yes              no
//	edit_ticket              yes    yes              no
//	change_ticket_status     yes    no               yes
//	reassign_ticket          yes    yes              no
//	use_ai_features          yes    yes              no
//
// Unknown roles and unknown actions are denied.
//
// # Sessions
//
// The current user is never read from ambient state. Callers build a
// [Session] from the authenticated user and pass it explicitly, which
// keeps every check deterministic under test. [Session.Require]
// converts a denial into an [*AuthorizationError].
//
// The backend enforces the same rules independently; this package
// mirrors them for the client.
package authorization
