// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package workflow governs ticket status transitions and the other
// in-place ticket mutations (reassignment, field edits).
//
// The workflow has four states: open (initial), in_progress,
// in_review and done. Every state is reachable from every other state;
// [ValidateTransition] is the one place that would tighten this (for
// example, forbidding done to open) and today rejects only targets
// outside the workflow.
//
// [Machine] applies a mutation in a fixed order: authorization, local
// validation, no-op detection, then the backend call. A ticket value
// is never changed before the backend acknowledges the change. On any
// failure the caller gets back the ticket it passed in, unchanged,
// together with the error, so there is nothing to roll back. The
// status_changed activity the backend records is not produced here; it
// appears in the activity feed on the next fetch.
package workflow
