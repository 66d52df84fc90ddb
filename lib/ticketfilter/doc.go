// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticketfilter narrows and counts ticket lists on the client.
//
// A [Spec] combines a free-text search with exact-match constraints on
// status, priority, project, and assignment scope. [Apply] evaluates a
// Spec against a fetched slice without mutating it and reports both
// the visible count and the unfiltered total, so a list view can show
// "Showing N of M tickets". [Aggregate] produces the per-status counts
// shown on project and dashboard headers; [Resolve] prefers the
// server's counts when the project stats endpoint returned them and
// falls back to local aggregation otherwise.
//
// Everything here is pure: the same inputs always produce the same
// outputs, and functions may be called concurrently on shared slices.
package ticketfilter
