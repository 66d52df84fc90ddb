// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package board loads and derives the data behind list and dashboard
// screens.
//
// A [Loader] issues the independent fetches for a screen in parallel,
// waits for all of them, and only then runs the derivations that
// depend on more than one result (filtering, aggregation, project name
// lookup). A failed fetch fails the whole load; no partial snapshot is
// ever produced.
//
// A [View] owns the snapshot for one open screen. Refreshes run in the
// background bound to the view's lifetime. Closing the view cancels
// any refresh in flight, and a result that arrives after Close is
// dropped without touching state or reporting an error. Views share
// nothing: two views of the same tickets each fetch their own copy,
// and whichever commits last is what that view shows.
package board
