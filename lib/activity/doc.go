// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package activity turns the server's audit records into render-ready
// feed rows.
//
// The server returns activities newest first. The projector never
// reorders them; it bounds the list, attaches a glyph and a relative
// timestamp to each entry, and resolves where selecting an entry
// should navigate. Activities carry weak references to their ticket
// and project (an identifier plus a cached title), so a feed stays
// readable after the referenced entity has been renamed or deleted.
package activity
