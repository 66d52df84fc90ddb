// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package termui renders tracker data for a terminal: status and
// priority badges, fixed-width tables, activity feed rows, ticket
// detail blocks, and markdown descriptions.
//
// All rendering goes through a [Styler], which owns a lipgloss
// renderer with an explicit color profile. ColorNever produces plain
// text with no escape sequences, which is what tests and pipes see.
// Widths are measured with ansi.StringWidth so styled cells pad and
// truncate by visible columns, not bytes.
//
// Functions here are pure: they take values and return strings. The
// command layer decides where the output goes.
package termui
