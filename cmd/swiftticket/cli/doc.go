// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework behind the swiftticket
// binary: a tree of [Command] values with help output, typo
// suggestions, struct-tag flag binding ([FlagsFromParams]), categorized
// errors ([ToolError]) that map onto process exit codes, JSON output
// support, and the saved login session.
package cli
