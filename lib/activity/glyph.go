// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package activity

import "github.com/swiftticket/swiftticket/lib/schema"

// Glyph is the visual marker for an action type.
type Glyph struct {
	// Icon names the icon from the web frontend's icon set.
	Icon string

	// Color is a hex RGB string.
	Color string

	// Symbol is a single-cell stand-in for Icon in terminal output.
	Symbol string
}

// FallbackGlyph is used for action types outside the table.
var FallbackGlyph = Glyph{Icon: "Activity", Color: "#999999", Symbol: "•"}

var glyphs = map[schema.ActionType]Glyph{
	schema.ActionTicketCreated:   {Icon: "Plus", Color: "#4caf50", Symbol: "+"},
	schema.ActionTicketUpdated:   {Icon: "Edit", Color: "#2196f3", Symbol: "✎"},
	schema.ActionTicketDeleted:   {Icon: "Trash2", Color: "#f44336", Symbol: "✗"},
	schema.ActionStatusChanged:   {Icon: "GitBranch", Color: "#ff9800", Symbol: "→"},
	schema.ActionPriorityChanged: {Icon: "AlertCircle", Color: "#9c27b0", Symbol: "!"},
	schema.ActionAssigned:        {Icon: "UserPlus", Color: "#00bcd4", Symbol: "@"},
	schema.ActionUnassigned:      {Icon: "UserMinus", Color: "#607d8b", Symbol: "ø"},
	schema.ActionCommentAdded:    {Icon: "MessageSquare", Color: "#3f51b5", Symbol: "“"},
	schema.ActionProjectCreated:  {Icon: "Plus", Color: "#4caf50", Symbol: "+"},
	schema.ActionMemberAdded:     {Icon: "UserPlus", Color: "#00bcd4", Symbol: "@"},
	schema.ActionMemberRemoved:   {Icon: "UserMinus", Color: "#607d8b", Symbol: "ø"},
}

// GlyphFor returns the glyph for action, or FallbackGlyph when the
// action type is not in the table.
func GlyphFor(action schema.ActionType) Glyph {
	if glyph, ok := glyphs[action]; ok {
		return glyph
	}
	return FallbackGlyph
}
