// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package termui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/swiftticket/swiftticket/lib/schema"
)

// Theme defines the color palette for terminal output. Colors are
// ANSI 256-color codes, except activity glyphs which carry their own
// hex colors.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	LinkForeground   lipgloss.Color
	ErrorForeground  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	StatusOpen       lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusInReview   lipgloss.Color
	StatusDone       lipgloss.Color

	PriorityCritical lipgloss.Color
	PriorityHigh     lipgloss.Color
	PriorityMedium   lipgloss.Color
	PriorityLow      lipgloss.Color

	RoleAdmin          lipgloss.Color
	RoleProjectManager lipgloss.Color
	RoleDeveloper      lipgloss.Color
}

// StatusColor returns the color for a workflow status. Statuses
// outside the workflow use FaintText.
func (theme Theme) StatusColor(status schema.Status) lipgloss.Color {
	switch status {
	case schema.StatusOpen:
		return theme.StatusOpen
	case schema.StatusInProgress:
		return theme.StatusInProgress
	case schema.StatusInReview:
		return theme.StatusInReview
	case schema.StatusDone:
		return theme.StatusDone
	default:
		return theme.FaintText
	}
}

// PriorityColor returns the color for a priority, NormalText for
// unknown values.
func (theme Theme) PriorityColor(priority schema.Priority) lipgloss.Color {
	switch priority {
	case schema.PriorityCritical:
		return theme.PriorityCritical
	case schema.PriorityHigh:
		return theme.PriorityHigh
	case schema.PriorityMedium:
		return theme.PriorityMedium
	case schema.PriorityLow:
		return theme.PriorityLow
	default:
		return theme.NormalText
	}
}

// RoleColor returns the color for a role.
func (theme Theme) RoleColor(role schema.Role) lipgloss.Color {
	switch role {
	case schema.RoleAdmin:
		return theme.RoleAdmin
	case schema.RoleProjectManager:
		return theme.RoleProjectManager
	case schema.RoleDeveloper:
		return theme.RoleDeveloper
	default:
		return theme.NormalText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	LinkForeground:   lipgloss.Color("75"),
	ErrorForeground:  lipgloss.Color("196"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusOpen:       lipgloss.Color("75"),  // blue
	StatusInProgress: lipgloss.Color("220"), // amber
	StatusInReview:   lipgloss.Color("141"), // light purple
	StatusDone:       lipgloss.Color("114"), // green

	PriorityCritical: lipgloss.Color("196"),
	PriorityHigh:     lipgloss.Color("208"),
	PriorityMedium:   lipgloss.Color("75"),
	PriorityLow:      lipgloss.Color("245"),

	RoleAdmin:          lipgloss.Color("168"),
	RoleProjectManager: lipgloss.Color("141"),
	RoleDeveloper:      lipgloss.Color("114"),
}
