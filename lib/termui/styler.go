// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package termui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/swiftticket/swiftticket/lib/schema"
)

// ColorMode selects when output carries ANSI styling.
type ColorMode string

const (
	// ColorAuto styles output when the writer is a color-capable
	// terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways forces 256-color output.
	ColorAlways ColorMode = "always"
	// ColorNever produces plain text.
	ColorNever ColorMode = "never"
)

// Styler renders styled fragments with a fixed color profile.
type Styler struct {
	theme    Theme
	renderer *lipgloss.Renderer
	colored  bool
}

// NewStyler returns a Styler for output written to writer. Unknown
// modes behave like ColorAuto.
func NewStyler(writer io.Writer, mode ColorMode, theme Theme) *Styler {
	var renderer *lipgloss.Renderer
	switch mode {
	case ColorAlways:
		renderer = lipgloss.NewRenderer(writer, termenv.WithProfile(termenv.ANSI256))
		renderer.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		renderer = lipgloss.NewRenderer(writer, termenv.WithProfile(termenv.Ascii))
		renderer.SetColorProfile(termenv.Ascii)
	default:
		renderer = lipgloss.NewRenderer(writer)
	}
	return &Styler{
		theme:    theme,
		renderer: renderer,
		colored:  renderer.ColorProfile() != termenv.Ascii,
	}
}

// Plain returns a Styler that never emits escape sequences.
func Plain() *Styler {
	return NewStyler(io.Discard, ColorNever, DefaultTheme)
}

// Theme returns the styler's palette.
func (styler *Styler) Theme() Theme {
	return styler.theme
}

// Colored reports whether output carries ANSI styling.
func (styler *Styler) Colored() bool {
	return styler.colored
}

// NewStyle returns a lipgloss style bound to the styler's profile.
func (styler *Styler) NewStyle() lipgloss.Style {
	return styler.renderer.NewStyle()
}

// Faint renders secondary text.
func (styler *Styler) Faint(text string) string {
	return styler.NewStyle().Foreground(styler.theme.FaintText).Render(text)
}

// Bold renders emphasized text.
func (styler *Styler) Bold(text string) string {
	return styler.NewStyle().Foreground(styler.theme.NormalText).Bold(true).Render(text)
}

// Header renders a section or column heading.
func (styler *Styler) Header(text string) string {
	return styler.NewStyle().Foreground(styler.theme.HeaderForeground).Bold(true).Render(text)
}

// Error renders an error line.
func (styler *Styler) Error(text string) string {
	return styler.NewStyle().Foreground(styler.theme.ErrorForeground).Render(text)
}

// Status renders a status label in its color. Statuses outside the
// workflow render their raw value.
func (styler *Styler) Status(status schema.Status) string {
	return styler.NewStyle().Foreground(styler.theme.StatusColor(status)).Render(status.Label())
}

// Priority renders a priority in its color.
func (styler *Styler) Priority(priority schema.Priority) string {
	style := styler.NewStyle().Foreground(styler.theme.PriorityColor(priority))
	if priority == schema.PriorityCritical {
		style = style.Bold(true)
	}
	return style.Render(string(priority))
}

// Role renders a role label in its color.
func (styler *Styler) Role(role schema.Role) string {
	return styler.NewStyle().Foreground(styler.theme.RoleColor(role)).Render(role.Label())
}

// Hex renders text in an arbitrary hex color, as carried by activity
// glyphs.
func (styler *Styler) Hex(text, color string) string {
	return styler.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}
