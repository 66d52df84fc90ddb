// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package termui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const columnSeparator = "  "

// Column describes one table column.
type Column struct {
	Title string

	// Flex marks the column that shrinks when the table is wider than
	// the requested width. At most one column should be flexible; the
	// first one wins.
	Flex bool

	// MinWidth is the narrowest a flexible column shrinks to.
	MinWidth int
}

// Table accumulates rows and renders them as aligned columns. Cells
// may contain ANSI styling.
type Table struct {
	Columns []Column
	rows    [][]string
}

// NewTable returns an empty table with the given columns.
func NewTable(columns ...Column) *Table {
	return &Table{Columns: columns}
}

// AddRow appends a row. Missing cells render empty; extra cells are
// ignored.
func (table *Table) AddRow(cells ...string) {
	table.rows = append(table.rows, cells)
}

// Len returns the number of rows.
func (table *Table) Len() int {
	return len(table.rows)
}

// Render lays the table out within width columns. Zero width means
// unbounded.
func (table *Table) Render(styler *Styler, width int) string {
	columnCount := len(table.Columns)
	if columnCount == 0 {
		return ""
	}

	widths := table.columnWidths(width)

	var builder strings.Builder
	headers := make([]string, columnCount)
	for index, column := range table.Columns {
		headers[index] = styler.Header(column.Title)
	}
	builder.WriteString(formatRow(headers, widths))
	builder.WriteString("\n")

	rules := make([]string, columnCount)
	for index, columnWidth := range widths {
		rules[index] = strings.Repeat("─", columnWidth)
	}
	builder.WriteString(styler.NewStyle().Foreground(styler.theme.BorderColor).
		Render(strings.Join(rules, columnSeparator)))
	builder.WriteString("\n")

	for _, row := range table.rows {
		builder.WriteString(formatRow(row, widths))
		builder.WriteString("\n")
	}
	return strings.TrimRight(builder.String(), "\n")
}

// columnWidths computes each column's width from its widest cell,
// then shrinks the flexible column to fit maxWidth.
func (table *Table) columnWidths(maxWidth int) []int {
	widths := make([]int, len(table.Columns))
	for index, column := range table.Columns {
		widths[index] = ansi.StringWidth(column.Title)
	}
	for _, row := range table.rows {
		for index := 0; index < len(widths) && index < len(row); index++ {
			if cellWidth := ansi.StringWidth(row[index]); cellWidth > widths[index] {
				widths[index] = cellWidth
			}
		}
	}
	if maxWidth <= 0 {
		return widths
	}

	total := len(columnSeparator) * (len(widths) - 1)
	for _, columnWidth := range widths {
		total += columnWidth
	}
	if total <= maxWidth {
		return widths
	}

	for index, column := range table.Columns {
		if !column.Flex {
			continue
		}
		shrunk := widths[index] - (total - maxWidth)
		minimum := column.MinWidth
		if minimum < 1 {
			minimum = 1
		}
		if shrunk < minimum {
			shrunk = minimum
		}
		widths[index] = shrunk
		break
	}
	return widths
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for index, columnWidth := range widths {
		var cell string
		if index < len(cells) {
			cell = cells[index]
		}
		parts[index] = fitCell(cell, columnWidth)
	}
	return strings.TrimRight(strings.Join(parts, columnSeparator), " ")
}

// fitCell truncates or pads cell to exactly width visible columns.
func fitCell(cell string, width int) string {
	visible := ansi.StringWidth(cell)
	if visible > width {
		cell = ansi.Truncate(cell, width, "…")
		visible = ansi.StringWidth(cell)
	}
	if visible < width {
		cell += strings.Repeat(" ", width-visible)
	}
	return cell
}

// Truncate shortens text to width visible columns, marking the cut
// with an ellipsis. Width zero or less returns text unchanged.
func Truncate(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Truncate(text, width, "…")
}
