package display

import (
	"fmt"
	"strings"
)

// Table renders an aligned text table with optional color support.
// Rows can be grouped into sections (e.g. one section per month in a
// yearly schedule); sections are divided by a dashed separator line.
type Table struct {
	headers []string
	rows    [][]string
	// sectionBefore marks row indexes that start a new section.
	sectionBefore map[int]bool
	// highlightRow is the 0-based row index to highlight (typically "today"). -1 = none.
	highlightRow int
}

// NewTable creates a new table with the given column headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:       headers,
		sectionBefore: make(map[int]bool),
		highlightRow:  -1,
	}
}

// AddRow appends a row of values. The number of values should match the number of headers.
func (t *Table) AddRow(values []string) {
	t.rows = append(t.rows, values)
}

// StartSection marks the next added row as the start of a new section.
// Calling it before any rows exist is a no-op (no leading separator).
func (t *Table) StartSection() {
	if len(t.rows) > 0 {
		t.sectionBefore[len(t.rows)] = true
	}
}

// SetHighlightRow sets which row index (0-based) should be highlighted.
func (t *Table) SetHighlightRow(idx int) {
	t.highlightRow = idx
}

// Render produces the formatted table string with leading indent.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	// Column widths from headers and every cell.
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder

	sb.WriteString("  " + Bold(formatRow(t.headers, widths)) + "\n")
	sb.WriteString(Dim(separatorLine(widths)) + "\n")

	for i, row := range t.rows {
		if t.sectionBefore[i] {
			sb.WriteString(Dim(separatorLine(widths)) + "\n")
		}
		line := formatRow(row, widths)
		if i == t.highlightRow {
			sb.WriteString("  " + Accent(line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}

	return sb.String()
}

// separatorLine builds a dashed line matching the column layout,
// using Unicode box-drawing dashes.
func separatorLine(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w)
	}
	return "  " + strings.Join(parts, "  ")
}

// formatRow formats a row of cells using the given column widths.
func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = fmt.Sprintf("%-*s", w, cell)
	}
	return strings.Join(parts, "  ")
}
