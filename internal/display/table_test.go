package display

import (
	"strings"
	"testing"
)

func plainTable() *Table {
	t := NewTable([]string{"Date", "Fajr", "Maghrib"})
	t.AddRow([]string{"2024-03-11", "05:15", "18:38"})
	t.AddRow([]string{"2024-03-12", "05:14", "18:38"})
	return t
}

func TestRender_ContainsCells(t *testing.T) {
	SetEnabled(false)
	out := plainTable().Render()

	for _, want := range []string{"Date", "Fajr", "Maghrib", "2024-03-11", "05:15", "18:38"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render missing %q:\n%s", want, out)
		}
	}
}

func TestRender_ColumnAlignment(t *testing.T) {
	SetEnabled(false)
	tbl := NewTable([]string{"A", "B"})
	tbl.AddRow([]string{"short", "x"})
	tbl.AddRow([]string{"much-longer-cell", "y"})

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	// Header, separator, two rows.
	if len(lines) != 4 {
		t.Fatalf("line count = %d, want 4:\n%s", len(lines), tbl.Render())
	}

	// The second column starts at the same offset in both rows.
	xIdx := strings.Index(lines[2], "x")
	yIdx := strings.Index(lines[3], "y")
	if xIdx != yIdx {
		t.Errorf("column misaligned: x at %d, y at %d", xIdx, yIdx)
	}
}

func TestRender_SectionSeparators(t *testing.T) {
	SetEnabled(false)
	tbl := NewTable([]string{"Date"})
	tbl.AddRow([]string{"2024-01-31"})
	tbl.StartSection()
	tbl.AddRow([]string{"2024-02-01"})

	out := tbl.Render()
	// Header separator plus one section separator.
	if got := strings.Count(out, "─"); got == 0 {
		t.Fatal("expected dashed separators")
	}
	sepLines := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "─") {
			sepLines++
		}
	}
	if sepLines != 2 {
		t.Errorf("separator lines = %d, want 2:\n%s", sepLines, out)
	}
}

func TestStartSection_BeforeAnyRows(t *testing.T) {
	SetEnabled(false)
	tbl := NewTable([]string{"Date"})
	tbl.StartSection() // no-op before first row
	tbl.AddRow([]string{"2024-01-01"})

	out := tbl.Render()
	sepLines := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "─") {
			sepLines++
		}
	}
	if sepLines != 1 {
		t.Errorf("leading StartSection should not add a separator, got %d:\n%s", sepLines, out)
	}
}

func TestRender_HighlightRow(t *testing.T) {
	SetEnabled(true)
	t.Cleanup(func() { SetEnabled(false) })

	tbl := plainTable()
	tbl.SetHighlightRow(1)
	out := tbl.Render()

	lines := strings.Split(out, "\n")
	var highlighted string
	for _, line := range lines {
		if strings.Contains(line, "2024-03-12") {
			highlighted = line
		}
	}
	if !strings.Contains(highlighted, "\033[36m") {
		t.Errorf("highlighted row lacks accent code: %q", highlighted)
	}
}

func TestRender_EmptyHeaders(t *testing.T) {
	tbl := NewTable(nil)
	if out := tbl.Render(); out != "" {
		t.Errorf("Render with no headers = %q, want empty", out)
	}
}
