package cli

import (
	"strings"
	"testing"
)

func TestNewTable(t *testing.T) {
	table := NewTable([]string{"Result", "Files"})

	if table == nil {
		t.Fatal("NewTable returned nil")
	}
	if len(table.headers) != 2 {
		t.Errorf("Expected 2 headers, got %d", len(table.headers))
	}
	if table.padding != 2 {
		t.Errorf("Expected padding of 2, got %d", table.padding)
	}
}

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"Result", "Files"})

	table.AddRow([]string{"success", "3"})
	table.AddRow([]string{"failed"})
	table.AddRow([]string{"total", "5", "extra"})

	if len(table.rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(table.rows))
	}
	for i, row := range table.rows {
		if len(row) != 2 {
			t.Errorf("row %d has %d columns, want 2", i, len(row))
		}
	}
	if table.rows[1][1] != "" {
		t.Errorf("Expected empty string for padded column, got %q", table.rows[1][1])
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"Result", "Files"})
	table.SetAlignRight(1)
	table.AddRow([]string{"total", "120"})
	table.AddRow([]string{"entry not found", "7"})

	want := strings.Join([]string{
		"Result           Files",
		"---------------  -----",
		"total              120",
		"entry not found      7",
	}, "\n") + "\n"

	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() of headerless table = %q, want empty", got)
	}

	got := NewTable([]string{"A", "B"}).Render()
	if got != "A  B\n-  -\n" {
		t.Errorf("Render() = %q", got)
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		s     string
		width int
		left  string
		right string
	}{
		{s: "ab", width: 4, left: "  ab", right: "ab  "},
		{s: "abcd", width: 2, left: "abcd", right: "abcd"},
		{s: "", width: 1, left: " ", right: " "},
	}

	for _, tt := range tests {
		if got := padLeft(tt.s, tt.width); got != tt.left {
			t.Errorf("padLeft(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.left)
		}
		if got := padRight(tt.s, tt.width); got != tt.right {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.right)
		}
	}
}
