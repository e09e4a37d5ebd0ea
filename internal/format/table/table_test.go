package table

import "testing"

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"1)", "▸", "react", "directory"},
		{"10)", "·", "index.js", "file"},
	}
	got := Format(rows, []Alignment{AlignRight, AlignLeft, AlignLeft})
	want := []string{
		" 1)  ▸  react     directory",
		"10)  ·  index.js  file",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFormatHandlesRaggedRows(t *testing.T) {
	got := Format([][]string{{"a", "bb"}, {"ccc"}}, nil)
	if got[0] != "a    bb" || got[1] != "ccc" {
		t.Fatalf("unexpected rows %q", got)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil for no rows, got %q", got)
	}
}
