// Package table lays out rows of text as aligned columns.
package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const columnGap = "  "

// Format returns the rows padded according to the widest entry in each
// column. Widths are measured visually, so styled cells line up too. Trailing
// padding of the last column is dropped.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if w := lipgloss.Width(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString(columnGap)
			}
			pad := widths[c] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			if alignment(alignments, c) == AlignRight {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		out[i] = strings.TrimRight(b.String(), " ")
	}
	return out
}

func alignment(alignments []Alignment, col int) Alignment {
	if col < len(alignments) {
		return alignments[col]
	}
	return AlignLeft
}
