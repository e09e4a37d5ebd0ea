package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atomicstack/nmpick/internal/nodemodules"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	inlinePreviewLines = 12
	footerText         = "↑/↓ move  enter open  esc up  ctrl+u clear  ctrl+c quit"
	rowIndicator       = "▌"
)

// styledLine is one row of output. When highlightFrom > 0 the first
// highlightFrom runes are drawn with prefixStyle and the rest with style.
type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.hasSidePreview() {
		return m.viewSideBySide()
	}
	return m.viewVertical()
}

// viewVertical stacks the listing, an inline preview and the bottom bar.
func (m *Model) viewVertical() string {
	lines := m.listingLines(m.width)
	lines = append(lines, m.inlinePreviewLines()...)
	lines = limitHeight(lines, m.height-bottomBarRows, m.width)
	lines = append(applyWidth(lines, m.width), m.bottomBar()...)
	return renderLines(lines)
}

// viewSideBySide puts the listing and the preview panel next to each other
// above a full-width bottom bar.
func (m *Model) viewSideBySide() string {
	listW := m.listColumnWidth()
	height := m.panelHeight()

	lines := m.listingLines(listW)
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, styledLine{})
	}
	left := strings.Split(renderLines(applyWidth(lines, listW)), "\n")
	for i, row := range left {
		// rendered rows carry escapes, so pad by visible width
		left[i] = fitWidth(row, listW)
	}
	right := m.renderPreviewPanel(m.activePreview(), m.previewPanelWidth(), height)
	top := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(left, "\n"), right)
	return top + "\n" + renderLines(m.bottomBar())
}

// listingLines renders the breadcrumb, the visible window of items and any
// notice or footer, for a column of the given width.
func (m *Model) listingLines(width int) []styledLine {
	lines := make([]styledLine, 0, 16)
	if header := m.header(); header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	if current := m.currentLevel(); current != nil {
		switch {
		case len(current.Items) == 0 && current.Filter != "":
			lines = append(lines, styledLine{text: fmt.Sprintf("No matches for %q", current.Filter), style: styles.Info})
		case len(current.Items) == 0:
			lines = append(lines, styledLine{text: "(empty directory)", style: styles.Info})
		default:
			start, end := m.visibleRange(current)
			for i := start; i < end; i++ {
				lines = append(lines, m.buildItemLine(current.Items[i], i, current, width))
			}
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: footerText, style: styles.Footer})
	}
	return lines
}

// visibleRange returns the window of items that fits on screen.
func (m *Model) visibleRange(current *level) (int, int) {
	m.syncViewport(current)
	total := len(current.Items)
	rows := m.maxVisibleItems()
	if rows <= 0 || total <= rows {
		return 0, total
	}
	start := min(max(current.ViewportOffset, 0), total-rows)
	current.ViewportOffset = start
	return start, start + rows
}

func (m *Model) inlinePreviewLines() []styledLine {
	preview := m.activePreview()
	if !shouldRenderPreview(preview) {
		return nil
	}
	lines := []styledLine{{}, {text: previewTitleText(preview), style: styles.PreviewTitle}}
	if preview.err != "" {
		return append(lines, styledLine{text: preview.err, style: styles.PreviewError})
	}
	for _, line := range previewDisplayLines(preview) {
		lines = append(lines, styledLine{text: line, style: styles.PreviewBody})
	}
	return lines
}

// bottomBar is the status row (error or loading) followed by the filter prompt.
func (m *Model) bottomBar() []styledLine {
	status := styledLine{}
	if m.errMsg != "" {
		status = styledLine{text: "Error: " + m.errMsg, style: styles.Error}
	} else if m.loading {
		status = styledLine{text: fmt.Sprintf("Loading %s…", m.pendingLabel), style: styles.Loading}
	}
	return applyWidth([]styledLine{status, {text: m.filterPrompt()}}, m.width)
}

// buildItemLine renders one listing row. A positive width pads the row so
// the selection background spans the column.
func (m *Model) buildItemLine(item nodemodules.Item, idx int, current *level, width int) styledLine {
	line := styledLine{
		text:          rowIndicator + " " + item.Label(),
		style:         kindStyle(item),
		prefixStyle:   styles.ItemIndicator,
		highlightFrom: 1,
	}
	if idx == current.Cursor {
		line.style = styles.SelectedItem
		line.prefixStyle = styles.SelectedItemIndicator
	}
	if pad := width - lipgloss.Width(line.text); width > 0 && pad > 0 {
		line.text += strings.Repeat(" ", pad)
	}
	return line
}

func kindStyle(item nodemodules.Item) *lipgloss.Style {
	if item.Parent {
		return styles.Parent
	}
	switch item.Kind {
	case nodemodules.KindDirectory:
		return styles.Directory
	case nodemodules.KindSymlink:
		return styles.Symlink
	case nodemodules.KindUnknown:
		return styles.Unknown
	}
	return styles.Item
}

// header renders the breadcrumb from the project directory down to the
// current directory, e.g. "web→node_modules→@babel→core".
func (m *Model) header() string {
	return strings.Join(m.headerSegments(), headerSeparator)
}

func (m *Model) headerSegments() []string {
	if m.state.Root == "" {
		return nil
	}
	project := filepath.Dir(m.state.Root)
	rel, err := filepath.Rel(project, m.state.Current)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return []string{m.displayPath(m.state.Current)}
	}
	first := m.displayPath(project)
	if first == "" || first == "." {
		first = filepath.Base(project)
	}
	segments := []string{first}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}

func shouldRenderPreview(data *previewData) bool {
	return data != nil && (data.loading || data.err != "" || len(data.lines) > 0)
}

func previewTitleText(data *previewData) string {
	label := strings.TrimSpace(data.label)
	if label == "" {
		label = filepath.Base(data.target)
	}
	switch {
	case data.loading && data.err == "":
		return "Preview: " + label + " (loading…)"
	case data.meta != "":
		return "Preview: " + label + " (" + data.meta + ")"
	}
	return "Preview: " + label
}

func previewDisplayLines(data *previewData) []string {
	if len(data.lines) == 0 && data.loading {
		return []string{"Loading preview…"}
	}
	if len(data.lines) > inlinePreviewLines {
		return data.lines[:inlinePreviewLines]
	}
	return data.lines
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport(m.currentLevel())
	return nil
}

// maxVisibleItems is the number of listing rows that fit, or -1 when the
// height is unknown.
func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := bottomBarRows
	if m.header() != "" {
		used++
	}
	if m.currentInfo() != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	if !m.hasSidePreview() {
		used += len(m.inlinePreviewLines())
	}
	return max(m.height-used, 1)
}

// limitHeight keeps at most height rows, turning the last kept row into an
// ellipsis when something was cut.
func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	kept := append([]styledLine(nil), lines[:height-1]...)
	return append(kept, styledLine{text: truncateText("…", width)})
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	out := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		out[i] = line
	}
	return out
}

func renderLines(lines []styledLine) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line.render())
	}
	return b.String()
}

func (l styledLine) render() string {
	runes := []rune(l.text)
	if l.highlightFrom <= 0 || l.highlightFrom >= len(runes) {
		return renderWith(l.style, l.text)
	}
	return renderWith(l.prefixStyle, string(runes[:l.highlightFrom])) +
		renderWith(l.style, string(runes[l.highlightFrom:]))
}

func renderWith(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}

// truncateText shortens text to width visible columns, ending in "…".
func truncateText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	if width == 1 {
		return truncate.String(text, 1)
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
