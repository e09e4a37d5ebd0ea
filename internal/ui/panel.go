package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	panelMinWidth  = 40
	panelFraction  = 0.55
	wheelStep      = 3
	bottomBarRows  = 2
	panelFrameRows = 2
)

var (
	panelBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	panelScrollStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// hasSidePreview reports whether the preview is drawn as a panel to the right
// of the listing. Only directories holding files get one.
func (m *Model) hasSidePreview() bool {
	current := m.currentLevel()
	return current != nil && current.HasFiles() && m.previewPanelWidth() > 0
}

// previewPanelWidth is 0 when the terminal is too narrow to split.
func (m *Model) previewPanelWidth() int {
	w := int(float64(m.width) * panelFraction)
	if w < panelMinWidth {
		return 0
	}
	return w
}

func (m *Model) listColumnWidth() int {
	return m.width - m.previewPanelWidth()
}

// panelHeight is the number of rows shared by the listing column and the
// preview panel.
func (m *Model) panelHeight() int {
	return max(m.height-bottomBarRows, 1)
}

// previewRows is how many file lines fit inside the panel for preview.
func previewRows(preview *previewData, panelHeight int) int {
	rows := panelHeight - panelFrameRows
	if preview != nil && preview.meta != "" {
		rows--
	}
	return max(rows, 1)
}

// scrollPreview moves the visible window by delta lines, clamped to content.
func scrollPreview(preview *previewData, delta, rows int) {
	limit := max(len(preview.lines)-rows, 0)
	preview.scrollOffset = min(max(preview.scrollOffset+delta, 0), limit)
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || !m.hasSidePreview() {
		return nil
	}
	preview := m.activePreview()
	if preview == nil || preview.loading {
		return nil
	}
	rows := previewRows(preview, m.panelHeight())
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		scrollPreview(preview, -wheelStep, rows)
	case tea.MouseButtonWheelDown:
		scrollPreview(preview, wheelStep, rows)
	}
	return nil
}

// panelContent decides the title, body and body style of the preview panel.
func panelContent(preview *previewData, rows int) (title, scroll string, body []string, style *lipgloss.Style) {
	switch {
	case preview == nil:
		return "Preview", "", []string{"Select a file to preview it."}, styles.PreviewMeta
	case preview.err != "":
		return "Preview: " + preview.label, "", []string{preview.err}, styles.PreviewError
	case preview.loading:
		return "Preview: " + preview.label, "", []string{"Loading…"}, styles.PreviewBody
	}
	scrollPreview(preview, 0, rows)
	end := min(preview.scrollOffset+rows, len(preview.lines))
	if len(preview.lines) > rows {
		scroll = fmt.Sprintf(" %d/%d ", end, len(preview.lines))
	}
	return "Preview: " + preview.label, scroll, preview.lines[preview.scrollOffset:end], styles.PreviewBody
}

// renderPreviewPanel draws the bordered preview box, exactly width columns
// by height rows.
func (m *Model) renderPreviewPanel(preview *previewData, width, height int) string {
	inner := max(width-2, 1)
	showMeta := preview != nil && preview.meta != "" && preview.err == "" && !preview.loading
	rows := max(height-panelFrameRows, 1)
	if showMeta {
		rows = previewRows(preview, height)
	}
	title, scroll, body, bodyStyle := panelContent(preview, rows)

	out := make([]string, 0, height)
	out = append(out, panelTopBorder(" "+title+" ", scroll, width))
	if showMeta {
		out = append(out, panelRow(preview.meta, inner, styles.PreviewMeta))
	}
	for i := 0; i < rows; i++ {
		line := ""
		if i < len(body) {
			line = body[i]
		}
		out = append(out, panelRow(line, inner, bodyStyle))
	}
	out = append(out, panelBorderStyle.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return strings.Join(out, "\n")
}

// panelTopBorder embeds the title and, room permitting, the scroll position
// in the top edge of the box.
func panelTopBorder(title, scroll string, width int) string {
	room := width - 4
	if lipgloss.Width(title)+lipgloss.Width(scroll) > room {
		scroll = ""
	}
	if lipgloss.Width(title) > room {
		title = truncate.StringWithTail(title, uint(max(room, 1)), "…")
	}
	fill := max(room-lipgloss.Width(title)-lipgloss.Width(scroll), 0)
	return panelBorderStyle.Render("╭─") +
		styles.PreviewTitle.Render(title) +
		panelBorderStyle.Render(strings.Repeat("─", fill)) +
		panelScrollStyle.Render(scroll) +
		panelBorderStyle.Render("─╮")
}

func panelRow(text string, width int, style *lipgloss.Style) string {
	text = fitWidth(text, width)
	if style != nil {
		text = style.Render(text)
	}
	edge := panelBorderStyle.Render("│")
	return edge + text + edge
}

// fitWidth truncates or pads text to exactly width visible columns.
func fitWidth(text string, width int) string {
	w := lipgloss.Width(text)
	if w > width {
		text = truncate.StringWithTail(text, uint(width), "…")
		w = lipgloss.Width(text)
	}
	if w < width {
		text += strings.Repeat(" ", width-w)
	}
	return text
}
