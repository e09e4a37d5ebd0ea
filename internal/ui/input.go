package ui

import (
	"unicode"

	"github.com/atomicstack/nmpick/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const filterPlaceholder = "(type to filter)"

// caretMove is a filter cursor motion bound to a key.
type caretMove struct {
	move  func(*level) bool
	trace func(levelID string, pos int)
}

var caretMoves = map[string]caretMove{
	"ctrl+a": {(*level).MoveFilterCursorStart, events.Filter.Cursor},
	"ctrl+e": {(*level).MoveFilterCursorEnd, events.Filter.Cursor},
	"alt+b":  {(*level).MoveFilterCursorWordBackward, events.Filter.CursorWord},
	"alt+f":  {(*level).MoveFilterCursorWordForward, events.Filter.CursorWord},
	"left":   {(*level).MoveFilterCursorRuneBackward, events.Filter.Cursor},
	"right":  {(*level).MoveFilterCursorRuneForward, events.Filter.Cursor},
}

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(l *level, before int) {
	if l == nil {
		return
	}
	if before != l.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

// handleTextInput edits the filter of the current level. It reports whether
// the key was consumed.
func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	if m.loading {
		return false, nil
	}
	current := m.currentLevel()
	if current == nil {
		return false, nil
	}
	key := msg.String()
	if motion, ok := caretMoves[key]; ok {
		before := current.FilterCursorPos()
		if !motion.move(current) {
			return false, nil
		}
		m.noteFilterCursorChange(current, before)
		motion.trace(current.ID, current.FilterCursor)
		return true, nil
	}
	switch key {
	case "ctrl+u":
		if current.Filter == "" {
			return false, nil
		}
		before := current.FilterCursorPos()
		current.SetFilter("", 0)
		m.noteFilterCursorChange(current, before)
		events.Filter.Cleared(current.ID)
		return true, m.afterFilterEdit(current)
	case "ctrl+w":
		before := current.FilterCursorPos()
		if !current.DeleteFilterWordBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(current, before)
		events.Filter.WordBackspace(current.ID, current.Filter)
		return true, m.afterFilterEdit(current)
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		before := current.FilterCursorPos()
		if !current.DeleteFilterRuneBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(current, before)
		events.Filter.Backspace(current.ID, current.Filter)
		return true, m.afterFilterEdit(current)
	case tea.KeySpace:
		return m.appendToFilter(current, " ")
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		return m.appendToFilter(current, string(msg.Runes))
	}
	return false, nil
}

func (m *Model) appendToFilter(current *level, text string) (bool, tea.Cmd) {
	before := current.FilterCursorPos()
	if !current.InsertFilterText(text) {
		return false, nil
	}
	m.noteFilterCursorChange(current, before)
	events.Filter.Append(current.ID, current.Filter)
	return true, m.afterFilterEdit(current)
}

func (m *Model) afterFilterEdit(current *level) tea.Cmd {
	m.forceClearInfo()
	m.errMsg = ""
	m.syncViewport(current)
	return m.ensurePreviewForLevel(current)
}

// filterPrompt renders "» " followed by the query with the caret drawn over
// the rune at the caret position. An empty query shows a placeholder.
func (m *Model) filterPrompt() string {
	current := m.currentLevel()
	if current == nil {
		return ">"
	}
	prompt := renderWith(styles.FilterPrompt, "» ")
	if styles.Cursor != nil {
		m.filterCursor.Style = *styles.Cursor
	}
	textStyle := styles.Filter
	text, pos := []rune(current.Filter), current.FilterCursorPos()
	if len(text) == 0 {
		textStyle = styles.FilterPlaceholder
		text, pos = []rune(filterPlaceholder), 0
	}
	m.filterCursor.TextStyle = lipgloss.Style{}
	if textStyle != nil {
		m.filterCursor.TextStyle = *textStyle
	}
	caret := " "
	rest := ""
	if pos < len(text) {
		caret = string(text[pos])
		rest = string(text[pos+1:])
	}
	return prompt + renderWith(textStyle, string(text[:pos])) + m.renderFilterCursor(caret) + renderWith(textStyle, rest)
}

// renderFilterCursor draws char as the caret. A blinked-off caret shows the
// plain character.
func (m *Model) renderFilterCursor(char string) string {
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Inline(true)
	switch {
	case m.filterCursor.Blink:
		return base.Render(char)
	case styles.Cursor != nil:
		return base.Inherit(styles.Cursor.Inline(true)).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
