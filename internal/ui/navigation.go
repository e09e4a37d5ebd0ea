package ui

import (
	"github.com/atomicstack/nmpick/internal/logging/events"
	"github.com/atomicstack/nmpick/internal/nodemodules"
	tea "github.com/charmbracelet/bubbletea"
)

// handleEscapeKey moves to the parent directory, or cancels at the root.
func (m *Model) handleEscapeKey() tea.Cmd {
	if m.loading {
		return nil
	}
	current := m.currentLevel()
	if current == nil || m.state.AtRoot() {
		return m.cancel()
	}
	m.rememberCursor()
	parent := nodemodules.ParentItem(m.state.Current)
	events.Nav.Back(m.state.Current, parent.Path)
	return m.beginTransition(parent)
}

func (m *Model) handleEnterKey() tea.Cmd {
	if m.loading {
		return nil
	}
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	item, ok := current.Selected()
	if !ok {
		return nil
	}
	events.Nav.Enter(current.ID, item.Path, item.DisplayName, current.Filter)
	if !item.Navigable() {
		next, err := m.nav.Transition(m.ctx, m.state, &item)
		if err != nil {
			m.errMsg = err.Error()
			return nil
		}
		m.state = next
		return tea.Quit
	}
	if !item.Parent {
		m.cursors[current.ID] = item.Path
	}
	return m.beginTransition(item)
}

func (m *Model) beginTransition(item nodemodules.Item) tea.Cmd {
	m.loading = true
	m.pendingPath = item.Path
	m.pendingLabel = item.DisplayName
	m.errMsg = ""
	m.forceClearInfo()
	return m.transitionCmd(m.state, item)
}

func (m *Model) cancel() tea.Cmd {
	if next, err := m.nav.Transition(m.ctx, m.state, nil); err == nil {
		m.state = next
	}
	events.Nav.Cancel(m.state.Current)
	return tea.Quit
}

// moveCursorWith applies a level cursor helper and traces the move.
func (m *Model) moveCursorWith(move func(*level) bool) {
	current := m.currentLevel()
	if current == nil {
		return
	}
	if move(current) {
		events.Nav.Cursor(current.ID, current.Cursor)
	}
	m.syncViewport(current)
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if handled, cmd := m.handleTextInput(keyMsg); handled {
		return cmd
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return m.cancel()
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "up", "ctrl+p":
		m.moveCursorWith((*level).MoveCursorUp)
	case "down", "ctrl+n":
		m.moveCursorWith((*level).MoveCursorDown)
	case "pgup":
		m.moveCursorWith(func(l *level) bool { return l.MoveCursorPageUp(m.maxVisibleItems()) })
	case "pgdown":
		m.moveCursorWith(func(l *level) bool { return l.MoveCursorPageDown(m.maxVisibleItems()) })
	case "home":
		m.moveCursorWith((*level).MoveCursorHome)
	case "end":
		m.moveCursorWith((*level).MoveCursorEnd)
	default:
		return nil
	}
	return m.ensurePreviewForCurrentLevel()
}

func (m *Model) handleLevelLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(levelLoadedMsg)
	if !ok {
		return nil
	}
	if !m.loading || update.path != m.pendingPath {
		return nil
	}
	m.loading = false
	m.pendingPath = ""
	m.pendingLabel = ""
	if update.err != nil {
		// The navigator hands back the unchanged state; keep the current listing.
		m.errMsg = update.err.Error()
		events.Nav.Error(update.path, update.err)
		return nil
	}
	m.errMsg = ""
	// The new level starts unfiltered; a failed read keeps the old filter.
	hadFilter := m.current != nil && m.current.Filter != ""
	m.applyState(update.state, update.from)
	if hadFilter {
		m.filterCursorDirty = true
	}
	events.Nav.Loaded(update.state.Current, len(update.state.Items))
	if len(update.state.Items) == 0 {
		m.setInfo("No entries found.")
	} else {
		m.clearInfo()
	}
	return m.ensurePreviewForCurrentLevel()
}
