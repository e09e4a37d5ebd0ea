package ui

import (
	"github.com/atomicstack/nmpick/internal/logging"
	"github.com/atomicstack/nmpick/internal/navigator"
	"github.com/atomicstack/nmpick/internal/nodemodules"
	tea "github.com/charmbracelet/bubbletea"
)

// levelLoadedMsg carries the outcome of an asynchronous directory transition.
type levelLoadedMsg struct {
	path  string
	from  string
	state navigator.State
	err   error
}

func (m *Model) transitionCmd(s navigator.State, item nodemodules.Item) tea.Cmd {
	ctx := m.ctx
	nav := m.nav
	return func() tea.Msg {
		next, err := nav.Transition(ctx, s, &item)
		if err != nil {
			logging.Error(err)
		}
		return levelLoadedMsg{path: item.Path, from: s.Current, state: next, err: err}
	}
}
