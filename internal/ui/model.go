package ui

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/atomicstack/nmpick/internal/navigator"
	"github.com/atomicstack/nmpick/internal/nodemodules"
	"github.com/atomicstack/nmpick/internal/theme"
	uistate "github.com/atomicstack/nmpick/internal/ui/state"
	"github.com/atomicstack/nmpick/internal/workspace"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
)

type level = uistate.Level

const headerSeparator = "→"

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

func newLevel(id, title string, items []nodemodules.Item) *level {
	return uistate.NewLevel(id, title, items)
}

// Options carries the presentation settings for a Model.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Workspace  workspace.Context
	FS         afero.Fs
	Context    context.Context
}

// Model implements the Bubble Tea model for browsing a dependency folder.
type Model struct {
	ctx       context.Context
	nav       *navigator.Navigator
	state     navigator.State
	current   *level
	cursors   map[string]string
	workspace workspace.Context
	fs        afero.Fs

	loading      bool
	pendingPath  string
	pendingLabel string
	errMsg       string
	notice       notice
	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool
	showFooter   bool

	preview    map[string]*previewData
	previewSeq int

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel wraps an already started navigator state.
func NewModel(nav *navigator.Navigator, initial navigator.State, opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	m := &Model{
		ctx:        ctx,
		nav:        nav,
		cursors:    map[string]string{},
		workspace:  opts.Workspace,
		fs:         fsys,
		showFooter: opts.ShowFooter,
		preview:    map[string]*previewData{},
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.applyState(initial, "")
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.ensurePreviewForCurrentLevel(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// Result returns the chosen file. ok is false when the session was cancelled
// or is still running.
func (m *Model) Result() (string, bool) {
	if m.state.Phase != navigator.PhaseSelectedFile {
		return "", false
	}
	return m.state.Selected, true
}

// State exposes the navigator snapshot currently on screen.
func (m *Model) State() navigator.State {
	return m.state
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(levelLoadedMsg{}):    m.handleLevelLoadedMsg,
		reflect.TypeOf(previewLoadedMsg{}):  m.handlePreviewLoadedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// applyState replaces the on-screen level with s. from is the directory the
// user came from, used to land the cursor on it when moving up.
func (m *Model) applyState(s navigator.State, from string) {
	m.state = s
	lvl := newLevel(s.Current, m.levelTitle(s.Current), m.nav.Choices(s))
	idx := -1
	if remembered, ok := m.cursors[s.Current]; ok {
		idx = lvl.IndexOf(remembered)
	}
	if idx < 0 && from != "" {
		idx = lvl.IndexOf(from)
	}
	if idx < 0 && !s.AtRoot() && len(lvl.Items) > 1 {
		idx = 1
	}
	if idx >= 0 {
		lvl.Cursor = idx
	}
	m.current = lvl
	m.syncViewport(lvl)
}

func (m *Model) levelTitle(dir string) string {
	return filepath.Base(dir)
}

func (m *Model) currentLevel() *level {
	return m.current
}

func (m *Model) rememberCursor() {
	current := m.currentLevel()
	if current == nil {
		return
	}
	if item, ok := current.Selected(); ok && !item.Parent {
		m.cursors[current.ID] = item.Path
	}
}

func (m *Model) displayPath(path string) string {
	rel := m.workspace.Rel(path)
	if rel == "" {
		return path
	}
	return strings.TrimPrefix(rel, "./")
}
