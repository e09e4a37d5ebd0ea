package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestHandleEscapeKeyFromRootQuits(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	cmd := m.handleEscapeKey()
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestHandleEnterKeyIgnoredWhileLoading(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.loading = true
	if cmd := m.handleEnterKey(); cmd != nil {
		t.Fatalf("expected no command while a level is loading")
	}
}

func TestCursorWrapsAround(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	h := NewHarness(m)
	current := h.Model().currentLevel()
	h.Key(tea.KeyUp)
	if current.Cursor != len(current.Items)-1 {
		t.Fatalf("expected wrap to last item, got %d", current.Cursor)
	}
	h.Key(tea.KeyDown)
	if current.Cursor != 0 {
		t.Fatalf("expected wrap to first item, got %d", current.Cursor)
	}
}

func TestEndAndHomeKeys(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	h := NewHarness(m)
	h.Key(tea.KeyEnd)
	if got := h.Model().currentLevel().Cursor; got != 1 {
		t.Fatalf("expected end to move to last item, got %d", got)
	}
	h.Key(tea.KeyHome)
	if got := h.Model().currentLevel().Cursor; got != 0 {
		t.Fatalf("expected home to move to first item, got %d", got)
	}
}
