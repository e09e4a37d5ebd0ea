// Package navigator implements the drill-down state machine used to walk a
// dependency tree until a file is chosen.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/atomicstack/nmpick/internal/nodemodules"
)

// Phase is the state of a browse session.
type Phase int

const (
	// PhaseListing means items are on screen and a choice is awaited.
	PhaseListing Phase = iota
	// PhaseSelectedFile is terminal: State.Selected holds the chosen file.
	PhaseSelectedFile
	// PhaseCancelled is terminal: the prompt was dismissed.
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseListing:
		return "listing"
	case PhaseSelectedFile:
		return "selected-file"
	case PhaseCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ErrTerminal is returned when a transition is attempted after the session
// has finished.
var ErrTerminal = errors.New("navigation already finished")

// State is an immutable snapshot of a browse session.
type State struct {
	Root     string
	Current  string
	Items    []nodemodules.Item
	Phase    Phase
	Selected string
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s.Phase != PhaseListing
}

// AtRoot reports whether the current directory is the top-level dependency
// folder.
func (s State) AtRoot() bool {
	return filepath.Clean(s.Current) == filepath.Clean(s.Root)
}

// Lister is the subset of nodemodules.Builder the navigator depends on.
type Lister interface {
	Build(ctx context.Context, dir string) ([]nodemodules.Item, error)
	List(dir string) ([]nodemodules.Item, error)
	IsDependencyFolder(dir string) bool
}

// Navigator computes transitions between states.
type Navigator struct {
	lister Lister
}

// New returns a Navigator reading directories through lister.
func New(lister Lister) *Navigator {
	return &Navigator{lister: lister}
}

// Start lists the dependency folder root and returns the initial state.
func (n *Navigator) Start(ctx context.Context, root string) (State, error) {
	items, err := n.lister.Build(ctx, root)
	if err != nil {
		return State{}, err
	}
	return State{Root: root, Current: root, Items: items, Phase: PhaseListing}, nil
}

// Choices returns the items to present for s, with the synthetic parent
// entry first whenever s is below the root.
func (n *Navigator) Choices(s State) []nodemodules.Item {
	if s.AtRoot() {
		out := make([]nodemodules.Item, len(s.Items))
		copy(out, s.Items)
		return out
	}
	out := make([]nodemodules.Item, 0, len(s.Items)+1)
	out = append(out, nodemodules.ParentItem(s.Current))
	out = append(out, s.Items...)
	return out
}

// Transition applies a choice to s. A nil choice cancels. When a directory
// cannot be read the original state is returned together with a
// navigation error so the caller can re-prompt.
func (n *Navigator) Transition(ctx context.Context, s State, choice *nodemodules.Item) (State, error) {
	if s.Terminal() {
		return s, ErrTerminal
	}
	if choice == nil {
		next := s
		next.Phase = PhaseCancelled
		return next, nil
	}
	if !choice.Navigable() {
		next := s
		next.Phase = PhaseSelectedFile
		next.Selected = choice.Path
		return next, nil
	}
	items, err := n.read(ctx, choice.Path)
	if err != nil {
		return s, nodemodules.NavigationError(choice.Path, err)
	}
	return State{
		Root:    s.Root,
		Current: choice.Path,
		Items:   items,
		Phase:   PhaseListing,
	}, nil
}

func (n *Navigator) read(ctx context.Context, dir string) ([]nodemodules.Item, error) {
	if n.lister.IsDependencyFolder(dir) {
		return n.lister.Build(ctx, dir)
	}
	return n.lister.List(dir)
}
