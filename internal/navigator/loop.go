package navigator

import (
	"context"
	"errors"

	"github.com/atomicstack/nmpick/internal/nodemodules"
)

// Prompter asks the user to pick one item. A nil item with a nil error means
// the prompt was dismissed.
type Prompter interface {
	Choose(ctx context.Context, title string, items []nodemodules.Item) (*nodemodules.Item, error)
	Notify(err error)
}

// TitleFunc renders the prompt title for a state.
type TitleFunc func(State) string

// Run drives the state machine with p until a file is chosen or the prompt
// is dismissed. ok is false when the session was cancelled. Navigation read
// errors are reported through p and the same listing is shown again.
func Run(ctx context.Context, n *Navigator, p Prompter, root string, title TitleFunc) (string, bool, error) {
	state, err := n.Start(ctx, root)
	if err != nil {
		return "", false, err
	}
	for {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}
		label := state.Current
		if title != nil {
			label = title(state)
		}
		choice, err := p.Choose(ctx, label, n.Choices(state))
		if err != nil {
			return "", false, err
		}
		next, err := n.Transition(ctx, state, choice)
		if err != nil {
			if errors.Is(err, nodemodules.ErrNavigationRead) {
				p.Notify(err)
				continue
			}
			return "", false, err
		}
		state = next
		switch state.Phase {
		case PhaseSelectedFile:
			return state.Selected, true, nil
		case PhaseCancelled:
			return "", false, nil
		}
	}
}
