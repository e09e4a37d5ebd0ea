package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atomicstack/nmpick/internal/logging"
	"github.com/atomicstack/nmpick/internal/logging/events"
	"github.com/atomicstack/nmpick/internal/navigator"
	"github.com/atomicstack/nmpick/internal/nodemodules"
	"github.com/atomicstack/nmpick/internal/opener"
	"github.com/atomicstack/nmpick/internal/prompt"
	"github.com/atomicstack/nmpick/internal/ui"
	"github.com/atomicstack/nmpick/internal/workspace"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"golang.org/x/term"
)

// Config describes user-provided application options.
type Config struct {
	Workspace   string
	ActiveFile  string
	Folder      string
	Hide        []string
	Concurrency int
	Editor      string
	PrintOnly   bool
	Copy        bool
	Width       int
	Height      int
	ShowFooter  bool
	Plain       bool
}

// Env carries the process resources Run depends on.
type Env struct {
	FS     afero.Fs
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getwd  func() (string, error)
	// Interactive reports whether the Bubble Tea UI can be used.
	Interactive func() bool
	// Open and Reveal receive the chosen file.
	Open   func(ctx context.Context, path string) error
	Reveal func(path string) error
}

// DefaultEnv wires Env to the real process.
func DefaultEnv(cfg Config) Env {
	o := opener.New(opener.Config{Editor: cfg.Editor, PrintOnly: cfg.PrintOnly, Copy: cfg.Copy})
	return Env{
		FS:          afero.NewOsFs(),
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Getwd:       os.Getwd,
		Interactive: isTerminal,
		Open:        o.Open,
		Reveal:      o.Reveal,
	}
}

// Run bootstraps and executes a browse session with the real process
// environment.
func Run(ctx context.Context, cfg Config) error {
	return RunWith(ctx, cfg, DefaultEnv(cfg))
}

// RunWith resolves the dependency folder, lets the user pick a file, and hands
// it to the open and reveal collaborators. A cancelled session is not an error.
func RunWith(ctx context.Context, cfg Config, env Env) error {
	ws := workspace.New(cfg.Workspace, cfg.ActiveFile, env.Getwd)
	events.Resolve.Start(ws.Root, ws.ActiveFile)
	resolver := nodemodules.NewResolver(env.FS, cfg.Folder)
	project, err := resolver.Resolve(ws)
	if err != nil {
		events.Resolve.Error(err)
		return err
	}
	events.Resolve.Done(project)

	builder, err := nodemodules.NewBuilder(env.FS, nodemodules.BuilderOptions{
		Folder:      cfg.Folder,
		Hide:        cfg.Hide,
		Concurrency: cfg.Concurrency,
	})
	if err != nil {
		return err
	}
	nav := navigator.New(builder)
	root := resolver.FolderIn(project)

	var (
		selected string
		ok       bool
	)
	if !cfg.Plain && env.Interactive != nil && env.Interactive() {
		events.App.Mode("tui")
		selected, ok, err = runInteractive(ctx, cfg, env, ws, nav, root)
	} else {
		events.App.Mode("line")
		line := prompt.New(env.Stdin, env.Stderr, env.Stderr)
		selected, ok, err = navigator.Run(ctx, nav, line, root, lineTitle(ws))
	}
	if err != nil {
		return err
	}
	events.App.Exit(selected, ok)
	if !ok {
		return nil
	}
	return deliver(ctx, env, selected)
}

func runInteractive(ctx context.Context, cfg Config, env Env, ws workspace.Context, nav *navigator.Navigator, root string) (string, bool, error) {
	initial, err := nav.Start(ctx, root)
	if err != nil {
		return "", false, err
	}
	model := ui.NewModel(nav, initial, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Workspace:  ws,
		FS:         env.FS,
		Context:    ctx,
	})
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
		tea.WithInput(env.Stdin),
		tea.WithOutput(env.Stderr),
	)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return "", false, nil
		}
		return "", false, err
	}
	path, ok := model.Result()
	return path, ok, nil
}

// deliver opens the file once and then reveals it. Reveal failures are
// logged and never fail the run.
func deliver(ctx context.Context, env Env, path string) error {
	if env.Open != nil {
		if err := env.Open(ctx, path); err != nil {
			events.Action.Error(err)
			return fmt.Errorf("open %s: %w", path, err)
		}
	}
	if env.Reveal != nil {
		if err := env.Reveal(path); err != nil {
			events.Action.Error(err)
			logging.Error(fmt.Errorf("reveal %s: %w", path, err))
		}
	}
	return nil
}

func lineTitle(ws workspace.Context) navigator.TitleFunc {
	return func(s navigator.State) string {
		return ws.Rel(s.Current) + string(filepath.Separator)
	}
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}
