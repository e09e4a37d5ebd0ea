// Package opener hands a chosen file to the user's editor and reveals its
// path.
package opener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atomicstack/nmpick/internal/logging/events"
	"github.com/atotto/clipboard"
	"mvdan.cc/sh/v3/shell"
)

// ErrNoEditor is returned by Open when no editor command is configured.
var ErrNoEditor = errors.New("no editor configured (set --editor, VISUAL or EDITOR)")

// Config controls how files are opened and revealed.
type Config struct {
	// Editor is a shell-style command line; the file path is appended as the
	// final argument.
	Editor string
	// PrintOnly skips the editor entirely.
	PrintOnly bool
	// Copy also places the revealed path on the system clipboard.
	Copy bool
}

// Opener implements the open and reveal collaborators.
type Opener struct {
	cfg    Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	run       func(cmd *exec.Cmd) error
	copyText  func(string) error
	getenvVar func(string) string
}

// New returns an Opener attached to the process standard streams.
func New(cfg Config) *Opener {
	return &Opener{
		cfg:       cfg,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		run:       (*exec.Cmd).Run,
		copyText:  clipboard.WriteAll,
		getenvVar: os.Getenv,
	}
}

// WithOutput redirects the revealed path and editor output.
func (o *Opener) WithOutput(stdout, stderr io.Writer) *Opener {
	o.stdout = stdout
	o.stderr = stderr
	return o
}

// Command returns the editor argv used to open path.
func (o *Opener) Command(path string) ([]string, error) {
	line := strings.TrimSpace(o.cfg.Editor)
	if line == "" {
		return nil, ErrNoEditor
	}
	fields, err := shell.Fields(line, o.getenvVar)
	if err != nil {
		return nil, fmt.Errorf("parse editor command %q: %w", line, err)
	}
	if len(fields) == 0 {
		return nil, ErrNoEditor
	}
	return append(fields, path), nil
}

// Open launches the editor on path and waits for it to exit. It is a no-op
// in print-only mode.
func (o *Opener) Open(ctx context.Context, path string) error {
	if o.cfg.PrintOnly {
		return nil
	}
	argv, err := o.Command(path)
	if err != nil {
		return err
	}
	events.Action.Open(path, argv)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = o.stdin
	// stdout carries only the revealed path.
	cmd.Stdout = o.stderr
	cmd.Stderr = o.stderr
	if err := o.run(cmd); err != nil {
		return fmt.Errorf("run %s: %w", argv[0], err)
	}
	return nil
}

// Reveal prints path on stdout and, when configured, copies it to the
// clipboard.
func (o *Opener) Reveal(path string) error {
	if _, err := fmt.Fprintln(o.stdout, path); err != nil {
		return err
	}
	copied := false
	if o.cfg.Copy {
		if err := o.copyText(path); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		copied = true
	}
	events.Action.Reveal(path, copied)
	return nil
}

// EditorFromEnv picks the editor command the way most terminal tools do:
// an explicit value first, then VISUAL, then EDITOR.
func EditorFromEnv(explicit string, getenv func(string) string) string {
	if v := strings.TrimSpace(explicit); v != "" {
		return v
	}
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
	}
	return ""
}
