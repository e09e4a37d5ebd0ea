package opener

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestOpener(cfg Config) (*Opener, *bytes.Buffer, *[]*exec.Cmd, *[]string) {
	var out bytes.Buffer
	var ran []*exec.Cmd
	var copied []string
	o := New(cfg).WithOutput(&out, &out)
	o.run = func(cmd *exec.Cmd) error {
		ran = append(ran, cmd)
		return nil
	}
	o.copyText = func(text string) error {
		copied = append(copied, text)
		return nil
	}
	o.getenvVar = func(key string) string {
		if key == "HOME" {
			return "/home/dev"
		}
		return ""
	}
	return o, &out, &ran, &copied
}

func TestCommandSplitsShellWords(t *testing.T) {
	o, _, _, _ := newTestOpener(Config{Editor: `code --wait --user-data-dir "$HOME/my dir"`})
	argv, err := o.Command("/ws/node_modules/react/index.js")
	require.NoError(t, err)
	require.Equal(t, []string{"code", "--wait", "--user-data-dir", "/home/dev/my dir", "/ws/node_modules/react/index.js"}, argv)
}

func TestCommandWithoutEditor(t *testing.T) {
	o, _, _, _ := newTestOpener(Config{Editor: "   "})
	_, err := o.Command("/x")
	require.ErrorIs(t, err, ErrNoEditor)
}

func TestCommandRejectsUnbalancedQuotes(t *testing.T) {
	o, _, _, _ := newTestOpener(Config{Editor: `vim "unterminated`})
	_, err := o.Command("/x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse editor command")
}

func TestOpenRunsEditorOnce(t *testing.T) {
	o, _, ran, _ := newTestOpener(Config{Editor: "vim -R"})
	require.NoError(t, o.Open(context.Background(), "/ws/a.js"))
	require.Len(t, *ran, 1)
	require.Equal(t, []string{"vim", "-R", "/ws/a.js"}, (*ran)[0].Args)
}

func TestOpenPrintOnlySkipsEditor(t *testing.T) {
	o, _, ran, _ := newTestOpener(Config{PrintOnly: true})
	require.NoError(t, o.Open(context.Background(), "/ws/a.js"))
	require.Empty(t, *ran)
}

func TestOpenWrapsRunFailure(t *testing.T) {
	o, _, _, _ := newTestOpener(Config{Editor: "nano"})
	o.run = func(*exec.Cmd) error { return errors.New("exit status 1") }
	err := o.Open(context.Background(), "/ws/a.js")
	require.EqualError(t, err, "run nano: exit status 1")
}

func TestRevealPrintsAndCopies(t *testing.T) {
	o, out, _, copied := newTestOpener(Config{Copy: true})
	require.NoError(t, o.Reveal("/ws/a.js"))
	require.Equal(t, "/ws/a.js\n", out.String())
	require.Equal(t, []string{"/ws/a.js"}, *copied)
}

func TestRevealWithoutCopy(t *testing.T) {
	o, out, _, copied := newTestOpener(Config{})
	require.NoError(t, o.Reveal("/ws/a.js"))
	require.Equal(t, "/ws/a.js\n", out.String())
	require.Empty(t, *copied)
}

func TestRevealReportsClipboardFailure(t *testing.T) {
	o, out, _, _ := newTestOpener(Config{Copy: true})
	o.copyText = func(string) error { return errors.New("no clipboard utility") }
	err := o.Reveal("/ws/a.js")
	require.ErrorContains(t, err, "copy to clipboard")
	require.Equal(t, "/ws/a.js\n", out.String())
}

func TestEditorFromEnvPrecedence(t *testing.T) {
	env := map[string]string{"VISUAL": "code -w", "EDITOR": "vi"}
	getenv := func(k string) string { return env[k] }
	require.Equal(t, "hx", EditorFromEnv("hx", getenv))
	require.Equal(t, "code -w", EditorFromEnv("", getenv))
	delete(env, "VISUAL")
	require.Equal(t, "vi", EditorFromEnv("", getenv))
	delete(env, "EDITOR")
	require.Equal(t, "", EditorFromEnv("", getenv))
}
