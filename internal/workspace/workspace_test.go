package workspace

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewResolvesRelativeActiveFile(t *testing.T) {
	ctx := New("/ws", "pkgA/src/index.ts", nil)
	require.Equal(t, filepath.Clean("/ws"), ctx.Root)
	require.Equal(t, filepath.Join("/ws", "pkgA", "src", "index.ts"), ctx.ActiveFile)
}

func TestNewFallsBackToWorkingDirectory(t *testing.T) {
	ctx := New("  ", "", func() (string, error) { return "/from/cwd", nil })
	require.Equal(t, filepath.Clean("/from/cwd"), ctx.Root)
	require.Empty(t, ctx.ActiveFile)
}

func TestNewWithoutAnyRoot(t *testing.T) {
	ctx := New("", "/abs/file.ts", func() (string, error) { return "", errors.New("gone") })
	require.Empty(t, ctx.Root)
	require.Equal(t, filepath.Clean("/abs/file.ts"), ctx.ActiveFile)
}

func TestRel(t *testing.T) {
	ctx := Context{Root: "/ws"}
	require.Equal(t, filepath.Join("node_modules", "foo"), ctx.Rel("/ws/node_modules/foo"))
	require.Equal(t, "/elsewhere/x", ctx.Rel("/elsewhere/x"))
	require.Equal(t, "/x", Context{}.Rel("/x"))
}
