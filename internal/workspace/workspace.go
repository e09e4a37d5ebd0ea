// Package workspace captures the read-only view of the project a browse
// session starts from.
package workspace

import (
	"path/filepath"
	"strings"
)

// Context is a snapshot of the workspace root and the active file taken once
// per invocation. Either field may be empty.
type Context struct {
	Root       string
	ActiveFile string
}

// New builds a Context. An empty root falls back to the working directory
// reported by getwd (when non-nil); a relative active file is resolved
// against the root.
func New(root, activeFile string, getwd func() (string, error)) Context {
	root = strings.TrimSpace(root)
	if root == "" && getwd != nil {
		if cwd, err := getwd(); err == nil {
			root = cwd
		}
	}
	if root != "" {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
	}
	active := strings.TrimSpace(activeFile)
	if active != "" && !filepath.IsAbs(active) && root != "" {
		active = filepath.Join(root, active)
	}
	if active != "" {
		active = filepath.Clean(active)
	}
	return Context{Root: root, ActiveFile: active}
}

// Rel returns path relative to the root for display, or path itself when it
// lies outside the root.
func (c Context) Rel(path string) string {
	if c.Root == "" {
		return path
	}
	rel, err := filepath.Rel(c.Root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
