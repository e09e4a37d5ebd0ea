package nodemodules

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/atomicstack/nmpick/internal/workspace"
	"github.com/spf13/afero"
)

const (
	// DefaultFolder is the dependency folder name used when none is configured.
	DefaultFolder = "node_modules"
	// ManifestName marks a directory as a package rather than a scope.
	ManifestName = "package.json"
)

// Resolver decides which project directory's dependency folder to browse.
type Resolver struct {
	fs     afero.Fs
	folder string
}

// NewResolver returns a resolver that looks for folder (DefaultFolder when
// empty) on the supplied filesystem.
func NewResolver(fsys afero.Fs, folder string) *Resolver {
	if strings.TrimSpace(folder) == "" {
		folder = DefaultFolder
	}
	return &Resolver{fs: fsys, folder: folder}
}

// FolderIn joins the dependency folder name onto a project directory.
func (r *Resolver) FolderIn(project string) string {
	return filepath.Join(project, r.folder)
}

// Resolve returns the project directory whose dependency folder should be
// browsed. The workspace root wins when it has its own dependency folder;
// otherwise the first path segment of the active file below the root is
// treated as a monorepo sub-project, and it must have a dependency folder.
func (r *Resolver) Resolve(ws workspace.Context) (string, error) {
	root := strings.TrimSpace(ws.Root)
	if root == "" {
		return "", ErrNoWorkspace
	}
	ok, err := exists(r.fs, r.FolderIn(root))
	if err != nil {
		return "", err
	}
	if ok {
		return root, nil
	}

	active := strings.TrimSpace(ws.ActiveFile)
	if active == "" {
		return "", ErrNoActiveFile
	}
	candidate, err := subProject(root, active)
	if err != nil {
		return "", err
	}
	project := filepath.Join(root, candidate)
	ok, err = exists(r.fs, r.FolderIn(project))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", newError(UnsupportedLayout, ErrUnsupportedLayout.msg, r.FolderIn(project), nil)
	}
	return project, nil
}

// subProject returns the first directory component of active relative to root.
func subProject(root, active string) (string, error) {
	rel, err := filepath.Rel(root, active)
	if err != nil {
		return "", newError(UnsupportedLayout, "active file is not inside the workspace", active, err)
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) == 0 || parts[0] == ".." || parts[0] == "." {
		return "", newError(UnsupportedLayout, "active file is not inside the workspace", active, nil)
	}
	if len(parts) < 2 {
		return "", newError(UnsupportedLayout, ErrUnsupportedLayout.msg, active, nil)
	}
	return parts[0], nil
}

// exists treats "not found" as a normal negative answer and anything else as
// an unexpected failure.
func exists(fsys afero.Fs, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return false, nil
	}
	return false, newError(UnexpectedFS, ErrUnexpectedFS.msg, path, err)
}
