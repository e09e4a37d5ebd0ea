package nodemodules

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many top-level entries are expanded at once.
const DefaultConcurrency = 8

// BuilderOptions configures a Builder.
type BuilderOptions struct {
	Folder      string
	Hide        []string
	Concurrency int
}

// Builder produces listings for dependency folders and plain directories.
type Builder struct {
	fs          afero.Fs
	folder      string
	hide        []glob.Glob
	concurrency int
}

// NewBuilder compiles the hide patterns and returns a ready Builder.
func NewBuilder(fsys afero.Fs, opts BuilderOptions) (*Builder, error) {
	folder := strings.TrimSpace(opts.Folder)
	if folder == "" {
		folder = DefaultFolder
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	hide, err := CompilePatterns(opts.Hide)
	if err != nil {
		return nil, err
	}
	return &Builder{fs: fsys, folder: folder, hide: hide, concurrency: concurrency}, nil
}

// CompilePatterns compiles glob patterns, skipping blank entries.
func CompilePatterns(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			continue
		}
		g, err := glob.Compile(trimmed)
		if err != nil {
			return nil, fmt.Errorf("invalid hide pattern %q: %w", trimmed, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

// IsDependencyFolder reports whether dir is itself a dependency folder.
func (b *Builder) IsDependencyFolder(dir string) bool {
	return filepath.Base(dir) == b.folder
}

// Build lists the packages inside a dependency folder. Directories holding a
// manifest are packages; any other directory is a scope whose children are
// listed as "scope/name".
func (b *Builder) Build(ctx context.Context, dir string) ([]Item, error) {
	infos, err := b.readDir(dir)
	if err != nil {
		return nil, err
	}
	subdirs := make([]string, 0, len(infos))
	for _, info := range infos {
		if !info.IsDir() || b.hidden(info.Name()) {
			continue
		}
		subdirs = append(subdirs, info.Name())
	}

	groups := make([][]Item, len(subdirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, name := range subdirs {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items, err := b.expand(dir, name)
			if err != nil {
				return err
			}
			groups[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, group := range groups {
		total += len(group)
	}
	items := make([]Item, 0, total)
	for _, group := range groups {
		items = append(items, group...)
	}
	return items, nil
}

func (b *Builder) expand(dir, name string) ([]Item, error) {
	pkgDir := filepath.Join(dir, name)
	isPackage, err := exists(b.fs, filepath.Join(pkgDir, ManifestName))
	if err != nil {
		return nil, err
	}
	if isPackage {
		return []Item{{DisplayName: name, Path: pkgDir, Kind: KindDirectory}}, nil
	}
	children, err := b.readDir(pkgDir)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(children))
	for _, child := range children {
		if !child.IsDir() || b.hidden(child.Name()) {
			continue
		}
		items = append(items, Classify(EntryFromInfo(pkgDir, child), name))
	}
	return items, nil
}

// List returns every entry of dir, unscoped.
func (b *Builder) List(dir string) ([]Item, error) {
	infos, err := b.readDir(dir)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(infos))
	for _, info := range infos {
		if b.hidden(info.Name()) {
			continue
		}
		items = append(items, Classify(EntryFromInfo(dir, info), ""))
	}
	return items, nil
}

func (b *Builder) hidden(name string) bool {
	for _, g := range b.hide {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// readDir returns entries sorted by name without following symlinks.
func (b *Builder) readDir(dir string) ([]os.FileInfo, error) {
	infos, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		return nil, newError(UnexpectedFS, "unable to list directory", dir, err)
	}
	return infos, nil
}

// NavigationError wraps a failure to read path while browsing.
func NavigationError(path string, err error) error {
	if err == nil {
		return nil
	}
	return newError(NavigationRead, ErrNavigationRead.msg, path, err)
}
