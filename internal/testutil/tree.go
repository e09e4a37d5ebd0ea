package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// Tree creates paths below root on fsys. Entries ending in "/" are created as
// directories; everything else becomes a small file (parents included).
func Tree(t *testing.T, fsys afero.Fs, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			if err := fsys.MkdirAll(full, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", full, err)
			}
			continue
		}
		if err := fsys.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(full), err)
		}
		if err := afero.WriteFile(fsys, full, []byte(filepath.Base(p)+"\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", full, err)
		}
	}
}

// MemTree returns an in-memory filesystem populated via Tree.
func MemTree(t *testing.T, root string, paths ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	Tree(t, fsys, root, paths...)
	return fsys
}

// DiskTree populates a fresh temporary directory and returns its path.
func DiskTree(t *testing.T, paths ...string) string {
	t.Helper()
	root := t.TempDir()
	Tree(t, afero.NewOsFs(), root, paths...)
	return root
}

// Symlink creates a symbolic link at link pointing to target, skipping the
// test when the platform refuses.
func Symlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
}
