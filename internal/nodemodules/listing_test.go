package nodemodules

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/nmpick/internal/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func displayNames(items []Item) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.DisplayName
	}
	return names
}

func TestBuildFlattensScopes(t *testing.T) {
	fsys := testutil.MemTree(t, "/nm",
		"foo/package.json",
		"@scope/bar/index.js",
		"@scope/baz/",
	)
	b, err := NewBuilder(fsys, BuilderOptions{})
	require.NoError(t, err)

	items, err := b.Build(context.Background(), "/nm")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"foo", "@scope/bar", "@scope/baz"}, displayNames(items))
	for _, item := range items {
		require.Equal(t, KindDirectory, item.Kind)
	}
}

func TestBuildSkipsFilesAndKeepsScopeGrouping(t *testing.T) {
	fsys := testutil.MemTree(t, "/nm",
		".package-lock.json",
		"@a/one/",
		"@a/two/",
		"@a/README.md",
		"lodash/package.json",
		"react/package.json",
	)
	b, err := NewBuilder(fsys, BuilderOptions{Concurrency: 2})
	require.NoError(t, err)

	items, err := b.Build(context.Background(), "/nm")
	require.NoError(t, err)
	require.Equal(t, []string{"@a/one", "@a/two", "lodash", "react"}, displayNames(items))
	require.Equal(t, filepath.Join("/nm", "@a", "one"), items[0].Path)
	require.Equal(t, filepath.Join("/nm", "lodash"), items[2].Path)
}

func TestBuildHonoursHidePatterns(t *testing.T) {
	fsys := testutil.MemTree(t, "/nm",
		".cache/some/",
		"@types/node/",
		"@types/react/",
		"left-pad/package.json",
	)
	b, err := NewBuilder(fsys, BuilderOptions{Hide: []string{".*", "react", " "}})
	require.NoError(t, err)

	items, err := b.Build(context.Background(), "/nm")
	require.NoError(t, err)
	require.Equal(t, []string{"@types/node", "left-pad"}, displayNames(items))
}

func TestNewBuilderRejectsInvalidPattern(t *testing.T) {
	_, err := NewBuilder(afero.NewMemMapFs(), BuilderOptions{Hide: []string{"[unterminated"}})
	require.Error(t, err)
}

func TestBuildMissingFolder(t *testing.T) {
	b, err := NewBuilder(afero.NewMemMapFs(), BuilderOptions{})
	require.NoError(t, err)

	_, err = b.Build(context.Background(), "/missing")
	require.ErrorIs(t, err, ErrUnexpectedFS)
}

func TestListClassifiesEveryEntry(t *testing.T) {
	fsys := testutil.MemTree(t, "/nm/foo",
		"package.json",
		"lib/",
		"node_modules/",
	)
	b, err := NewBuilder(fsys, BuilderOptions{})
	require.NoError(t, err)

	items, err := b.List("/nm/foo")
	require.NoError(t, err)
	require.Equal(t, []string{"lib", "node_modules", "package.json"}, displayNames(items))
	require.Equal(t, KindDirectory, items[0].Kind)
	require.Equal(t, KindFile, items[2].Kind)
	require.True(t, b.IsDependencyFolder(items[1].Path))
	require.False(t, b.IsDependencyFolder(items[0].Path))
}

func TestListReportsSymlinksWithoutFollowing(t *testing.T) {
	root := testutil.DiskTree(t, "pkg/index.js", "target/")
	testutil.Symlink(t, filepath.Join(root, "target"), filepath.Join(root, "pkg", "linked"))

	b, err := NewBuilder(afero.NewOsFs(), BuilderOptions{})
	require.NoError(t, err)

	items, err := b.List(filepath.Join(root, "pkg"))
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "index.js", items[0].DisplayName)
	require.Equal(t, KindFile, items[0].Kind)
	require.Equal(t, "linked", items[1].DisplayName)
	require.Equal(t, KindSymlink, items[1].Kind)
}

func TestListFailsOnPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	root := testutil.DiskTree(t, "locked/file.js")
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	b, err := NewBuilder(afero.NewOsFs(), BuilderOptions{})
	require.NoError(t, err)

	_, err = b.List(locked)
	require.ErrorIs(t, err, ErrUnexpectedFS)
}
