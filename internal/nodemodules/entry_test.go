package nodemodules

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyDisplayName(t *testing.T) {
	entry := Entry{Name: "bar", Dir: "/ws/node_modules/@scope", IsDir: true}

	unscoped := Classify(entry, "")
	require.Equal(t, "bar", unscoped.DisplayName)

	scoped := Classify(entry, "@scope")
	require.Equal(t, "@scope/bar", scoped.DisplayName)
	require.Equal(t, filepath.Join("/ws/node_modules/@scope", "bar"), scoped.Path)
}

func TestClassifyKinds(t *testing.T) {
	cases := []struct {
		name  string
		entry Entry
		want  Kind
	}{
		{"directory", Entry{Name: "a", IsDir: true}, KindDirectory},
		{"file", Entry{Name: "a", IsFile: true}, KindFile},
		{"symlink", Entry{Name: "a", IsSymlink: true}, KindSymlink},
		{"no flags", Entry{Name: "a"}, KindUnknown},
		{"directory wins over file", Entry{Name: "a", IsDir: true, IsFile: true}, KindDirectory},
		{"directory wins over symlink", Entry{Name: "a", IsDir: true, IsSymlink: true}, KindDirectory},
		{"file wins over symlink", Entry{Name: "a", IsFile: true, IsSymlink: true}, KindFile},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Classify(tc.entry, "").Kind)
		})
	}
}

func TestItemLabelCarriesKindGlyph(t *testing.T) {
	dir := Item{DisplayName: "lodash", Kind: KindDirectory}
	require.Equal(t, "▸ lodash", dir.Label())

	file := Item{DisplayName: "index.js", Kind: KindFile}
	require.Equal(t, "· index.js", file.Label())
	require.False(t, file.Navigable())

	up := ParentItem("/ws/node_modules/lodash")
	require.True(t, up.Parent)
	require.Equal(t, "/ws/node_modules", filepath.ToSlash(up.Path))
	require.Equal(t, ParentName, up.DisplayName)
	require.True(t, up.Navigable())
}
