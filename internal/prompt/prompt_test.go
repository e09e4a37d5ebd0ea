package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/nmpick/internal/nodemodules"
	"github.com/atomicstack/nmpick/internal/testutil"
	"github.com/stretchr/testify/require"
)

func sampleItems() []nodemodules.Item {
	return []nodemodules.Item{
		nodemodules.ParentItem("/ws/node_modules/react"),
		{DisplayName: "index.js", Path: "/ws/node_modules/react/index.js", Kind: nodemodules.KindFile},
		{DisplayName: "lib", Path: "/ws/node_modules/react/lib", Kind: nodemodules.KindDirectory},
		{DisplayName: "package.json", Path: "/ws/node_modules/react/package.json", Kind: nodemodules.KindFile},
	}
}

func newLine(input string) (*Line, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return New(strings.NewReader(input), &out, &errOut), &out, &errOut
}

func TestChooseByNumber(t *testing.T) {
	l, out, _ := newLine("3\n")
	item, err := l.Choose(context.Background(), "react", sampleItems())
	require.NoError(t, err)
	require.NotNil(t, item)
	require.Equal(t, "lib", item.DisplayName)
	require.Contains(t, out.String(), "3)  ▸ lib")
}

func TestChooseQuitAndEOFCancel(t *testing.T) {
	for _, input := range []string{"q\n", ""} {
		l, _, _ := newLine(input)
		item, err := l.Choose(context.Background(), "react", sampleItems())
		require.NoError(t, err)
		require.Nil(t, item, "input %q", input)
	}
}

func TestChooseParentShortcut(t *testing.T) {
	l, _, _ := newLine("..\n")
	item, err := l.Choose(context.Background(), "react", sampleItems())
	require.NoError(t, err)
	require.True(t, item.Parent)
	require.Equal(t, "/ws/node_modules", item.Path)
}

func TestChooseParentShortcutAtRoot(t *testing.T) {
	l, _, errOut := newLine("..\n1\n")
	item, err := l.Choose(context.Background(), "root", sampleItems()[1:])
	require.NoError(t, err)
	require.Equal(t, "index.js", item.DisplayName)
	require.Contains(t, errOut.String(), "already at the top")
}

func TestChooseFilterRenumbers(t *testing.T) {
	l, out, _ := newLine("pkg\n1\n")
	item, err := l.Choose(context.Background(), "react", sampleItems())
	require.NoError(t, err)
	require.Equal(t, "package.json", item.DisplayName)
	require.Contains(t, out.String(), "1)  · package.json")
}

func TestChooseRejectsOutOfRange(t *testing.T) {
	l, _, errOut := newLine("9\n2\n")
	item, err := l.Choose(context.Background(), "react", sampleItems())
	require.NoError(t, err)
	require.Equal(t, "index.js", item.DisplayName)
	require.Contains(t, errOut.String(), "no entry 9")
}

func TestChooseNoMatchesResetsList(t *testing.T) {
	l, _, errOut := newLine("zzz\nq\n")
	item, err := l.Choose(context.Background(), "react", sampleItems())
	require.NoError(t, err)
	require.Nil(t, item)
	require.Contains(t, errOut.String(), `no matches for "zzz"`)
}

func TestChooseHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l, _, _ := newLine("1\n")
	_, err := l.Choose(ctx, "react", sampleItems())
	require.ErrorIs(t, err, context.Canceled)
}

func TestNotifyWritesError(t *testing.T) {
	l, _, errOut := newLine("")
	l.Notify(errors.New("unable to read directory: /x"))
	l.Notify(nil)
	require.Equal(t, "Error: unable to read directory: /x\n", errOut.String())
}

func TestFilterSkipsParentAndRanks(t *testing.T) {
	got := Filter(sampleItems(), "js")
	names := make([]string, len(got))
	for i, item := range got {
		names[i] = item.DisplayName
	}
	require.Equal(t, []string{"index.js", "package.json"}, names)
	require.Len(t, Filter(sampleItems(), " "), 4)
}

func TestChooseListingGolden(t *testing.T) {
	l, out, _ := newLine("q\n")
	item, err := l.Choose(context.Background(), "react", sampleItems())
	require.NoError(t, err)
	require.Nil(t, item)
	testutil.AssertGolden(t, "prompt/listing.golden", out.String())
}
