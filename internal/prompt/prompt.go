// Package prompt implements a line-oriented chooser for sessions that are not
// attached to a terminal (pipes, CI logs, dumb terminals).
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/atomicstack/nmpick/internal/format/table"
	"github.com/atomicstack/nmpick/internal/nodemodules"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Line asks for a choice by number. Input other than a number narrows the
// list with a fuzzy match; "q" or end of input dismisses the prompt.
type Line struct {
	in  *bufio.Reader
	out io.Writer
	err io.Writer
}

// New returns a Line reading answers from in. Listings go to out and
// notifications to errOut.
func New(in io.Reader, out, errOut io.Writer) *Line {
	return &Line{in: bufio.NewReader(in), out: out, err: errOut}
}

// Choose prints items and waits for a selection. A nil item means the prompt
// was dismissed.
func (l *Line) Choose(ctx context.Context, title string, items []nodemodules.Item) (*nodemodules.Item, error) {
	shown := items
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		l.render(title, shown)
		fmt.Fprint(l.out, "select [number, text to filter, q to quit]: ")
		answer, err := l.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, err
		}
		switch {
		case answer == "":
			shown = items
			continue
		case answer == "q":
			return nil, nil
		case answer == nodemodules.ParentName:
			for i := range items {
				if items[i].Parent {
					return &items[i], nil
				}
			}
			fmt.Fprintln(l.err, "already at the top of the dependency folder")
			continue
		}
		if n, convErr := strconv.Atoi(answer); convErr == nil {
			if n < 1 || n > len(shown) {
				fmt.Fprintf(l.err, "no entry %d\n", n)
				continue
			}
			chosen := shown[n-1]
			return &chosen, nil
		}
		filtered := Filter(items, strings.TrimPrefix(answer, "/"))
		if len(filtered) == 0 {
			fmt.Fprintf(l.err, "no matches for %q\n", answer)
			shown = items
			continue
		}
		shown = filtered
	}
}

// Notify reports a recoverable error before the listing is shown again.
func (l *Line) Notify(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(l.err, "Error: %v\n", err)
}

func (l *Line) render(title string, items []nodemodules.Item) {
	fmt.Fprintln(l.out)
	fmt.Fprintln(l.out, title)
	if len(items) == 0 {
		fmt.Fprintln(l.out, "  (empty directory)")
		return
	}
	for _, row := range Rows(items) {
		fmt.Fprintln(l.out, "  "+row)
	}
}

func (l *Line) readLine() (string, error) {
	line, err := l.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Rows formats items as numbered, aligned columns.
func Rows(items []nodemodules.Item) []string {
	rows := make([][]string, len(items))
	for i, item := range items {
		kind := item.Kind.String()
		if item.Parent {
			kind = "parent"
		}
		rows[i] = []string{fmt.Sprintf("%d)", i+1), item.Label(), kind}
	}
	return table.Format(rows, []table.Alignment{table.AlignRight, table.AlignLeft, table.AlignLeft})
}

// Filter keeps the items whose display name fuzzily matches query, best
// matches first. The parent entry never matches.
func Filter(items []nodemodules.Item, query string) []nodemodules.Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.DisplayName
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)
	out := make([]nodemodules.Item, 0, len(ranks))
	for _, rank := range ranks {
		if items[rank.OriginalIndex].Parent {
			continue
		}
		out = append(out, items[rank.OriginalIndex])
	}
	return out
}
