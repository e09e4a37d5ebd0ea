package state

import (
	"strings"
	"unicode"

	"github.com/atomicstack/nmpick/internal/nodemodules"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter replaces the query and places the caret at cursor (clamped to
// the query). Starting a filter remembers the row under the cursor so that
// clearing it again returns there.
func (l *Level) SetFilter(query string, cursor int) {
	was := strings.TrimSpace(l.Filter)
	now := strings.TrimSpace(query)
	l.Filter = query
	l.FilterCursor = min(max(cursor, 0), len([]rune(query)))

	switch {
	case now != "":
		if was == "" {
			l.LastCursor = l.Cursor
		}
		l.Cursor = 0
		l.applyFilter()
		if idx := BestMatchIndex(l.Items, now); idx >= 0 {
			l.Cursor = idx
		}
	case was != "":
		restore := l.LastCursor
		l.LastCursor = -1
		l.applyFilter()
		l.Cursor = 0
		if restore >= 0 && restore < len(l.Items) {
			l.Cursor = restore
		}
	default:
		l.applyFilter()
	}
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	l.clampCursor()
	if l.ViewportOffset >= len(l.Items) {
		l.ViewportOffset = 0
	}
}

// FilterCursorPos returns the caret as a rune offset inside the query.
func (l *Level) FilterCursorPos() int {
	return min(max(l.FilterCursor, 0), len([]rune(l.Filter)))
}

// InsertFilterText types text at the caret.
func (l *Level) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	pos := l.FilterCursorPos()
	l.SetFilter(splice([]rune(l.Filter), pos, pos, insert), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward removes the rune before the caret.
func (l *Level) DeleteFilterRuneBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	l.SetFilter(splice([]rune(l.Filter), pos-1, pos, nil), pos-1)
	return true
}

// DeleteFilterWordBackward removes the word before the caret along with any
// spaces between it and the caret.
func (l *Level) DeleteFilterWordBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	runes := []rune(l.Filter)
	start := wordStart(runes, pos)
	l.SetFilter(splice(runes, start, pos, nil), start)
	return true
}

// MoveFilterCursorStart puts the caret before the first rune.
func (l *Level) MoveFilterCursorStart() bool {
	return l.moveFilterCursor(0)
}

// MoveFilterCursorEnd puts the caret after the last rune.
func (l *Level) MoveFilterCursorEnd() bool {
	return l.moveFilterCursor(len([]rune(l.Filter)))
}

// MoveFilterCursorWordBackward jumps to the start of the previous word.
func (l *Level) MoveFilterCursorWordBackward() bool {
	return l.moveFilterCursor(wordStart([]rune(l.Filter), l.FilterCursorPos()))
}

// MoveFilterCursorWordForward jumps past the next word and its trailing spaces.
func (l *Level) MoveFilterCursorWordForward() bool {
	return l.moveFilterCursor(wordEnd([]rune(l.Filter), l.FilterCursorPos()))
}

// MoveFilterCursorRuneBackward steps the caret one rune left.
func (l *Level) MoveFilterCursorRuneBackward() bool {
	return l.moveFilterCursor(l.FilterCursorPos() - 1)
}

// MoveFilterCursorRuneForward steps the caret one rune right.
func (l *Level) MoveFilterCursorRuneForward() bool {
	return l.moveFilterCursor(l.FilterCursorPos() + 1)
}

func (l *Level) moveFilterCursor(pos int) bool {
	pos = min(max(pos, 0), len([]rune(l.Filter)))
	if pos == l.FilterCursorPos() {
		return false
	}
	l.FilterCursor = pos
	return true
}

func splice(runes []rune, from, to int, insert []rune) string {
	out := make([]rune, 0, len(runes)-(to-from)+len(insert))
	out = append(out, runes[:from]...)
	out = append(out, insert...)
	out = append(out, runes[to:]...)
	return string(out)
}

func wordStart(runes []rune, pos int) int {
	for pos > 0 && unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	return pos
}

func wordEnd(runes []rune, pos int) int {
	for pos < len(runes) && !unicode.IsSpace(runes[pos]) {
		pos++
	}
	for pos < len(runes) && unicode.IsSpace(runes[pos]) {
		pos++
	}
	return pos
}

// FilterItems keeps the items whose display name fuzzily matches query, in
// listing order. When nothing matches fuzzily a plain substring match is
// tried. The ".." entry is never part of a filtered listing.
func FilterItems(items []nodemodules.Item, query string) []nodemodules.Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return CloneItems(items)
	}
	matched := make([]bool, len(items))
	found := false
	for _, rank := range fuzzy.RankFindNormalizedFold(query, displayNames(items)) {
		if !items[rank.OriginalIndex].Parent {
			matched[rank.OriginalIndex] = true
			found = true
		}
	}
	if !found {
		lower := strings.ToLower(query)
		for i, item := range items {
			matched[i] = !item.Parent && strings.Contains(strings.ToLower(item.DisplayName), lower)
		}
	}
	out := make([]nodemodules.Item, 0, len(items))
	for i, item := range items {
		if matched[i] {
			out = append(out, item)
		}
	}
	return out
}

func displayNames(items []nodemodules.Item) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.DisplayName
	}
	return names
}

// BestMatchIndex picks the row a query most likely refers to. Exact names
// win over prefixes; a prefix of the package part of "scope/name" counts
// before a plain substring. Fuzzy distance breaks the remaining ties.
// It returns -1 only for an empty slice.
func BestMatchIndex(items []nodemodules.Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return 0
	}
	lower := strings.ToLower(query)
	tiers := []func(name string) bool{
		func(name string) bool { return name == lower },
		func(name string) bool { return strings.HasPrefix(name, lower) },
		func(name string) bool {
			_, pkg, scoped := strings.Cut(name, "/")
			return scoped && strings.HasPrefix(pkg, lower)
		},
		func(name string) bool { return strings.Contains(name, lower) },
	}
	for _, match := range tiers {
		for i, item := range items {
			if match(strings.ToLower(item.DisplayName)) {
				return i
			}
		}
	}
	best := -1
	bestDistance := 0
	for _, rank := range fuzzy.RankFindNormalizedFold(query, displayNames(items)) {
		if best < 0 || rank.Distance < bestDistance || (rank.Distance == bestDistance && rank.OriginalIndex < best) {
			best, bestDistance = rank.OriginalIndex, rank.Distance
		}
	}
	if best < 0 {
		return 0
	}
	return best
}
