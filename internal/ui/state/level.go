package state

import (
	"github.com/atomicstack/nmpick/internal/nodemodules"
)

// Level encapsulates the listing for one directory: items, filter, cursor, and viewport.
type Level struct {
	ID             string
	Title          string
	Items          []nodemodules.Item
	Full           []nodemodules.Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewLevel constructs a Level for the directory id using the provided items.
func NewLevel(id, title string, items []nodemodules.Item) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		LastCursor: -1,
	}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the index of the item with the given path.
func (l *Level) IndexOf(path string) int {
	if path == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.Path == path && !item.Parent {
			return i
		}
	}
	return -1
}

// Selected returns the item under the cursor.
func (l *Level) Selected() (nodemodules.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return nodemodules.Item{}, false
	}
	return l.Items[l.Cursor], true
}

// HasFiles reports whether any unfiltered item is a regular file.
func (l *Level) HasFiles() bool {
	for _, item := range l.Full {
		if item.Kind == nodemodules.KindFile {
			return true
		}
	}
	return false
}

// UpdateItems refreshes the level items while keeping the viewport if possible.
func (l *Level) UpdateItems(items []nodemodules.Item) {
	prevOffset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.applyFilter()
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 {
		prevOffset = 0
	}
	if prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}
