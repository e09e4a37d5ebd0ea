package state

import "github.com/atomicstack/nmpick/internal/nodemodules"

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []nodemodules.Item) []nodemodules.Item {
	dup := make([]nodemodules.Item, len(items))
	copy(dup, items)
	return dup
}
