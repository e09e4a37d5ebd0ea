// Package nodemodules locates a project's dependency folder and turns its
// contents into navigable items.
//
// Scoped packages (directories such as "@types" that hold further packages
// rather than a package.json of their own) are flattened into "scope/name"
// entries so the first listing reads like the project's dependency list.
package nodemodules

import (
	"os"
	"path/filepath"
)

// Kind identifies what a navigation item points at.
type Kind int

const (
	KindUnknown Kind = iota
	KindDirectory
	KindFile
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	case KindSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// Glyph is the visual prefix used when listing an item of this kind.
func (k Kind) Glyph() string {
	switch k {
	case KindDirectory:
		return "▸"
	case KindFile:
		return "·"
	case KindSymlink:
		return "↪"
	default:
		return "?"
	}
}

// ParentName is the display name of the synthetic "go up" item.
const ParentName = ".."

// Item is a display-ready entry in a listing.
type Item struct {
	DisplayName string
	Path        string
	Kind        Kind
	Parent      bool
}

// Label renders the display name with its kind glyph.
func (i Item) Label() string {
	if i.Parent {
		return "↰ " + i.DisplayName
	}
	return i.Kind.Glyph() + " " + i.DisplayName
}

// Navigable reports whether choosing the item should read it as a directory.
func (i Item) Navigable() bool {
	return i.Parent || i.Kind != KindFile
}

// ParentItem builds the synthetic ".." entry for dir.
func ParentItem(dir string) Item {
	return Item{
		DisplayName: ParentName,
		Path:        filepath.Dir(dir),
		Kind:        KindDirectory,
		Parent:      true,
	}
}

// Entry is a raw directory entry as reported by the filesystem.
type Entry struct {
	Name      string
	Dir       string
	IsDir     bool
	IsFile    bool
	IsSymlink bool
}

// EntryFromInfo converts lstat-style file info found in dir into an Entry.
func EntryFromInfo(dir string, info os.FileInfo) Entry {
	mode := info.Mode()
	return Entry{
		Name:      info.Name(),
		Dir:       dir,
		IsDir:     mode.IsDir(),
		IsFile:    mode.IsRegular(),
		IsSymlink: mode&os.ModeSymlink != 0,
	}
}

// Classify turns an entry into an item. A non-empty parentLabel produces a
// "parentLabel/name" display name.
func Classify(entry Entry, parentLabel string) Item {
	kind := KindUnknown
	switch {
	case entry.IsDir:
		kind = KindDirectory
	case entry.IsFile:
		kind = KindFile
	case entry.IsSymlink:
		kind = KindSymlink
	}
	name := entry.Name
	if parentLabel != "" {
		name = parentLabel + "/" + entry.Name
	}
	return Item{
		DisplayName: name,
		Path:        filepath.Join(entry.Dir, entry.Name),
		Kind:        kind,
	}
}
