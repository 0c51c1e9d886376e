package listing

import (
	"os"
	"sort"
	"strings"
)

// Kind is the filesystem type of a directory entry, derived from metadata
// without following symlinks.
type Kind int

const (
	File Kind = iota
	Directory
	Symlink
	Unknown
)

// Entry is one child of a listed directory. Immutable once produced.
type Entry struct {
	Name string
	Kind Kind
}

// Read lists the immediate children of dir (depth exactly 1).
//
// Entries whose name starts with "." are dropped when showHidden is false.
// Individual entry read errors are skipped silently; if the directory itself
// cannot be opened the result is an empty listing, never an error. Entries
// are sorted directories-first, then ascending byte order by name.
func Read(dir string, showHidden bool) []Entry {
	entries, err := os.ReadDir(dir)
	if err != nil && len(entries) == 0 {
		return []Entry{}
	}

	items := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}

		mode := entry.Type()
		var kind Kind
		switch {
		case mode.IsDir():
			kind = Directory
		case mode&os.ModeSymlink != 0:
			kind = Symlink
		case mode.IsRegular():
			kind = File
		default:
			kind = Unknown
		}

		items = append(items, Entry{Name: name, Kind: kind})
	}

	sort.Slice(items, func(i, j int) bool {
		di := items[i].Kind == Directory
		dj := items[j].Kind == Directory
		if di != dj {
			return di
		}
		return items[i].Name < items[j].Name
	})

	return items
}
