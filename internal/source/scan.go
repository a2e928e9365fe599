// Package source produces the rows bonsai displays: the entries of a single
// directory, scanned on demand and watched for changes so the table can
// re-collate while the user navigates it.
package source

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"
)

// Entry is one directory entry, keyed by name.
type Entry struct {
	Name    string
	Size    int64
	ModTime time.Time
	Dir     bool
	Mode    fs.FileMode
}

// Hidden reports whether the entry is a dotfile.
func (e Entry) Hidden() bool { return strings.HasPrefix(e.Name, ".") }

// Scan lists dir into entries. Entries whose metadata cannot be read (a
// race with deletion, a dangling symlink) are kept with zero metadata
// rather than failing the whole scan — the table should show what exists
// even while the directory churns.
func Scan(dir string, showHidden bool) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		e := Entry{Name: d.Name(), Dir: d.IsDir()}
		if !showHidden && e.Hidden() {
			continue
		}
		if info, err := d.Info(); err == nil {
			e.Size = info.Size()
			e.ModTime = info.ModTime()
			e.Mode = info.Mode()
		}
		entries = append(entries, e)
	}

	// Stable name order; the collator re-sorts anyway, but deterministic
	// input keeps scans comparable across refreshes.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}
