package explorer

import (
	"path/filepath"
	"sort"
)

// Children enumerates every immediate child of a directory with metadata,
// hidden entries included, in deterministic order. Fails with
// ErrDirectoryUnreadable when the directory cannot be opened; that error is
// reported, never folded into an empty listing.
func (e *Engine) Children(path string) ([]Entry, error) {
	dirents, err := e.children(path)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirents))
	for _, de := range dirents {
		childPath := filepath.Join(path, de.Name())
		linfo, err := de.Info()
		if err != nil {
			// Entry vanished between enumeration and stat.
			continue
		}
		entries = append(entries, Entry{
			Name: de.Name(),
			Path: childPath,
			Meta: metadataFrom(childPath, linfo),
		})
	}
	return entries, nil
}

// List is the display variant of Children: it filters hidden entries unless
// asked otherwise and sorts by the requested key. Recursive operations never
// go through here.
func (e *Engine) List(path string, opts ListOptions) ([]Entry, error) {
	entries, err := e.Children(path)
	if err != nil {
		return nil, err
	}

	if !opts.IncludeHidden {
		visible := entries[:0]
		for _, entry := range entries {
			if !entry.Hidden() {
				visible = append(visible, entry)
			}
		}
		entries = visible
	}

	sortEntries(entries, opts)
	return entries, nil
}

// sortEntries orders a listing in place: directories first when requested,
// then by the sort key with the name as tiebreak.
func sortEntries(entries []Entry, opts ListOptions) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if opts.DirsFirst && a.Meta.IsDir() != b.Meta.IsDir() {
			return a.Meta.IsDir()
		}
		switch opts.Key {
		case SortBySize:
			if a.Meta.Size != b.Meta.Size {
				return a.Meta.Size < b.Meta.Size
			}
		case SortByModified:
			if !a.Meta.ModifiedAt.Equal(b.Meta.ModifiedAt) {
				return a.Meta.ModifiedAt.Before(b.Meta.ModifiedAt)
			}
		}
		return a.Name < b.Name
	})
}
