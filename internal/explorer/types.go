package explorer

import (
	"io/fs"
	"strings"
	"time"
)

// Kind classifies a directory entry.
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
	KindSymlink   Kind = "symlink"
)

// kindOf derives the entry kind from an lstat-style mode.
func kindOf(mode fs.FileMode) Kind {
	switch {
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDirectory
	default:
		return KindFile
	}
}

// kindOfDirEntry derives the entry kind from a directory enumeration record.
func kindOfDirEntry(de fs.DirEntry) Kind {
	return kindOf(de.Type())
}

// EntryMetadata holds the per-entry attributes read from the store. Kind
// reflects the entry itself (a symlink reports symlink); size, permissions,
// ownership, and times follow the link target where one resolves.
type EntryMetadata struct {
	Kind       Kind        `json:"kind"`
	Size       int64       `json:"size"`
	Mode       fs.FileMode `json:"mode"`
	Owner      string      `json:"owner"`
	Group      string      `json:"group"`
	ModifiedAt time.Time   `json:"modified_at"`
}

// IsDir reports whether the entry is a directory.
func (m EntryMetadata) IsDir() bool { return m.Kind == KindDirectory }

// Executable reports whether the entry is a file with any execute bit set.
func (m EntryMetadata) Executable() bool {
	return m.Kind == KindFile && m.Mode&0o111 != 0
}

// Entry pairs a child name with its metadata during a listing.
type Entry struct {
	Name string        `json:"name"`
	Path string        `json:"path"`
	Meta EntryMetadata `json:"meta"`
}

// Hidden reports whether the entry name marks it hidden.
func (e Entry) Hidden() bool { return strings.HasPrefix(e.Name, ".") }

// SortKey selects the display ordering of a listing.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortBySize     SortKey = "size"
	SortByModified SortKey = "modified"
)

// ListOptions controls the display variant of a listing. The zero value
// lists visible entries by name.
type ListOptions struct {
	IncludeHidden bool
	DirsFirst     bool
	Key           SortKey
}

// Failure records one path that an operation could not process.
type Failure struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

// Reason returns the failure cause as text.
func (f Failure) Reason() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

// Outcome aggregates the result of one tree operation. It is produced fresh
// per call and owned by the caller.
type Outcome struct {
	Succeeded     bool      `json:"succeeded"`
	ItemsAffected int       `json:"items_affected"`
	Failures      []Failure `json:"failures,omitempty"`
}

// fail records a failure and marks the outcome unsuccessful.
func (o *Outcome) fail(path string, err error) {
	o.Succeeded = false
	o.Failures = append(o.Failures, Failure{Path: path, Err: err})
}

// rejected builds the outcome of a call refused before any mutation.
func rejected(path string, err error) Outcome {
	return Outcome{Failures: []Failure{{Path: path, Err: err}}}
}

// Match is one search hit: the absolute path and what it is.
type Match struct {
	Path string `json:"path"`
	Kind Kind   `json:"kind"`
}
