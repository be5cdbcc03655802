package explorer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveFile(t *testing.T) {
	e := New(nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	writeFile(t, path, "x", 0o644)

	out := e.Remove(path, false, false)

	assert.True(t, out.Succeeded)
	assert.Equal(t, 1, out.ItemsAffected)
	assert.False(t, exists(path))
}

func TestRemoveSymlinkLeavesTarget(t *testing.T) {
	e := New(nil)
	dir := t.TempDir()
	target := filepath.Join(dir, "kept")
	mkdir(t, target)
	writeFile(t, filepath.Join(target, "data.txt"), "x", 0o644)
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	out := e.Remove(link, false, false)

	assert.True(t, out.Succeeded)
	assert.False(t, exists(link))
	assert.True(t, exists(filepath.Join(target, "data.txt")), "target must survive")
}

func TestRemoveEmptyDirectoryNoConfirmation(t *testing.T) {
	e := New(nil)
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	mkdir(t, empty)

	out := e.Remove(empty, false, false)

	assert.True(t, out.Succeeded)
	assert.Equal(t, 1, out.ItemsAffected)
	assert.False(t, exists(empty))
}

func TestRemoveNonEmptyRequiresConfirmation(t *testing.T) {
	e := New(nil)

	tests := []struct {
		name           string
		allowRecursive bool
		confirmed      bool
	}{
		{"neither", false, false},
		{"recursive without confirmation", true, false},
		{"confirmation without recursive", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			root := filepath.Join(dir, "tree")
			inner := filepath.Join(root, "sub", "f.txt")
			writeFile(t, inner, "keep", 0o644)

			out := e.Remove(root, tt.allowRecursive, tt.confirmed)

			assert.False(t, out.Succeeded)
			assert.Zero(t, out.ItemsAffected)
			require.Len(t, out.Failures, 1)
			assert.ErrorIs(t, out.Failures[0].Err, ErrConfirmationRequired)
			assert.Equal(t, "keep", readFile(t, inner), "nothing may be mutated")
		})
	}
}

func TestRemoveRecursive(t *testing.T) {
	e := New(nil)
	dir := t.TempDir()
	root := filepath.Join(dir, "tree")
	writeFile(t, filepath.Join(root, "a.txt"), "a", 0o644)
	writeFile(t, filepath.Join(root, ".hidden"), "h", 0o644)
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "b", 0o644)

	out := e.Remove(root, true, true)

	assert.True(t, out.Succeeded)
	assert.Empty(t, out.Failures)
	// three files, sub, root
	assert.Equal(t, 5, out.ItemsAffected)
	assert.False(t, exists(root))
}

func TestRemovePartialFailureAbortsSiblings(t *testing.T) {
	skipIfRoot(t)
	e := New(nil)
	dir := t.TempDir()
	root := filepath.Join(dir, "tree")
	lockedFile := filepath.Join(root, "a-locked", "pinned.txt")
	writeFile(t, lockedFile, "x", 0o644)
	after := filepath.Join(root, "z-after.txt")
	writeFile(t, after, "x", 0o644)
	restrictWrites(t, filepath.Join(root, "a-locked"))

	out := e.Remove(root, true, true)

	assert.False(t, out.Succeeded)
	require.GreaterOrEqual(t, len(out.Failures), 2)

	// The underlying cause comes first, in walk order.
	assert.Equal(t, lockedFile, out.Failures[0].Path)
	assert.ErrorIs(t, out.Failures[0].Err, ErrPermissionDenied)

	// The outcome ends with the partial-delete marker for the root.
	last := out.Failures[len(out.Failures)-1]
	assert.Equal(t, root, last.Path)
	assert.ErrorIs(t, last.Err, ErrPartialDelete)

	// Remaining siblings at that level were aborted, directory left in place.
	assert.True(t, exists(after), "siblings after the failure must not be deleted")
	assert.True(t, exists(root))
}

func TestRemoveMissing(t *testing.T) {
	e := New(nil)

	out := e.Remove(filepath.Join(t.TempDir(), "ghost"), true, true)

	assert.False(t, out.Succeeded)
	require.Len(t, out.Failures, 1)
	assert.ErrorIs(t, out.Failures[0].Err, ErrNotFound)
}
