package explorer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFile(t *testing.T) {
	e := New(nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")

	require.NoError(t, e.CreateFile(path))

	meta, err := e.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, KindFile, meta.Kind)
	assert.Equal(t, int64(0), meta.Size)
}

func TestCreateFileNeverTruncates(t *testing.T) {
	e := New(nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	writeFile(t, path, "precious", 0o644)

	err := e.CreateFile(path)
	assert.ErrorIs(t, err, ErrDestinationExists)
	assert.Equal(t, "precious", readFile(t, path))
}

func TestCreateFileMissingParent(t *testing.T) {
	e := New(nil)

	err := e.CreateFile(filepath.Join(t.TempDir(), "missing", "notes.txt"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateDir(t *testing.T) {
	e := New(nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "sub")

	require.NoError(t, e.CreateDir(path, false))

	meta, err := e.Stat(path)
	require.NoError(t, err)
	assert.True(t, meta.IsDir())
	// The exact bits depend on the process umask; writability for the
	// owner is the part that must hold.
	assert.NotZero(t, meta.Mode.Perm()&0o700)
}

func TestCreateDirWithParents(t *testing.T) {
	e := New(nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "c")

	require.NoError(t, e.CreateDir(path, true))

	meta, err := e.Stat(path)
	require.NoError(t, err)
	assert.True(t, meta.IsDir())
}

func TestCreateDirMissingParent(t *testing.T) {
	e := New(nil)

	err := e.CreateDir(filepath.Join(t.TempDir(), "a", "b"), false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateDirExists(t *testing.T) {
	e := New(nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "sub")
	mkdir(t, path)

	err := e.CreateDir(path, false)
	assert.ErrorIs(t, err, ErrDestinationExists)

	// MkdirAll would swallow the conflict, the explicit check must not.
	err = e.CreateDir(path, true)
	assert.ErrorIs(t, err, ErrDestinationExists)
}

func TestRename(t *testing.T) {
	e := New(nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "old.txt")
	writeFile(t, path, "content", 0o644)

	require.NoError(t, e.Rename(path, "new.txt"))

	assert.False(t, exists(filepath.Join(dir, "old.txt")))
	assert.Equal(t, "content", readFile(t, filepath.Join(dir, "new.txt")))
}

func TestRenameDirectory(t *testing.T) {
	e := New(nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "old")
	mkdir(t, path)
	writeFile(t, filepath.Join(path, "f.txt"), "x", 0o644)

	require.NoError(t, e.Rename(path, "new"))

	assert.Equal(t, "x", readFile(t, filepath.Join(dir, "new", "f.txt")))
}

func TestRenameRejectsPathNames(t *testing.T) {
	e := New(nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	writeFile(t, path, "x", 0o644)

	tests := []string{"", ".", "..", "a/b", "../escape", "/abs"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			err := e.Rename(path, name)
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}
	assert.True(t, exists(path))
}

func TestRenameTargetExists(t *testing.T) {
	e := New(nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	writeFile(t, path, "keep", 0o644)
	writeFile(t, filepath.Join(dir, "taken.txt"), "other", 0o644)

	err := e.Rename(path, "taken.txt")
	assert.ErrorIs(t, err, ErrDestinationExists)
	assert.Equal(t, "keep", readFile(t, path))
	assert.Equal(t, "other", readFile(t, filepath.Join(dir, "taken.txt")))
}

func TestRenameMissingSource(t *testing.T) {
	e := New(nil)

	err := e.Rename(filepath.Join(t.TempDir(), "ghost"), "new")
	assert.ErrorIs(t, err, ErrNotFound)
}
