package explorer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeSize(t *testing.T) {
	e := New(nil)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "1234", 0o644)
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "56", 0o644)
	writeFile(t, filepath.Join(root, "sub", ".hidden"), "789", 0o644)

	bytes, files, err := e.TreeSize(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, int64(9), bytes)
	assert.Equal(t, 3, files)
}

func TestTreeSizeSingleFile(t *testing.T) {
	e := New(nil)
	path := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, path, "1234", 0o644)

	bytes, files, err := e.TreeSize(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, int64(4), bytes)
	assert.Equal(t, 1, files)
}

func TestTreeSizeIgnoresSymlinks(t *testing.T) {
	e := New(nil)
	root := t.TempDir()
	target := filepath.Join(root, "real")
	writeFile(t, filepath.Join(target, "big.txt"), "0123456789", 0o644)
	require.NoError(t, os.Symlink(target, filepath.Join(root, "alias")))

	bytes, files, err := e.TreeSize(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, int64(10), bytes)
	assert.Equal(t, 1, files)
}

func TestTreeSizeMissing(t *testing.T) {
	e := New(nil)

	_, _, err := e.TreeSize(context.Background(), filepath.Join(t.TempDir(), "ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTreeSizeCancelled(t *testing.T) {
	e := New(nil)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "x", 0o644)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := e.TreeSize(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTreeLines(t *testing.T) {
	e := New(nil)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "", 0o644)
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "", 0o644)
	writeFile(t, filepath.Join(root, "sub", "c.txt"), "", 0o644)
	writeFile(t, filepath.Join(root, ".hidden"), "", 0o644)

	lines, err := e.TreeLines(context.Background(), root, 0)
	require.NoError(t, err)

	want := []string{
		filepath.Base(root),
		"├── a.txt",
		"└── sub",
		"    ├── b.txt",
		"    └── c.txt",
	}
	assert.Equal(t, want, lines)
}

func TestTreeLinesMidPrefix(t *testing.T) {
	e := New(nil)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "first", "inner.txt"), "", 0o644)
	writeFile(t, filepath.Join(root, "second.txt"), "", 0o644)

	lines, err := e.TreeLines(context.Background(), root, 0)
	require.NoError(t, err)

	// A non-final directory carries the vertical continuation bar.
	want := []string{
		filepath.Base(root),
		"├── first",
		"│   └── inner.txt",
		"└── second.txt",
	}
	assert.Equal(t, want, lines)
}

func TestTreeLinesDepthLimit(t *testing.T) {
	e := New(nil)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sub", "deep", "f.txt"), "", 0o644)

	lines, err := e.TreeLines(context.Background(), root, 2)
	require.NoError(t, err)

	want := []string{
		filepath.Base(root),
		"└── sub",
		"    └── deep",
	}
	assert.Equal(t, want, lines)
}

func TestTreeLinesUnreadableBranch(t *testing.T) {
	skipIfRoot(t)
	e := New(nil)
	root := t.TempDir()
	denied := filepath.Join(root, "denied")
	mkdir(t, denied)
	denyAccess(t, denied)

	lines, err := e.TreeLines(context.Background(), root, 0)
	require.NoError(t, err)

	want := []string{
		filepath.Base(root),
		"└── denied",
		"    └── (unreadable)",
	}
	assert.Equal(t, want, lines)
}

func TestTreeLinesNotADirectory(t *testing.T) {
	e := New(nil)
	path := filepath.Join(t.TempDir(), "f.txt")
	writeFile(t, path, "x", 0o644)

	_, err := e.TreeLines(context.Background(), path, 0)
	assert.ErrorIs(t, err, ErrDirectoryUnreadable)
}

func TestGlob(t *testing.T) {
	e := New(nil)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"), "", 0o644)
	writeFile(t, filepath.Join(root, "sub", "util.go"), "", 0o644)
	writeFile(t, filepath.Join(root, "sub", "notes.txt"), "", 0o644)

	matches, err := e.Glob(context.Background(), root, "**/*.go")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "main.go"),
		filepath.Join(root, "sub", "util.go"),
	}, matches)
}

func TestGlobNoMatches(t *testing.T) {
	e := New(nil)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "notes.txt"), "", 0o644)

	matches, err := e.Glob(context.Background(), root, "*.go")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestGlobBadPattern(t *testing.T) {
	e := New(nil)

	_, err := e.Glob(context.Background(), t.TempDir(), "[")
	assert.Error(t, err)
}

func TestGlobMissingRoot(t *testing.T) {
	e := New(nil)

	_, err := e.Glob(context.Background(), filepath.Join(t.TempDir(), "ghost"), "*")
	assert.ErrorIs(t, err, ErrNotFound)
}
