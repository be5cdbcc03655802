package explorer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	dir := t.TempDir()

	s, err := NewSession(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, dir, s.WorkingDir())
	assert.NotEmpty(t, s.ID())
}

func TestNewSessionUniqueIDs(t *testing.T) {
	dir := t.TempDir()

	a, err := NewSession(dir, nil)
	require.NoError(t, err)
	b, err := NewSession(dir, nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
}

func TestNewSessionRejectsFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	writeFile(t, path, "x", 0o644)

	_, err := NewSession(path, nil)
	assert.ErrorIs(t, err, ErrDirectoryUnreadable)
}

func TestNewSessionMissing(t *testing.T) {
	_, err := NewSession(filepath.Join(t.TempDir(), "ghost"), nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionResolve(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSession(dir, nil)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"relative", "sub", filepath.Join(dir, "sub")},
		{"dot", ".", dir},
		{"parent", "..", filepath.Dir(dir)},
		{"absolute", "/tmp", "/tmp"},
		{"absolute uncleaned", "/tmp/../tmp", "/tmp"},
		{"nested relative", "a/b/../c", filepath.Join(dir, "a", "c")},
		{"home", "~", home},
		{"under home", "~/docs", filepath.Join(home, "docs")},
		{"tilde prefix name", "~backup", filepath.Join(dir, "~backup")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Resolve(tt.raw))
		})
	}
}

func TestSessionChangeDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	mkdir(t, sub)

	s, err := NewSession(dir, nil)
	require.NoError(t, err)

	require.NoError(t, s.ChangeDir("sub"))
	assert.Equal(t, sub, s.WorkingDir())

	require.NoError(t, s.Up())
	assert.Equal(t, dir, s.WorkingDir())
}

func TestSessionChangeDirFailureKeepsState(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "f.txt"), "x", 0o644)

	s, err := NewSession(dir, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, s.ChangeDir("ghost"), ErrNotFound)
	assert.ErrorIs(t, s.ChangeDir("f.txt"), ErrDirectoryUnreadable)
	assert.Equal(t, dir, s.WorkingDir())
}
