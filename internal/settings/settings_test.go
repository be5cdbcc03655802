package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "nope"), nil)

	s, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, nil)

	want := Settings{
		Theme:       "dark",
		SortKey:     "size",
		DirsFirst:   false,
		ShowHidden:  true,
		RecentLimit: 25,
	}
	require.NoError(t, m.Save(want))

	got, err := NewManager(dir, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveCreatesStateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deep", "state")
	m := NewManager(dir, nil)

	require.NoError(t, m.Save(Default()))
	assert.FileExists(t, m.Path())
}

func TestLoadHandwrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := "theme: light\nshow_hidden: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	s, err := NewManager(dir, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, "light", s.Theme)
	assert.True(t, s.ShowHidden)
	// Unset keys keep their defaults.
	assert.Equal(t, "name", s.SortKey)
	assert.Equal(t, 10, s.RecentLimit)
}

func TestLoadNormalizesBadValues(t *testing.T) {
	dir := t.TempDir()
	content := "sort_key: bogus\nrecent_limit: -4\ntheme: \"\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	s, err := NewManager(dir, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, "name", s.SortKey)
	assert.Equal(t, 10, s.RecentLimit)
	assert.Equal(t, "default", s.Theme)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(":\n\t-"), 0o644))

	_, err := NewManager(dir, nil).Load()
	assert.Error(t, err)
}
