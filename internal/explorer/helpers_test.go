package explorer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile creates a file with content, making parent directories as
// needed.
func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	// WriteFile is umask-filtered; fixtures need the exact bits.
	require.NoError(t, os.Chmod(path, perm))
}

// mkdir creates a directory tree.
func mkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
}

// denyAccess chmods path to 0 and restores it on cleanup so TempDir can be
// removed. Tests using it must call skipIfRoot first.
func denyAccess(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.Chmod(path, 0))
	t.Cleanup(func() { _ = os.Chmod(path, 0o755) })
}

// restrictWrites drops the write bit, keeping read and traverse.
func restrictWrites(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.Chmod(path, 0o555))
	t.Cleanup(func() { _ = os.Chmod(path, 0o755) })
}

// skipIfRoot skips permission-denial tests under euid 0, where the kernel
// ignores mode bits.
func skipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
}

// readFile returns file content as a string.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// exists reports whether a path is present (without following symlinks).
func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
