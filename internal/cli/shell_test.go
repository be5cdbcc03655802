package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchChangesDirectory(t *testing.T) {
	app, _ := testApp(t)
	wd := app.Session.WorkingDir()
	mkdir(t, filepath.Join(wd, "docs"))

	require.NoError(t, app.Dispatch(context.Background(), []string{"cd", "docs"}))
	assert.Equal(t, filepath.Join(wd, "docs"), app.Session.WorkingDir())

	require.NoError(t, app.Dispatch(context.Background(), []string{"up"}))
	assert.Equal(t, wd, app.Session.WorkingDir())
}

func TestDispatchPwd(t *testing.T) {
	app, out := testApp(t)

	require.NoError(t, app.Dispatch(context.Background(), []string{"pwd"}))
	assert.Equal(t, app.Session.WorkingDir()+"\n", out.String())
}

func TestDispatchRunsCommands(t *testing.T) {
	app, out := testApp(t)
	writeFile(t, filepath.Join(app.Session.WorkingDir(), "a.txt"), "alpha")

	require.NoError(t, app.Dispatch(context.Background(), []string{"ls"}))
	assert.Contains(t, out.String(), "a.txt")
}

func TestDispatchFlagStateDoesNotLeak(t *testing.T) {
	app, out := testApp(t)
	wd := app.Session.WorkingDir()
	writeFile(t, filepath.Join(wd, ".hidden"), "")
	writeFile(t, filepath.Join(wd, "plain.txt"), "")

	ctx := context.Background()
	require.NoError(t, app.Dispatch(ctx, []string{"ls", "-a"}))
	assert.Contains(t, out.String(), ".hidden")

	out.Reset()
	require.NoError(t, app.Dispatch(ctx, []string{"ls"}))
	assert.NotContains(t, out.String(), ".hidden")
	assert.Contains(t, out.String(), "plain.txt")
}

func TestDispatchRejectsNestedShell(t *testing.T) {
	app, _ := testApp(t)

	err := app.Dispatch(context.Background(), []string{"shell"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in a shell")
}

func TestDispatchUnknownCommand(t *testing.T) {
	app, _ := testApp(t)

	err := app.Dispatch(context.Background(), []string{"teleport"})
	require.Error(t, err)
}

func TestRunShellScript(t *testing.T) {
	app, out := testApp(t)
	writeFile(t, filepath.Join(app.Session.WorkingDir(), "a.txt"), "alpha")

	script := strings.NewReader("pwd\nls\nexit\n")
	require.NoError(t, RunShell(context.Background(), app, script))

	assert.Contains(t, out.String(), app.Session.WorkingDir())
	assert.Contains(t, out.String(), "a.txt")
}

func TestRunShellStopsAtEOF(t *testing.T) {
	app, _ := testApp(t)

	require.NoError(t, RunShell(context.Background(), app, strings.NewReader("pwd\n")))
	assert.Nil(t, app.Confirm)
}

func TestRunShellConfirmsRecursiveDelete(t *testing.T) {
	app, out := testApp(t)
	wd := app.Session.WorkingDir()
	mkdir(t, filepath.Join(wd, "junk"))
	writeFile(t, filepath.Join(wd, "junk", "a.txt"), "x")

	script := strings.NewReader("rm -r junk\ny\nexit\n")
	require.NoError(t, RunShell(context.Background(), app, script))

	assert.Contains(t, out.String(), "[y/N]")
	assert.NoDirExists(t, filepath.Join(wd, "junk"))
}

func TestRunShellDeclinedDeleteKeepsTree(t *testing.T) {
	app, _ := testApp(t)
	errOut := &bytes.Buffer{}
	app.ErrOut = errOut
	wd := app.Session.WorkingDir()
	mkdir(t, filepath.Join(wd, "keep"))
	writeFile(t, filepath.Join(wd, "keep", "a.txt"), "x")

	script := strings.NewReader("rm -r keep\nn\nexit\n")
	require.NoError(t, RunShell(context.Background(), app, script))

	assert.DirExists(t, filepath.Join(wd, "keep"))
	assert.Contains(t, errOut.String(), "operation failed")
}

func TestShortPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	assert.Equal(t, "~", shortPath("/home/tester"))
	assert.Equal(t, "~/docs", shortPath("/home/tester/docs"))
	assert.Equal(t, "/etc", shortPath("/etc"))
	assert.Equal(t, "/home/testerx", shortPath("/home/testerx"))
}

func TestShortPathNoHome(t *testing.T) {
	t.Setenv("HOME", "")
	if _, err := os.UserHomeDir(); err == nil {
		t.Skip("platform resolves a home directory without HOME")
	}
	assert.Equal(t, "/srv/data", shortPath("/srv/data"))
}
