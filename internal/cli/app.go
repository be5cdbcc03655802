// Package cli wires the engine and its collaborators into the xplore
// command set: one-shot commands for scripting and an interactive shell
// sharing the same actions.
package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/xplorefs/xplore/internal/archive"
	"github.com/xplorefs/xplore/internal/explorer"
	"github.com/xplorefs/xplore/internal/history"
	"github.com/xplorefs/xplore/internal/logging"
	"github.com/xplorefs/xplore/internal/preview"
	"github.com/xplorefs/xplore/internal/render"
	"github.com/xplorefs/xplore/internal/settings"
)

// ErrOperationFailed marks a rendered, partially or fully failed outcome.
// The details are already on screen; the caller only maps it to the exit
// code.
var ErrOperationFailed = errors.New("operation failed")

// Recorder is the slice of the history store the commands need.
type Recorder interface {
	Touch(path, kind string) error
	Recent(limit int) ([]history.Record, error)
	Forget(path string) error
	Clear() error
}

// NopRecorder is the degraded-mode recorder used when the history store
// cannot be opened: operations proceed, nothing is remembered.
type NopRecorder struct{}

func (NopRecorder) Touch(string, string) error            { return nil }
func (NopRecorder) Recent(int) ([]history.Record, error)  { return nil, nil }
func (NopRecorder) Forget(string) error                   { return nil }
func (NopRecorder) Clear() error                          { return nil }

// App bundles the wired dependencies every command works against.
type App struct {
	Log      *logging.Logger
	Engine   *explorer.Engine
	Session  *explorer.Session
	Archiver *archive.Archiver
	Preview  *preview.Previewer
	Renderer *render.Renderer
	Settings settings.Settings
	Prefs    *settings.Manager
	History  Recorder

	// JSONOut mirrors the --json flag so renderer rebuilds keep the mode.
	JSONOut bool

	// Confirm asks the user to approve a recursive deletion. The shell
	// installs a prompt; one-shot runs leave it nil and rely on --yes.
	Confirm func(prompt string) bool

	Out    io.Writer
	ErrOut io.Writer
}

// normalize fills the fields tests commonly leave zero.
func (a *App) normalize() {
	if a.Log == nil {
		a.Log = logging.NewNop()
	}
	if a.Out == nil {
		a.Out = os.Stdout
	}
	if a.ErrOut == nil {
		a.ErrOut = os.Stderr
	}
	if a.History == nil {
		a.History = NopRecorder{}
	}
	if a.Settings == (settings.Settings{}) {
		a.Settings = settings.Default()
	}
	if a.Renderer == nil {
		a.Renderer = render.New(render.Lookup(a.Settings.Theme, a.Log), false)
	}
}

// resolve turns a command argument into an absolute path via the session.
func (a *App) resolve(raw string) string {
	return a.Session.Resolve(raw)
}

// record remembers a touched path. History failure never blocks an
// operation.
func (a *App) record(path string, kind explorer.Kind) {
	if err := a.History.Touch(path, string(kind)); err != nil {
		a.Log.Warn("history record failed", zap.String("path", path), zap.Error(err))
	}
}

// recordByStat remembers a path whose kind the caller does not know.
func (a *App) recordByStat(path string) {
	kind := explorer.KindFile
	if meta, err := a.Engine.Stat(path); err == nil {
		kind = meta.Kind
	}
	a.record(path, kind)
}

// intoDir resolves copy destinations the way mv does: a destination that is
// an existing directory receives the source under its base name.
func intoDir(src, dst string) string {
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		return filepath.Join(dst, filepath.Base(src))
	}
	return dst
}

// outcomeErr reduces rendered outcomes to the exit-code error.
func outcomeErr(failed bool) error {
	if failed {
		return ErrOperationFailed
	}
	return nil
}
