// Command xplore is the entry point: it wires configuration, logging,
// persistent state, and the engine, then hands off to the command tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/xplorefs/xplore/internal/archive"
	"github.com/xplorefs/xplore/internal/cli"
	"github.com/xplorefs/xplore/internal/config"
	"github.com/xplorefs/xplore/internal/explorer"
	"github.com/xplorefs/xplore/internal/history"
	"github.com/xplorefs/xplore/internal/logging"
	"github.com/xplorefs/xplore/internal/preview"
	"github.com/xplorefs/xplore/internal/render"
	"github.com/xplorefs/xplore/internal/settings"
)

func main() {
	cfg := config.LoadOrDefault()

	log, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		log = logging.NewDefault()
	}
	defer log.Sync()

	app, cleanup := buildApp(cfg, log)
	defer cleanup()

	// SIGINT cancels a running scan or archive pass; mutating operations
	// take no context and run to completion.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, cli.ErrOperationFailed) {
			app.Renderer.Error(app.ErrOut, err)
		}
		os.Exit(1)
	}
}

// buildApp wires the engine and its collaborators. Missing persistent
// state degrades to warnings: the explorer works without history or
// saved preferences.
func buildApp(cfg *config.Config, log *logging.Logger) (*cli.App, func()) {
	cleanup := func() {}

	prefs := settings.Default()
	var manager *settings.Manager
	var recorder cli.Recorder = cli.NopRecorder{}

	stateDir, err := cfg.State.Resolve()
	if err != nil {
		log.Warn("state directory unavailable, history and preferences disabled", zap.Error(err))
	} else {
		manager = settings.NewManager(stateDir, log)
		if loaded, err := manager.Load(); err != nil {
			log.Warn("preferences unreadable, using defaults",
				zap.String("path", manager.Path()), zap.Error(err))
		} else {
			prefs = loaded
		}

		store, err := history.Open(stateDir, cfg.State.HistoryLimit, log)
		if err != nil {
			log.Warn("history store unavailable, recent tracking disabled", zap.Error(err))
		} else {
			recorder = store
			cleanup = func() { _ = store.Close() }
		}
	}

	opts := []explorer.Option{
		explorer.WithProgress(func(op, path string, affected int) {
			fmt.Fprintf(os.Stderr, "%s: %d items (%s)\n", op, affected, path)
		}, cfg.Engine.ProgressPerSecond),
	}
	if cfg.Engine.VerifyCopies {
		opts = append(opts, explorer.WithVerification())
	}

	session, err := explorer.NewSession(startDir(), log)
	if err != nil {
		log.Fatal("no usable working directory", zap.Error(err))
	}

	app := &cli.App{
		Log:      log,
		Engine:   explorer.New(log, opts...),
		Session:  session,
		Archiver: archive.New(log),
		Preview:  preview.New(log),
		Renderer: render.New(render.Lookup(prefs.Theme, log), false),
		Settings: prefs,
		Prefs:    manager,
		History:  recorder,
		Out:      os.Stdout,
		ErrOut:   os.Stderr,
	}
	return app, cleanup
}

// startDir returns the process working directory, falling back to the
// filesystem root when it has been deleted underneath us.
func startDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return string(os.PathSeparator)
	}
	return wd
}
