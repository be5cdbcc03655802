package explorer

import (
	"io/fs"
	"os"

	"golang.org/x/time/rate"

	"github.com/xplorefs/xplore/internal/logging"
)

// Default modes for entries the engine creates itself. Copied entries keep
// their source permissions instead.
const (
	DefaultFileMode fs.FileMode = 0o644
	DefaultDirMode  fs.FileMode = 0o755
)

// ProgressFunc receives throttled progress updates during long recursive
// operations. op is the operation name, path the entry just processed, and
// affected the running count.
type ProgressFunc func(op, path string, affected int)

// Engine performs tree operations on the local filesystem. All mutating
// operations run to completion and report partial failure through an
// Outcome; none of them retains state between calls.
type Engine struct {
	log      *logging.Logger
	verify   bool
	progress ProgressFunc
	limiter  *rate.Limiter
}

// Option configures an Engine.
type Option func(*Engine)

// WithVerification makes every file copy re-read both sides and compare
// digests before counting the copy as done.
func WithVerification() Option {
	return func(e *Engine) { e.verify = true }
}

// WithProgress installs a progress callback invoked at most perSecond times
// per second during recursive operations.
func WithProgress(fn ProgressFunc, perSecond int) Option {
	return func(e *Engine) {
		if fn == nil || perSecond < 1 {
			return
		}
		e.progress = fn
		e.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// New creates an engine. A nil logger is replaced with a no-op logger.
func New(log *logging.Logger, opts ...Option) *Engine {
	if log == nil {
		log = logging.NewNop()
	}
	e := &Engine{log: log}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// report emits a throttled progress update.
func (e *Engine) report(op, path string, affected int) {
	if e.progress == nil || !e.limiter.Allow() {
		return
	}
	e.progress(op, path, affected)
}

// children is the enumeration primitive shared by the lister and every
// recursive operation: all entries, hidden included, in deterministic
// (lexicographic) order. Display filtering never happens here.
func (e *Engine) children(path string) ([]fs.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, unreadable(err)
	}
	return entries, nil
}
