package explorer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xplorefs/xplore/internal/logging"
)

// Session holds the tracked working directory that relative arguments
// resolve against. It replaces ambient process-global state: callers thread
// an explicit Session value, and only ChangeDir mutates it.
type Session struct {
	id  string
	wd  string
	log *logging.Logger
}

// NewSession starts a session rooted at start, which must be an existing
// directory.
func NewSession(start string, log *logging.Logger) (*Session, error) {
	if log == nil {
		log = logging.NewNop()
	}

	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, err
	}
	if err := requireDir(abs); err != nil {
		return nil, err
	}

	s := &Session{id: uuid.New().String(), wd: abs, log: log}
	s.log.Debug("session started", zap.String("session_id", s.id), zap.String("wd", abs))
	return s, nil
}

// ID returns the session identifier used for log correlation.
func (s *Session) ID() string { return s.id }

// WorkingDir returns the current working directory.
func (s *Session) WorkingDir() string { return s.wd }

// ChangeDir moves the session to another directory.
func (s *Session) ChangeDir(path string) error {
	target := s.Resolve(path)
	if err := requireDir(target); err != nil {
		return err
	}
	s.wd = target
	s.log.Debug("working directory changed",
		zap.String("session_id", s.id), zap.String("wd", target))
	return nil
}

// Up moves the session to the parent directory.
func (s *Session) Up() error { return s.ChangeDir("..") }

// Resolve turns a raw argument into a cleaned absolute path: absolute input
// is cleaned as-is, "~" expands to the user home, and anything else joins
// the working directory.
func (s *Session) Resolve(raw string) string {
	path := expandHome(raw)
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.wd, path)
	}
	return filepath.Clean(path)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return classify(err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: not a directory: %s", ErrDirectoryUnreadable, path)
	}
	return nil
}
