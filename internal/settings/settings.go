// Package settings persists user preferences (theme, listing defaults,
// recent-files limit) as a YAML file in the state directory. Runtime
// environment configuration is internal/config; this file holds only what
// the user changes from inside the tool.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xplorefs/xplore/internal/logging"
)

// Settings are the persisted preferences.
type Settings struct {
	Theme       string `json:"theme"`
	SortKey     string `json:"sort_key"`
	DirsFirst   bool   `json:"dirs_first"`
	ShowHidden  bool   `json:"show_hidden"`
	RecentLimit int    `json:"recent_limit"`
}

// Default returns the out-of-the-box preferences.
func Default() Settings {
	return Settings{
		Theme:       "default",
		SortKey:     "name",
		DirsFirst:   true,
		ShowHidden:  false,
		RecentLimit: 10,
	}
}

// Manager loads and saves the preference file.
type Manager struct {
	v    *viper.Viper
	path string
	log  *logging.Logger
}

// NewManager manages the preference file under dir.
func NewManager(dir string, log *logging.Logger) *Manager {
	if log == nil {
		log = logging.NewNop()
	}

	v := viper.New()
	path := filepath.Join(dir, "config.yaml")
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	def := Default()
	v.SetDefault("theme", def.Theme)
	v.SetDefault("sort_key", def.SortKey)
	v.SetDefault("dirs_first", def.DirsFirst)
	v.SetDefault("show_hidden", def.ShowHidden)
	v.SetDefault("recent_limit", def.RecentLimit)

	return &Manager{v: v, path: path, log: log}
}

// Path returns the preference file location.
func (m *Manager) Path() string { return m.path }

// Load reads the preference file, applying defaults when it does not exist
// yet and normalizing values that would break the listing.
func (m *Manager) Load() (Settings, error) {
	if err := m.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	s := Settings{
		Theme:       m.v.GetString("theme"),
		SortKey:     m.v.GetString("sort_key"),
		DirsFirst:   m.v.GetBool("dirs_first"),
		ShowHidden:  m.v.GetBool("show_hidden"),
		RecentLimit: m.v.GetInt("recent_limit"),
	}
	return m.normalize(s), nil
}

// Save writes the preferences, creating the state directory as needed.
func (m *Manager) Save(s Settings) error {
	s = m.normalize(s)
	m.v.Set("theme", s.Theme)
	m.v.Set("sort_key", s.SortKey)
	m.v.Set("dirs_first", s.DirsFirst)
	m.v.Set("show_hidden", s.ShowHidden)
	m.v.Set("recent_limit", s.RecentLimit)

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := m.v.WriteConfigAs(m.path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func (m *Manager) normalize(s Settings) Settings {
	switch s.SortKey {
	case "name", "size", "modified":
	default:
		m.log.Warn("unknown sort key, using name", zap.String("sort_key", s.SortKey))
		s.SortKey = "name"
	}
	if s.Theme == "" {
		s.Theme = "default"
	}
	if s.RecentLimit < 1 {
		s.RecentLimit = Default().RecentLimit
	}
	return s
}
