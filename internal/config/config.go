package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix, e.g. XPLORE_LOG_LEVEL.
const Prefix = "xplore"

// Config holds all application configuration.
type Config struct {
	Logging LogConfig
	State   StateConfig
	Engine  EngineConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"warn"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// StateConfig locates persistent state (history database, preference file).
type StateConfig struct {
	Dir          string `envconfig:"STATE_DIR" default:""`
	HistoryLimit int    `envconfig:"HISTORY_LIMIT" default:"10"`
}

// EngineConfig tunes tree-operation behavior.
type EngineConfig struct {
	VerifyCopies      bool `envconfig:"VERIFY_COPIES" default:"false"`
	ProgressPerSecond int  `envconfig:"PROGRESS_RPS" default:"4"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LogConfig{
			Level:       "warn",
			Development: false,
		},
		State: StateConfig{
			Dir:          "",
			HistoryLimit: 10,
		},
		Engine: EngineConfig{
			VerifyCopies:      false,
			ProgressPerSecond: 4,
		},
	}
}

// Validate rejects configurations the application cannot run with.
func (c *Config) Validate() error {
	if c.State.HistoryLimit < 1 {
		return fmt.Errorf("history limit must be positive, got %d", c.State.HistoryLimit)
	}
	if c.Engine.ProgressPerSecond < 1 {
		return fmt.Errorf("progress rate must be positive, got %d", c.Engine.ProgressPerSecond)
	}
	return nil
}

// Resolve returns the state directory, defaulting to the per-user config
// directory when unset. The directory is not created here.
func (s StateConfig) Resolve() (string, error) {
	if s.Dir != "" {
		return s.Dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("no state directory available: %w", err)
	}
	return filepath.Join(base, "xplore"), nil
}
