// Package config provides environment-driven configuration for xplore.
//
// Configuration is loaded from XPLORE_-prefixed environment variables with
// sensible defaults, so a bare invocation needs no setup.
//
// Configuration Sections:
//   - Logging: log level and output format
//   - State: where the history database and preference file live
//   - Engine: copy verification and progress reporting rate
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	dir, _ := cfg.State.Resolve()
//
// Environment Variables:
//   - XPLORE_LOG_LEVEL, XPLORE_LOG_DEV
//   - XPLORE_STATE_DIR, XPLORE_HISTORY_LIMIT
//   - XPLORE_VERIFY_COPIES, XPLORE_PROGRESS_RPS
package config
