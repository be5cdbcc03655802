// Package history persists the most recently touched paths in a small
// SQLite database so `recent` can replay them across sessions.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/xplorefs/xplore/internal/logging"
)

// Record is one remembered path.
type Record struct {
	Path     string    `json:"path"`
	Kind     string    `json:"kind"`
	LastSeen time.Time `json:"last_seen"`
}

// Store is the recent-paths database. Touch keeps at most the configured
// number of records, evicting the oldest.
type Store struct {
	db    *sql.DB
	limit int
	log   *logging.Logger
}

// Open creates or opens the history database under dataDir.
func Open(dataDir string, limit int, log *logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.NewNop()
	}
	if limit < 1 {
		limit = 10
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, limit: limit, log: log}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history: %w", err)
	}
	return s, nil
}

func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS recent (
		path TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		last_seen TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_recent_last_seen ON recent(last_seen);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Touch records that path was just operated on, then trims to the limit.
func (s *Store) Touch(path, kind string) error {
	query := `
	INSERT OR REPLACE INTO recent (path, kind, last_seen)
	VALUES (?, ?, ?)
	`
	if _, err := s.db.Exec(query, path, kind, time.Now().UTC()); err != nil {
		return fmt.Errorf("record path: %w", err)
	}
	if err := s.trim(); err != nil {
		s.log.Warn("history trim failed", zap.Error(err))
	}
	return nil
}

// Recent returns up to limit records, newest first. A non-positive limit
// falls back to the store's configured limit.
func (s *Store) Recent(limit int) ([]Record, error) {
	if limit < 1 {
		limit = s.limit
	}

	query := `
	SELECT path, kind, last_seen
	FROM recent ORDER BY last_seen DESC LIMIT ?
	`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Path, &r.Kind, &r.LastSeen); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Forget drops one path from the history.
func (s *Store) Forget(path string) error {
	_, err := s.db.Exec("DELETE FROM recent WHERE path = ?", path)
	return err
}

// Clear drops the whole history.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM recent")
	return err
}

// trim evicts everything older than the newest limit records.
func (s *Store) trim() error {
	query := `
	DELETE FROM recent WHERE path NOT IN (
		SELECT path FROM recent ORDER BY last_seen DESC LIMIT ?
	)
	`
	_, err := s.db.Exec(query, s.limit)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
