// Package storage persists named JSON documents in a local sqlite
// database. Each document is a single row: a fixed key and the
// JSON-serialized value. Reads of missing or malformed documents
// report absent so callers fall back to first-run defaults; write
// failures are logged and otherwise best-effort.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// Document keys used by the domain store.
const (
	KeyTasks    = "tasks"
	KeyProjects = "projects"
	KeySettings = "settings"
	KeyViewMode = "viewmode"
)

type DB struct {
	db  *sql.DB
	log *logrus.Logger
}

func Open(dbPath string, log *logrus.Logger) (*DB, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if log == nil {
		log = logrus.New()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	dsn := sqliteDSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &DB{db: db, log: log}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *DB) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *DB) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS documents (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
);`
	_, err := s.db.Exec(ddl)
	return err
}

// Load unmarshals the document stored under key into dest and reports
// whether a usable document was found. A missing row and malformed
// stored text both read as absent; the latter is logged.
func (s *DB) Load(key string, dest any) bool {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM documents WHERE key = ?;`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		s.log.WithField("key", key).WithError(err).Warn("document read failed")
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.log.WithField("key", key).WithError(err).Warn("document is malformed, using defaults")
		return false
	}
	return true
}

// Save serializes value and upserts it under key. Failures are logged;
// callers treat persistence as best-effort.
func (s *DB) Save(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.WithField("key", key).WithError(err).Error("document marshal failed")
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO documents (key, value, updated_at) VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`,
		key, string(raw))
	if err != nil {
		s.log.WithField("key", key).WithError(err).Error("document write failed")
	}
	return err
}

func (s *DB) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM documents WHERE key = ?;`, key)
	if err != nil {
		s.log.WithField("key", key).WithError(err).Error("document delete failed")
	}
	return err
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
