package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLite is the default on-disk Store backend.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens or creates the cache database at the given path.
func OpenSQLite(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLite{db: db, now: time.Now}, nil
}

// Get returns the payload for key if present and unexpired. Expired
// rows are deleted on the way out.
func (s *SQLite) Get(key string) ([]byte, bool) {
	var payload []byte
	var expiresStr string
	err := s.db.QueryRow("SELECT payload, expires_at FROM cache WHERE key = ?", key).
		Scan(&payload, &expiresStr)
	if err != nil {
		return nil, false
	}

	expires, err := time.Parse(time.RFC3339Nano, expiresStr)
	if err != nil || s.now().After(expires) {
		_, _ = s.db.Exec("DELETE FROM cache WHERE key = ?", key)
		return nil, false
	}
	return payload, true
}

// Set upserts a payload with a fresh TTL.
func (s *SQLite) Set(key string, payload []byte, ttl time.Duration) error {
	expires := s.now().Add(ttl).UTC().Format(time.RFC3339Nano)
	_, err := s.db.Exec(`INSERT OR REPLACE INTO cache (key, payload, expires_at)
		VALUES (?, ?, ?)`, key, payload, expires)
	if err != nil {
		return fmt.Errorf("writing cache entry %s: %w", key, err)
	}
	return nil
}

// Invalidate removes one entry.
func (s *SQLite) Invalidate(key string) error {
	_, err := s.db.Exec("DELETE FROM cache WHERE key = ?", key)
	return err
}

// Clear removes every entry.
func (s *SQLite) Clear() error {
	_, err := s.db.Exec("DELETE FROM cache")
	return err
}

// Close closes the cache database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
