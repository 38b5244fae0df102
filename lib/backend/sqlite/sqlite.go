// Package sqlite implements backend.IBackend on a single SQLite table.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/ValentinKolb/jDB/lib/backend"
	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

type sqliteImpl struct {
	db     *sql.DB
	closed atomic.Bool
}

// NewSQLiteBackend creates or opens a SQLite database at the given path.
//
// The database is configured with:
//   - WAL mode so readers do not block the writer
//   - 5-second busy timeout for lock contention
//   - a single connection, SQLite only supports one writer at a time
func NewSQLiteBackend(path string) (backend.IBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		schemaSQL,
	} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
	}
	return &sqliteImpl{db: db}, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see backend.IBackend)
// --------------------------------------------------------------------------

func (s *sqliteImpl) Get(key string) ([]byte, bool, error) {
	if s.closed.Load() {
		return nil, false, backend.ErrClosed
	}
	var value []byte
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, true, nil
}

func (s *sqliteImpl) Set(key string, value []byte) error {
	if s.closed.Load() {
		return backend.ErrClosed
	}
	if value == nil {
		// a nil slice would be bound as NULL
		value = []byte{}
	}
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *sqliteImpl) Delete(key string) error {
	if s.closed.Load() {
		return backend.ErrClosed
	}
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

func (s *sqliteImpl) Keys() ([]string, error) {
	if s.closed.Load() {
		return nil, backend.ErrClosed
	}
	rows, err := s.db.Query("SELECT key FROM kv ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (s *sqliteImpl) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}
