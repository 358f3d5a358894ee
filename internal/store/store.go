package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Well-known keys in the local value table
const (
	KeyToken            = "token"
	KeyUser             = "user"
	KeySelectedChatUser = "selected_chat_user"
)

// Store is the durable client-side storage for one user's session: the
// bearer token, the serialized identity, the cart and the chat deep-link
// target. Writes are committed before the call returns; there is no
// cross-process invalidation.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the local store at path and brings its
// schema up to date
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	// Single writer; the app is not concurrent over the store.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping local store: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate local store: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// GetValue reads one keyed value. The second return reports whether the
// key was present.
func (s *Store) GetValue(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM local_values WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

// PutValue writes one keyed value, replacing any previous value
func (s *Store) PutValue(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO local_values (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// DeleteValue removes one keyed value; deleting an absent key is not an
// error
func (s *Store) DeleteValue(key string) error {
	if _, err := s.db.Exec("DELETE FROM local_values WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}
