// Package sqlite is the single-file storage backend (STORAGE_DRIVER=sqlite).
// It implements auth.UserRepository and todos.Repository over one SQLite database
// using the pure-Go modernc driver through sqlx.
package sqlite

import (
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/user/todoquest-go/auth"
)

//go:embed schema.sql
var schema string

// MemoryPath opens a private in-memory database, used by tests.
const MemoryPath = ":memory:"

// Store owns the SQLite handle shared by the user and todo repositories.
type Store struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if path != MemoryPath {
		path = filepath.Clean(path)
	}
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite serializes writers anyway; one connection also keeps :memory: a single database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Users returns the auth.UserRepository view of the store.
func (s *Store) Users() *UserRepository { return &UserRepository{db: s.db} }

// Todos returns the todos.Repository view of the store.
func (s *Store) Todos() *TodoRepository { return &TodoRepository{db: s.db} }

// toMillis normalizes timestamps into millisecond precision for storage.
func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis restores millisecond precision and keeps UTC normalization.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, auth.ErrStorageUnavailable, err)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
