// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"splitpal/internal/money"
	"splitpal/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path. It creates the
// parent directories and runs migrations automatically.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// scanAmount parses a stored TEXT amount back into a money.Amount.
func scanAmount(raw string) (money.Amount, error) {
	amount, err := money.Parse(raw)
	if err != nil {
		return money.Amount{}, fmt.Errorf("corrupt amount %q in database: %w", raw, err)
	}
	return amount, nil
}

// placeholders returns "?, ?, ..." with n markers for IN clauses.
func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	marks := make([]byte, 0, 3*n)
	for i := 0; i < n; i++ {
		if i > 0 {
			marks = append(marks, ", "...)
		}
		marks = append(marks, '?')
	}
	return string(marks)
}

// stringArgs converts ids into driver args for IN clauses.
func stringArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
