// Package sqlite provides a SQLite-backed implementation of storage.Gateway.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/budgetbuddy/internal/storage"
)

// Ensure Gateway implements storage.Gateway
var _ storage.Gateway = (*Gateway)(nil)

// Gateway implements storage.Gateway on a single kv table.
type Gateway struct {
	db    *sql.DB
	nowFn func() time.Time
}

// New opens (or creates) the database at dbPath.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*Gateway, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Gateway{db: db, nowFn: time.Now}, nil
}

// Close closes the database connection.
func (g *Gateway) Close() error {
	return g.db.Close()
}

// Get returns the value stored under key.
func (g *Gateway) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := g.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (g *Gateway) Set(ctx context.Context, key, value string) error {
	_, err := g.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, g.nowFn().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
