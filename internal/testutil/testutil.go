// Package testutil provides shared test infrastructure for tests that need
// a migrated storage database.
//
// Usage in TestMain:
//
//	func TestMain(m *testing.M) {
//	    db := testutil.MustOpenDB(context.Background())
//	    defer db.Close()
//	    os.Exit(m.Run())
//	}
package testutil

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/wrenchworks-ai/shindan/internal/storage"
	"github.com/wrenchworks-ai/shindan/migrations"
)

// MustOpenDB opens an in-memory sqlite database with all migrations applied.
// Calls os.Exit(1) on failure (suitable for TestMain).
func MustOpenDB(ctx context.Context) *storage.DB {
	db, err := NewTestDB(ctx, TestLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "testutil: %v\n", err)
		os.Exit(1)
	}
	return db
}

// NewTestDB opens an in-memory sqlite database and runs all migrations.
func NewTestDB(ctx context.Context, logger *slog.Logger) (*storage.DB, error) {
	db, err := storage.New(ctx, ":memory:", logger)
	if err != nil {
		return nil, fmt.Errorf("create DB: %w", err)
	}
	if err := db.RunMigrations(ctx, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

// TestLogger returns a logger configured for test output (warns only).
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}
