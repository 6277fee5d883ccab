package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/swissmarley/cashier/internal/repository"
)

// setupDB opens an in-memory database with the full schema applied.
// MaxOpenConns is pinned to 1 because every sqlite :memory: connection
// is its own database.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := repository.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := repository.RunMigrations(db, "./migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func setupCatalog(t *testing.T) (*repository.Catalog, *sql.DB) {
	t.Helper()
	db := setupDB(t)
	catalog := repository.NewCatalog(db)
	if err := catalog.Seed(context.Background()); err != nil {
		t.Fatalf("Failed to seed catalog: %v", err)
	}
	return catalog, db
}
