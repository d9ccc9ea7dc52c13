package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrations is a list of SQLite statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: index the newest-first listing order.
	`CREATE INDEX IF NOT EXISTS idx_products_created ON products(created_at DESC)`,
}

// postgresMigrations is the PostgreSQL counterpart of migrations.
var postgresMigrations = []string{
	`CREATE INDEX IF NOT EXISTS idx_products_created ON products (created_at DESC)`,
}

// Migrate runs the SQLite schema and migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}

// MigratePostgres runs the PostgreSQL schema and migrations.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	if err := EnsurePostgresSchema(ctx, pool); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for i, m := range postgresMigrations {
		if _, err := pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
