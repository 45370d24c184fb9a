package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version    TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Migrate applies every embedded migration that has not run yet, in file name
// order, each in its own transaction. It returns the versions it applied.
func (db *DB) Migrate(ctx context.Context) ([]string, error) {
	if _, err := db.conn.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	var applied []string
	for _, name := range names {
		version := strings.TrimSuffix(strings.TrimPrefix(name, "migrations/"), ".sql")

		ok, err := db.apply(ctx, name, version)
		if err != nil {
			return applied, err
		}
		if ok {
			applied = append(applied, version)
		}
	}

	return applied, nil
}

func (db *DB) apply(ctx context.Context, name, version string) (bool, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin migration %s: %w", version, err)
	}
	defer tx.Rollback()

	// serialise concurrent migrators
	if _, err := tx.ExecContext(ctx, `LOCK TABLE schema_migrations IN EXCLUSIVE MODE`); err != nil {
		return false, fmt.Errorf("failed to lock schema_migrations: %w", err)
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", version, err)
	}
	if exists {
		return false, nil
	}

	body, err := migrationFiles.ReadFile(name)
	if err != nil {
		return false, fmt.Errorf("failed to read migration %s: %w", version, err)
	}

	if _, err := tx.ExecContext(ctx, string(body)); err != nil {
		return false, fmt.Errorf("failed to apply migration %s: %w", version, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		return false, fmt.Errorf("failed to record migration %s: %w", version, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit migration %s: %w", version, err)
	}
	return true, nil
}
