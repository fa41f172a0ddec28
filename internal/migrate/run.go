package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const createVersionTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// lockKey is the pg_advisory_xact_lock key shared by every instance that
// migrates this database.
const lockKey int64 = 0x63616d7061696e

const (
	lockQuery    = `SELECT pg_advisory_xact_lock($1)`
	appliedQuery = `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`
	recordQuery  = `INSERT INTO schema_migrations (version) VALUES ($1)`
)

// Versions lists the embedded migration versions in apply order.
func Versions() ([]string, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			out = append(out, strings.TrimSuffix(e.Name(), ".sql"))
		}
	}
	sort.Strings(out)
	return out, nil
}

// Run applies every embedded migration that is not yet recorded in
// schema_migrations. Each file runs in its own transaction under an advisory
// lock, so instances starting together apply each version once.
func Run(ctx context.Context, db *sql.DB) error {
	pending, err := Pending(ctx, db)
	if err != nil {
		return err
	}
	logger := slog.Default().With("component", "migrations")
	for _, version := range pending {
		applied, err := apply(ctx, db, version)
		if err != nil {
			return err
		}
		if applied {
			logger.InfoContext(ctx, "applied migration", "version", version)
		} else {
			logger.InfoContext(ctx, "migration already applied by another instance", "version", version)
		}
	}
	return nil
}

// Pending returns the versions that Run would apply.
func Pending(ctx context.Context, db *sql.DB) ([]string, error) {
	if err := withLock(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, createVersionTable); err != nil {
			return fmt.Errorf("create schema_migrations table: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	versions, err := Versions()
	if err != nil {
		return nil, err
	}

	applied := make(map[string]bool, len(versions))
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan migration version: %w", err)
		}
		applied[v] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}

	var out []string
	for _, v := range versions {
		if !applied[v] {
			out = append(out, v)
		}
	}
	return out, nil
}

// apply runs one migration file. It reports false when another instance
// recorded the version while this one waited for the lock.
func apply(ctx context.Context, db *sql.DB, version string) (bool, error) {
	body, err := migrationsFS.ReadFile("migrations/" + version + ".sql")
	if err != nil {
		return false, fmt.Errorf("read migration %s: %w", version, err)
	}

	applied := false
	err = withLock(ctx, db, func(tx *sql.Tx) error {
		var done bool
		if err := tx.QueryRowContext(ctx, appliedQuery, version).Scan(&done); err != nil {
			return fmt.Errorf("check migration %s: %w", version, err)
		}
		if done {
			return nil
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			return fmt.Errorf("exec migration %s: %w", version, err)
		}
		if _, err := tx.ExecContext(ctx, recordQuery, version); err != nil {
			return fmt.Errorf("record migration %s: %w", version, err)
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

// withLock runs fn in a transaction holding the migration advisory lock.
// The lock is released when the transaction ends.
func withLock(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback migration tx: %w", rerr))
		}
	}()

	if _, err = tx.ExecContext(ctx, lockQuery, lockKey); err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit migration tx: %w", err)
	}
	return nil
}
