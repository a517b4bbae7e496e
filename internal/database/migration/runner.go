package migration

import (
	"context"
	"errors"
	"fmt"

	"freelance-trends/internal/database"
)

// migrations are applied in order, exactly once, recorded in
// schema_migrations. Statements must stay idempotent-friendly: a failed
// half-applied version is not rolled back automatically.
var migrations = []migrationStep{
	{
		version: 1,
		name:    "create_jobs",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS jobs (
				id UUID PRIMARY KEY,
				title TEXT NOT NULL,
				company TEXT NOT NULL DEFAULT '',
				location TEXT NOT NULL DEFAULT '',
				tags TEXT[] NOT NULL DEFAULT '{}',
				source_url TEXT NOT NULL,
				posted_at TIMESTAMPTZ NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				CONSTRAINT jobs_source_url_key UNIQUE (source_url)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_jobs_posted_at ON jobs (posted_at)`,
		},
	},
	{
		version: 2,
		name:    "create_trend_snapshots",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS trend_snapshots (
				id UUID PRIMARY KEY,
				window_start TIMESTAMPTZ NOT NULL,
				window_end TIMESTAMPTZ NOT NULL,
				window_days INT NOT NULL,
				total_jobs INT NOT NULL,
				skills JSONB NOT NULL DEFAULT '[]',
				roles JSONB NOT NULL DEFAULT '[]',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_trend_snapshots_created_at ON trend_snapshots (created_at DESC)`,
		},
	},
}

type migrationStep struct {
	version    int
	name       string
	statements []string
}

const advisoryLockKey = 824137215

type Runner struct{}

func (Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}

	if _, err := db.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INT PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	var locked any
	if err := db.QueryRow(ctx, `SELECT pg_advisory_lock($1)`, advisoryLockKey).Scan(&locked); err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}
	defer func() {
		var unlocked any
		_ = db.QueryRow(context.Background(), `SELECT pg_advisory_unlock($1)`, advisoryLockKey).Scan(&unlocked)
	}()

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if _, ok := applied[m.version]; ok {
			continue
		}
		for _, stmt := range m.statements {
			if _, err := db.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
			}
		}
		if _, err := db.Exec(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
			m.version, m.name,
		); err != nil {
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}
	}

	return nil
}

func appliedVersions(ctx context.Context, db database.DB) (map[int]struct{}, error) {
	rows, err := db.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int]struct{}{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out[v] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
