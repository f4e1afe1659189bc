package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the prefixed tables if they do not exist. Used
// by the seed tool and dev startup; production schema changes go
// through migrations outside this binary.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				uid VARCHAR(255) PRIMARY KEY,
				email VARCHAR(255) NOT NULL,
				display_name VARCHAR(255) NOT NULL,
				photo_url TEXT,
				subscription JSONB NOT NULL DEFAULT '{}'::jsonb,
				usage JSONB NOT NULL DEFAULT '{}'::jsonb,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, tables.Profiles),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id VARCHAR(255) PRIMARY KEY,
				user_id VARCHAR(255) NOT NULL,
				title VARCHAR(255) NOT NULL,
				topic VARCHAR(500) NOT NULL,
				slides JSONB NOT NULL DEFAULT '[]'::jsonb,
				status VARCHAR(32) NOT NULL DEFAULT 'draft',
				thumbnail_url TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, tables.Projects),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS idx_%s_user_updated
			ON %s (user_id, updated_at DESC)
		`, tables.Projects, tables.Projects),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}
