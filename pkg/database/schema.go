package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is idempotent; it runs on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS registrants (
		id               UUID PRIMARY KEY,
		company_name     TEXT NOT NULL,
		first_name       TEXT NOT NULL,
		last_name        TEXT NOT NULL,
		job_title        TEXT NOT NULL,
		phone            TEXT NOT NULL,
		email            TEXT NOT NULL,
		has_uae          TEXT NOT NULL CHECK (has_uae IN ('Yes', 'No')),
		multi_country    TEXT NOT NULL CHECK (multi_country IN ('Yes', 'No')),
		line_of_business TEXT[] NOT NULL,
		product_interest TEXT[] NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS registrants_created_at_idx ON registrants (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		phone      TEXT NOT NULL DEFAULT '',
		message    TEXT NOT NULL DEFAULT '',
		categories TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS contact_messages_created_at_idx ON contact_messages (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS security_events (
		id           BIGSERIAL PRIMARY KEY,
		event_type   TEXT NOT NULL,
		severity     TEXT NOT NULL,
		service      TEXT NOT NULL,
		environment  TEXT NOT NULL,
		email_masked TEXT,
		ip_address   INET,
		user_agent   TEXT NOT NULL DEFAULT '',
		request_id   TEXT NOT NULL DEFAULT '',
		details      JSONB,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS security_events_created_at_idx ON security_events (created_at DESC)`,
}

// EnsureSchema creates the record and security event tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
