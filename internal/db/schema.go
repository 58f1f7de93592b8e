package db

import (
	"context"
	"fmt"
)

// schema is applied idempotently at startup. Column additions require a
// separate migration; this only covers fresh databases.
const schema = `
CREATE TABLE IF NOT EXISTS targets (
    id           BIGSERIAL PRIMARY KEY,
    name         TEXT NOT NULL,
    linkedin_url TEXT NOT NULL,
    role         TEXT,
    company      TEXT,
    status       TEXT NOT NULL DEFAULT 'NOT_VISITED',
    session_id   TEXT NOT NULL DEFAULT 'default',
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (linkedin_url, session_id)
);

CREATE INDEX IF NOT EXISTS idx_targets_session_status ON targets (session_id, status);
CREATE INDEX IF NOT EXISTS idx_targets_created_at ON targets (created_at DESC);

CREATE TABLE IF NOT EXISTS profile_snapshots (
    id           BIGSERIAL PRIMARY KEY,
    target_id    BIGINT NOT NULL UNIQUE REFERENCES targets(id) ON DELETE CASCADE,
    headline     TEXT,
    about        TEXT,
    current_role TEXT,
    company      TEXT,
    location     TEXT,
    industry     TEXT,
    raw_html     TEXT,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS messages (
    id         BIGSERIAL PRIMARY KEY,
    target_id  BIGINT NOT NULL REFERENCES targets(id) ON DELETE CASCADE,
    variant    TEXT NOT NULL DEFAULT '',
    content    TEXT NOT NULL DEFAULT '',
    status     TEXT NOT NULL DEFAULT 'DRAFT',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_messages_target ON messages (target_id);
CREATE INDEX IF NOT EXISTS idx_messages_status ON messages (status);

CREATE TABLE IF NOT EXISTS configs (
    key        TEXT NOT NULL,
    session_id TEXT NOT NULL DEFAULT 'default',
    value      TEXT NOT NULL DEFAULT '',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (key, session_id)
);
`

// EnsureSchema creates the tables if they do not exist yet
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
