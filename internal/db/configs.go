package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetConfig retrieves a per-session setting, or nil if the key is unset
func (db *DB) GetConfig(ctx context.Context, key, sessionID string) (*ConfigEntry, error) {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}
	var e ConfigEntry
	err := db.pool.QueryRow(ctx,
		`SELECT key, session_id, value, updated_at FROM configs WHERE key = $1 AND session_id = $2`,
		key, sessionID,
	).Scan(&e.Key, &e.SessionID, &e.Value, &e.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get config %q: %w", key, err)
	}
	return &e, nil
}

// SetConfig upserts a per-session setting keyed by (key, session_id)
func (db *DB) SetConfig(ctx context.Context, key, value, sessionID string) error {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO configs (key, session_id, value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (key, session_id) DO UPDATE SET value = $3, updated_at = NOW()`,
		key, sessionID, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set config %q: %w", key, err)
	}
	return nil
}
