package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CreateTargets bulk-inserts targets for a session inside one transaction.
// Rows whose (linkedin_url, session_id) already exists are silently skipped;
// any other failure aborts the whole batch. Returns how many rows were
// actually inserted.
func (db *DB) CreateTargets(ctx context.Context, sessionID string, inputs []TargetInput) (int, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, in := range inputs {
		status := in.Status
		if status == "" {
			status = StatusNotVisited
		}
		tag, err := tx.Exec(ctx,
			`INSERT INTO targets (name, linkedin_url, role, company, status, session_id)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (linkedin_url, session_id) DO NOTHING`,
			in.Name, in.LinkedInURL, in.Role, in.Company, status, sessionID,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert target %q: %w", in.Name, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit targets: %w", err)
	}
	return inserted, nil
}

// ListTargets returns one page of targets ordered by creation time descending,
// the total count matching the filter, and a session-wide status breakdown.
func (db *DB) ListTargets(ctx context.Context, opts ListTargetsOptions) (*TargetPage, error) {
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	where := `WHERE session_id = $1`
	args := []any{sessionID}
	if opts.Status != "" && opts.Status != "ALL" {
		where += ` AND status = $2`
		args = append(args, opts.Status)
	}

	query := fmt.Sprintf(
		`SELECT id, name, linkedin_url, role, company, status, session_id, created_at, updated_at
		 FROM targets %s ORDER BY created_at DESC, id DESC LIMIT %d OFFSET %d`,
		where, opts.Limit, opts.Offset,
	)
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}
	defer rows.Close()

	page := &TargetPage{Items: []Target{}, Stats: map[string]int{}}
	for rows.Next() {
		var t Target
		if err := rows.Scan(&t.ID, &t.Name, &t.LinkedInURL, &t.Role, &t.Company,
			&t.Status, &t.SessionID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan target: %w", err)
		}
		page.Items = append(page.Items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read targets: %w", err)
	}

	if err := db.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM targets %s`, where), args...,
	).Scan(&page.Total); err != nil {
		return nil, fmt.Errorf("failed to count targets: %w", err)
	}

	// Stats ignore the status filter on purpose so the dashboard can show
	// global per-status counts next to a filtered page.
	statRows, err := db.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM targets WHERE session_id = $1 GROUP BY status`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate target stats: %w", err)
	}
	defer statRows.Close()
	for statRows.Next() {
		var status string
		var count int
		if err := statRows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan target stats: %w", err)
		}
		page.Stats[status] = count
	}
	if err := statRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read target stats: %w", err)
	}

	return page, nil
}

// GetTarget retrieves a target by ID with its profile snapshot and messages joined
func (db *DB) GetTarget(ctx context.Context, id int64) (*Target, error) {
	var t Target
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, linkedin_url, role, company, status, session_id, created_at, updated_at
		 FROM targets WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Name, &t.LinkedInURL, &t.Role, &t.Company,
		&t.Status, &t.SessionID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get target: %w", err)
	}

	profile, err := db.GetProfileByTarget(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Profile = profile

	messages, err := db.ListMessagesByTarget(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Messages = messages

	return &t, nil
}

// MarkTargetsExported flips the given targets to EXPORTED in one transaction.
// The target-level flag, not the message status, is what excludes an exported
// target's message from later export runs.
func (db *DB) MarkTargetsExported(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := db.pool.Exec(ctx,
		`UPDATE targets SET status = $1, updated_at = NOW() WHERE id = ANY($2)`,
		StatusExported, ids,
	)
	if err != nil {
		return fmt.Errorf("failed to mark targets exported: %w", err)
	}
	return nil
}

// ResetAll deletes all messages, snapshots and targets. Demo/test environments only.
func (db *DB) ResetAll(ctx context.Context) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"messages", "profile_snapshots", "targets"} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}
	return nil
}
