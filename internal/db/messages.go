package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const messageColumns = `id, target_id, variant, content, status, created_at, updated_at`

func scanMessage(row pgx.Row) (*Message, error) {
	var m Message
	err := row.Scan(&m.ID, &m.TargetID, &m.Variant, &m.Content, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateDrafts inserts a batch of draft messages for a target and advances the
// target to MESSAGE_DRAFTED in the same transaction, so a reader never sees
// drafts next to a stale target status. Returns the full current message list
// for the target, ordered by creation time ascending.
func (db *DB) CreateDrafts(ctx context.Context, targetID int64, drafts []DraftInput) ([]Message, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, d := range drafts {
		if _, err := tx.Exec(ctx,
			`INSERT INTO messages (target_id, variant, content, status)
			 VALUES ($1, $2, $3, $4)`,
			targetID, d.Variant, d.Content, MessageStatusDraft,
		); err != nil {
			return nil, fmt.Errorf("failed to insert draft: %w", err)
		}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE targets SET status = $1, updated_at = NOW() WHERE id = $2`,
		StatusMessageDrafted, targetID,
	); err != nil {
		return nil, fmt.Errorf("failed to advance target status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit drafts: %w", err)
	}

	return db.ListMessagesByTarget(ctx, targetID)
}

// ListMessagesByTarget returns all messages for a target ordered by creation time ascending
func (db *DB) ListMessagesByTarget(ctx context.Context, targetID int64) ([]Message, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE target_id = $1 ORDER BY created_at ASC, id ASC`,
		targetID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.TargetID, &m.Variant, &m.Content, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	return messages, nil
}

// GetMessage retrieves a message by ID, or nil if it does not exist
func (db *DB) GetMessage(ctx context.Context, id int64) (*Message, error) {
	m, err := scanMessage(db.pool.QueryRow(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return m, nil
}

// UpdateMessageContent replaces a message's content. Returns nil if the message does not exist.
func (db *DB) UpdateMessageContent(ctx context.Context, id int64, content string) (*Message, error) {
	m, err := scanMessage(db.pool.QueryRow(ctx,
		`UPDATE messages SET content = $1, updated_at = NOW() WHERE id = $2
		 RETURNING `+messageColumns,
		content, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update message content: %w", err)
	}
	return m, nil
}

// ApproveMessage sets a message to APPROVED, demotes any other approved message
// for the same target back to DRAFT (last-approved-wins) and advances the
// target to APPROVED. All writes land in one transaction so no reader can
// observe two approved messages for one target.
func (db *DB) ApproveMessage(ctx context.Context, id int64) (*Message, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	m, err := scanMessage(tx.QueryRow(ctx,
		`UPDATE messages SET status = $1, updated_at = NOW() WHERE id = $2
		 RETURNING `+messageColumns,
		MessageStatusApproved, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to approve message: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE messages SET status = $1, updated_at = NOW()
		 WHERE target_id = $2 AND id <> $3 AND status = $4`,
		MessageStatusDraft, m.TargetID, id, MessageStatusApproved,
	); err != nil {
		return nil, fmt.Errorf("failed to demote other approved messages: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE targets SET status = $1, updated_at = NOW() WHERE id = $2`,
		StatusApproved, m.TargetID,
	); err != nil {
		return nil, fmt.Errorf("failed to advance target status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit approval: %w", err)
	}
	return m, nil
}

// UnapproveMessage sets a message back to DRAFT. If the target has no other
// approved message left, the target drops from APPROVED to MESSAGE_DRAFTED;
// if one somehow remains, the target status is left alone.
func (db *DB) UnapproveMessage(ctx context.Context, id int64) (*Message, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	m, err := scanMessage(tx.QueryRow(ctx,
		`UPDATE messages SET status = $1, updated_at = NOW() WHERE id = $2
		 RETURNING `+messageColumns,
		MessageStatusDraft, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to unapprove message: %w", err)
	}

	var hasApproved bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM messages WHERE target_id = $1 AND status = $2)`,
		m.TargetID, MessageStatusApproved,
	).Scan(&hasApproved); err != nil {
		return nil, fmt.Errorf("failed to check remaining approvals: %w", err)
	}

	if !hasApproved {
		if _, err := tx.Exec(ctx,
			`UPDATE targets SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
			StatusMessageDrafted, m.TargetID, StatusApproved,
		); err != nil {
			return nil, fmt.Errorf("failed to demote target status: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit unapproval: %w", err)
	}
	return m, nil
}

// DiscardMessage sets a single message to DISCARDED with no target side effects
func (db *DB) DiscardMessage(ctx context.Context, id int64) (*Message, error) {
	m, err := scanMessage(db.pool.QueryRow(ctx,
		`UPDATE messages SET status = $1, updated_at = NOW() WHERE id = $2
		 RETURNING `+messageColumns,
		MessageStatusDiscarded, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to discard message: %w", err)
	}
	return m, nil
}

// DiscardAllMessages marks every non-discarded message for a target as
// DISCARDED and, if the target was MESSAGE_DRAFTED or APPROVED, drops it back
// to PROFILE_SCRAPED so the operator can restart with a different offer context.
func (db *DB) DiscardAllMessages(ctx context.Context, targetID int64) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE messages SET status = $1, updated_at = NOW()
		 WHERE target_id = $2 AND status <> $1`,
		MessageStatusDiscarded, targetID,
	); err != nil {
		return fmt.Errorf("failed to discard messages: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE targets SET status = $1, updated_at = NOW()
		 WHERE id = $2 AND status IN ($3, $4)`,
		StatusProfileScraped, targetID, StatusMessageDrafted, StatusApproved,
	); err != nil {
		return fmt.Errorf("failed to reset target status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit discard: %w", err)
	}
	return nil
}

// DeleteMessage hard-removes a message row. Returns false if it did not exist.
func (db *DB) DeleteMessage(ctx context.Context, id int64) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete message: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListNewApproved returns approved messages whose target has not been exported
// yet, joined with the target fields needed for the export CSV. The exclusion
// key is the target-level EXPORTED flag, not the message status.
func (db *DB) ListNewApproved(ctx context.Context, sessionID string) ([]ApprovedMessage, error) {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}
	rows, err := db.pool.Query(ctx,
		`SELECT m.id, m.target_id, m.variant, m.content, m.status, m.created_at, m.updated_at,
		        t.name, t.linkedin_url, t.role, t.company
		 FROM messages m
		 JOIN targets t ON t.id = m.target_id
		 WHERE m.status = $1 AND t.status <> $2 AND t.session_id = $3
		 ORDER BY m.created_at ASC, m.id ASC`,
		MessageStatusApproved, StatusExported, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list new approved messages: %w", err)
	}
	defer rows.Close()

	result := []ApprovedMessage{}
	for rows.Next() {
		var am ApprovedMessage
		if err := rows.Scan(&am.ID, &am.TargetID, &am.Variant, &am.Content, &am.Status,
			&am.CreatedAt, &am.UpdatedAt,
			&am.TargetName, &am.TargetURL, &am.TargetRole, &am.TargetCompany); err != nil {
			return nil, fmt.Errorf("failed to scan approved message: %w", err)
		}
		result = append(result, am)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read approved messages: %w", err)
	}
	return result, nil
}

// CountNewApproved counts approved messages whose target has not been exported yet
func (db *DB) CountNewApproved(ctx context.Context, sessionID string) (int, error) {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM messages m
		 JOIN targets t ON t.id = m.target_id
		 WHERE m.status = $1 AND t.status <> $2 AND t.session_id = $3`,
		MessageStatusApproved, StatusExported, sessionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count new approved messages: %w", err)
	}
	return count, nil
}
