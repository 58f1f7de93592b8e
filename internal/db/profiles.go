package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetProfileByTarget retrieves the profile snapshot for a target, or nil if none exists
func (db *DB) GetProfileByTarget(ctx context.Context, targetID int64) (*ProfileSnapshot, error) {
	var p ProfileSnapshot
	err := db.pool.QueryRow(ctx,
		`SELECT id, target_id, headline, about, current_role, company, location, industry, raw_html, created_at
		 FROM profile_snapshots WHERE target_id = $1`,
		targetID,
	).Scan(&p.ID, &p.TargetID, &p.Headline, &p.About, &p.CurrentRole,
		&p.Company, &p.Location, &p.Industry, &p.RawHTML, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile snapshot: %w", err)
	}
	return &p, nil
}

// SaveScrapeResult stores a successful scrape: it upserts the snapshot and
// sets the target to PROFILE_SCRAPED in one transaction. The status write is
// unconditional; re-scraping an already-advanced target resets its visible
// progress to PROFILE_SCRAPED.
func (db *DB) SaveScrapeResult(ctx context.Context, targetID int64, in ProfileInput) (*ProfileSnapshot, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var p ProfileSnapshot
	err = tx.QueryRow(ctx,
		`INSERT INTO profile_snapshots (target_id, headline, about, current_role, company, location, industry, raw_html)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (target_id) DO UPDATE SET
		     headline = $2, about = $3, current_role = $4, company = $5,
		     location = $6, industry = $7, raw_html = $8, created_at = NOW()
		 RETURNING id, target_id, headline, about, current_role, company, location, industry, raw_html, created_at`,
		targetID, in.Headline, in.About, in.CurrentRole, in.Company, in.Location, in.Industry, in.RawHTML,
	).Scan(&p.ID, &p.TargetID, &p.Headline, &p.About, &p.CurrentRole,
		&p.Company, &p.Location, &p.Industry, &p.RawHTML, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile snapshot: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE targets SET status = $1, updated_at = NOW() WHERE id = $2`,
		StatusProfileScraped, targetID,
	); err != nil {
		return nil, fmt.Errorf("failed to advance target status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit scrape result: %w", err)
	}
	return &p, nil
}
