package server

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/jonathan/outreach-assistant/internal/db"
	"github.com/jonathan/outreach-assistant/internal/ingestion"
	"github.com/jonathan/outreach-assistant/internal/types"
)

// TargetService owns the target lifecycle: CSV import, listing and reset
type TargetService struct {
	store    Store
	pageSize int
}

// NewTargetService creates a TargetService with the given page size
func NewTargetService(store Store, pageSize int) *TargetService {
	return &TargetService{store: store, pageSize: pageSize}
}

// ImportCSV parses and validates raw CSV text, then bulk-inserts the admitted
// rows for the session. The call is all-or-nothing: if any row is rejected the
// aggregate error from parsing surfaces and nothing is inserted. Duplicate
// (linkedinUrl, sessionId) rows already in the store are silently skipped.
func (s *TargetService) ImportCSV(ctx context.Context, r io.Reader, sessionID string) (*types.ImportResponse, error) {
	inputs, err := ingestion.ParseTargets(r)
	if err != nil {
		return nil, err
	}

	inserted, err := s.store.CreateTargets(ctx, sessionID, inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to store targets: %w", err)
	}

	skipped := len(inputs) - inserted
	log.Printf("[import] session=%s imported=%d skipped=%d", sessionID, inserted, skipped)
	return &types.ImportResponse{Imported: inserted, Skipped: skipped}, nil
}

// List returns one page of targets for the session, filtered by status when
// given. Page numbers start at 1; the page size is fixed by configuration.
func (s *TargetService) List(ctx context.Context, sessionID string, page int, status string) (*db.TargetPage, error) {
	if page < 1 {
		page = 1
	}
	if status != "" && status != "ALL" && !db.ValidTargetStatus(status) {
		return nil, &ErrValidation{Message: fmt.Sprintf("unknown status filter: %s", status)}
	}

	return s.store.ListTargets(ctx, db.ListTargetsOptions{
		SessionID: sessionID,
		Status:    status,
		Limit:     s.pageSize,
		Offset:    (page - 1) * s.pageSize,
	})
}

// PageSize returns the fixed listing page size
func (s *TargetService) PageSize() int {
	return s.pageSize
}

// Get retrieves one target with its profile snapshot and messages joined
func (s *TargetService) Get(ctx context.Context, id int64) (*db.Target, error) {
	target, err := s.store.GetTarget(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, &ErrTargetNotFound{ID: id}
	}
	return target, nil
}

// Reset wipes all messages, snapshots and targets. Demo/test environments only.
func (s *TargetService) Reset(ctx context.Context) error {
	log.Printf("[reset] deleting all targets, snapshots and messages")
	return s.store.ResetAll(ctx)
}
