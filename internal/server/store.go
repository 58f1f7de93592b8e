package server

import (
	"context"

	"github.com/jonathan/outreach-assistant/internal/db"
)

// Store is the persistence surface the services depend on. *db.DB implements
// it; tests substitute an in-memory fake.
type Store interface {
	// Targets
	CreateTargets(ctx context.Context, sessionID string, inputs []db.TargetInput) (int, error)
	ListTargets(ctx context.Context, opts db.ListTargetsOptions) (*db.TargetPage, error)
	GetTarget(ctx context.Context, id int64) (*db.Target, error)
	MarkTargetsExported(ctx context.Context, ids []int64) error
	ResetAll(ctx context.Context) error

	// Profile snapshots
	SaveScrapeResult(ctx context.Context, targetID int64, in db.ProfileInput) (*db.ProfileSnapshot, error)

	// Messages
	CreateDrafts(ctx context.Context, targetID int64, drafts []db.DraftInput) ([]db.Message, error)
	ListMessagesByTarget(ctx context.Context, targetID int64) ([]db.Message, error)
	GetMessage(ctx context.Context, id int64) (*db.Message, error)
	UpdateMessageContent(ctx context.Context, id int64, content string) (*db.Message, error)
	ApproveMessage(ctx context.Context, id int64) (*db.Message, error)
	UnapproveMessage(ctx context.Context, id int64) (*db.Message, error)
	DiscardMessage(ctx context.Context, id int64) (*db.Message, error)
	DiscardAllMessages(ctx context.Context, targetID int64) error
	DeleteMessage(ctx context.Context, id int64) (bool, error)
	ListNewApproved(ctx context.Context, sessionID string) ([]db.ApprovedMessage, error)
	CountNewApproved(ctx context.Context, sessionID string) (int, error)

	// Config
	GetConfig(ctx context.Context, key, sessionID string) (*db.ConfigEntry, error)
	SetConfig(ctx context.Context, key, value, sessionID string) error
}
