package server

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/jonathan/outreach-assistant/internal/db"
	"github.com/jonathan/outreach-assistant/internal/ingestion"
	"github.com/jonathan/outreach-assistant/internal/llm"
	"github.com/jonathan/outreach-assistant/internal/types"
)

// MessageService owns the message lifecycle: draft generation, the
// single-approved-per-target invariant, discard/regenerate semantics and
// export accounting.
type MessageService struct {
	llm   llm.Client
	store Store
}

// NewMessageService creates a MessageService
func NewMessageService(client llm.Client, store Store) *MessageService {
	return &MessageService{llm: client, store: store}
}

// Generate produces count drafts for the target and persists them, advancing
// the target to MESSAGE_DRAFTED. A profile snapshot improves personalization
// but is not required; its fields are optional context. The drafting call runs
// without any open transaction. Returns the target's full message list,
// ordered by creation time ascending.
func (s *MessageService) Generate(ctx context.Context, targetID int64, offerContext string, count int) ([]db.Message, error) {
	target, err := s.store.GetTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, &ErrTargetNotFound{ID: targetID}
	}

	req := llm.DraftRequest{
		Name:         target.Name,
		Role:         target.Role,
		Company:      target.Company,
		OfferContext: offerContext,
		Count:        count,
	}
	if target.Profile != nil {
		// About text first, headline as the fallback summary
		if target.Profile.About != nil && *target.Profile.About != "" {
			req.ProfileSummary = target.Profile.About
		} else if target.Profile.Headline != nil && *target.Profile.Headline != "" {
			req.ProfileSummary = target.Profile.Headline
		}
	}

	drafts, err := s.llm.GenerateOutreachDrafts(ctx, req)
	if err != nil {
		return nil, &ErrExternalCapability{Capability: "drafting", Err: err}
	}
	if len(drafts) == 0 {
		return nil, &ErrExternalCapability{Capability: "drafting", Err: fmt.Errorf("no drafts returned")}
	}

	inputs := make([]db.DraftInput, len(drafts))
	for i, d := range drafts {
		inputs[i] = db.DraftInput{Variant: d.Variant, Content: d.Content}
	}

	log.Printf("[draft] target=%d variants=%d", targetID, len(inputs))
	return s.store.CreateDrafts(ctx, targetID, inputs)
}

// Regenerate discards every non-discarded message for the target and then
// generates a fresh batch.
func (s *MessageService) Regenerate(ctx context.Context, targetID int64, offerContext string, count int) ([]db.Message, error) {
	if err := s.DiscardAll(ctx, targetID); err != nil {
		return nil, err
	}
	return s.Generate(ctx, targetID, offerContext, count)
}

// DiscardAll marks every non-discarded message for the target as DISCARDED
// and resets drafting progress: a MESSAGE_DRAFTED or APPROVED target drops
// back to PROFILE_SCRAPED.
func (s *MessageService) DiscardAll(ctx context.Context, targetID int64) error {
	target, err := s.store.GetTarget(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return &ErrTargetNotFound{ID: targetID}
	}
	return s.store.DiscardAllMessages(ctx, targetID)
}

// ListByTarget returns the target's messages ordered by creation time ascending
func (s *MessageService) ListByTarget(ctx context.Context, targetID int64) ([]db.Message, error) {
	target, err := s.store.GetTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, &ErrTargetNotFound{ID: targetID}
	}
	return s.store.ListMessagesByTarget(ctx, targetID)
}

// Update patches a message's content and/or status. Status transitions carry
// their lifecycle side effects: APPROVED demotes any other approved message
// for the target (last-approved-wins) and advances the target; DRAFT re-checks
// whether the target still has an approved message and demotes it when not;
// DISCARDED has no target side effects.
func (s *MessageService) Update(ctx context.Context, id int64, req types.PatchMessageRequest) (*db.Message, error) {
	message, err := s.store.GetMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, &ErrMessageNotFound{ID: id}
	}

	if req.Content != nil {
		message, err = s.store.UpdateMessageContent(ctx, id, *req.Content)
		if err != nil {
			return nil, err
		}
		if message == nil {
			return nil, &ErrMessageNotFound{ID: id}
		}
	}

	if req.Status != nil {
		switch *req.Status {
		case db.MessageStatusApproved:
			message, err = s.store.ApproveMessage(ctx, id)
		case db.MessageStatusDraft:
			message, err = s.store.UnapproveMessage(ctx, id)
		case db.MessageStatusDiscarded:
			message, err = s.store.DiscardMessage(ctx, id)
		default:
			return nil, &ErrValidation{Message: fmt.Sprintf("unknown message status: %s", *req.Status)}
		}
		if err != nil {
			return nil, err
		}
		if message == nil {
			return nil, &ErrMessageNotFound{ID: id}
		}
	}

	return message, nil
}

// Delete hard-removes a single message row with no status side effects
func (s *MessageService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.store.DeleteMessage(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return &ErrMessageNotFound{ID: id}
	}
	return nil
}

// NewApproved returns the export selection set: approved messages whose target
// has not been exported yet.
func (s *MessageService) NewApproved(ctx context.Context, sessionID string) ([]db.ApprovedMessage, error) {
	return s.store.ListNewApproved(ctx, sessionID)
}

// CountNewApproved counts the export selection set
func (s *MessageService) CountNewApproved(ctx context.Context, sessionID string) (int, error) {
	return s.store.CountNewApproved(ctx, sessionID)
}

// ExportApproved renders the approved-and-unexported set as CSV bytes and
// marks the included targets EXPORTED. The target-level flag keeps the same
// messages out of subsequent runs even though their own status stays APPROVED.
func (s *MessageService) ExportApproved(ctx context.Context, sessionID string) ([]byte, int, error) {
	messages, err := s.store.ListNewApproved(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}

	var buf bytes.Buffer
	if err := ingestion.WriteApprovedCSV(&buf, messages); err != nil {
		return nil, 0, err
	}

	seen := map[int64]bool{}
	ids := make([]int64, 0, len(messages))
	for _, m := range messages {
		if !seen[m.TargetID] {
			seen[m.TargetID] = true
			ids = append(ids, m.TargetID)
		}
	}
	if err := s.store.MarkTargetsExported(ctx, ids); err != nil {
		return nil, 0, err
	}

	log.Printf("[export] session=%s messages=%d targets=%d", sessionID, len(messages), len(ids))
	return buf.Bytes(), len(messages), nil
}
