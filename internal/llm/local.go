package llm

import (
	"context"
	"fmt"
)

// LocalClient is a deterministic drafting stub for demos and tests. It never
// calls out anywhere and produces the same drafts for the same input.
type LocalClient struct{}

// NewLocalClient creates a local drafting client
func NewLocalClient() *LocalClient {
	return &LocalClient{}
}

// GenerateOutreachDrafts returns Count canned variants built from the request fields
func (c *LocalClient) GenerateOutreachDrafts(_ context.Context, req DraftRequest) ([]MessageDraft, error) {
	count := req.Count
	if count <= 0 {
		count = DefaultDraftCount
	}

	role := "work"
	if req.Role != nil && *req.Role != "" {
		role = *req.Role
	}
	company := "your company"
	if req.Company != nil && *req.Company != "" {
		company = *req.Company
	}

	drafts := make([]MessageDraft, count)
	for i := 0; i < count; i++ {
		drafts[i] = MessageDraft{
			Variant: fmt.Sprintf("V%d", i+1),
			Content: fmt.Sprintf("Hi %s, I was impressed by your %s at %s. %s",
				req.Name, role, company, req.OfferContext),
		}
	}
	return drafts, nil
}

// Close is a no-op for the local client
func (c *LocalClient) Close() error {
	return nil
}
