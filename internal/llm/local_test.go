package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLocalClient_Deterministic tests that the stub produces stable output
func TestLocalClient_Deterministic(t *testing.T) {
	client := NewLocalClient()
	req := DraftRequest{
		Name:         "Jane Smith",
		Role:         ptr("CTO"),
		Company:      ptr("Acme"),
		OfferContext: "We sell widgets",
		Count:        2,
	}

	first, err := client.GenerateOutreachDrafts(context.Background(), req)
	require.NoError(t, err)
	second, err := client.GenerateOutreachDrafts(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.Len(t, first, 2)
	assert.Equal(t, "V1", first[0].Variant)
	assert.Equal(t, "V2", first[1].Variant)
	assert.Contains(t, first[0].Content, "Jane Smith")
	assert.Contains(t, first[0].Content, "CTO")
	assert.Contains(t, first[0].Content, "Acme")
}

// TestLocalClient_Fallbacks tests placeholder text for missing profile fields
func TestLocalClient_Fallbacks(t *testing.T) {
	client := NewLocalClient()

	drafts, err := client.GenerateOutreachDrafts(context.Background(), DraftRequest{
		Name:         "Bob Jones",
		OfferContext: "We sell widgets",
	})
	require.NoError(t, err)
	require.Len(t, drafts, DefaultDraftCount)
	assert.Contains(t, drafts[0].Content, "your work")
	assert.Contains(t, drafts[0].Content, "your company")
}

// TestNewClient_EmptyKeySelectsLocal tests the credential-free default
func TestNewClient_EmptyKeySelectsLocal(t *testing.T) {
	client, err := NewClient(context.Background(), "", "gemini-1.5-flash")
	require.NoError(t, err)
	_, ok := client.(*LocalClient)
	assert.True(t, ok)
}
