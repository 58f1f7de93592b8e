// Package llm provides the drafting capability: generating candidate outreach
// messages from target and profile context. No message is ever sent.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultDraftCount is how many variants a generate call produces when the
// caller doesn't ask for a specific number.
const DefaultDraftCount = 2

// MessageDraft is one generated candidate message
type MessageDraft struct {
	Variant string `json:"variant"`
	Content string `json:"content"`
}

// DraftRequest carries the personalization context for draft generation.
// ProfileSummary is the scraped about text, falling back to the headline;
// profile fields are optional context, never a hard requirement.
type DraftRequest struct {
	Name           string
	Role           *string
	Company        *string
	ProfileSummary *string
	OfferContext   string
	Count          int
}

// Client is an abstraction over drafting providers
type Client interface {
	// GenerateOutreachDrafts produces Count candidate messages for one target
	GenerateOutreachDrafts(ctx context.Context, req DraftRequest) ([]MessageDraft, error)
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a drafting client for the given provider. An empty API key
// selects the local deterministic client so the system works without
// credentials.
func NewClient(ctx context.Context, apiKey, model string) (Client, error) {
	if apiKey == "" {
		return NewLocalClient(), nil
	}
	return NewGeminiClient(ctx, apiKey, model)
}

// GeminiClient implements Client on top of Google Gemini
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini-backed drafting client
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// GenerateOutreachDrafts asks the model for a JSON array of drafts and
// validates the shape before returning. Malformed model output is surfaced as
// a failure, never replaced with fallback content.
func (c *GeminiClient) GenerateOutreachDrafts(ctx context.Context, req DraftRequest) ([]MessageDraft, error) {
	if req.Count <= 0 {
		req.Count = DefaultDraftCount
	}

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.8) // Drafts should vary between variants
	model.ResponseMIMEType = "application/json"

	prompt := BuildOutreachPrompt(req)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate drafts: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}
	text = cleanJSONBlock(text)

	if err := ValidateDraftsJSON(text); err != nil {
		return nil, fmt.Errorf("model returned malformed drafts: %w", err)
	}

	var drafts []MessageDraft
	if err := json.Unmarshal([]byte(text), &drafts); err != nil {
		return nil, fmt.Errorf("failed to decode drafts: %w", err)
	}
	if len(drafts) > req.Count {
		drafts = drafts[:req.Count]
	}
	for i := range drafts {
		if drafts[i].Variant == "" {
			drafts[i].Variant = fmt.Sprintf("V%d", i+1)
		}
	}
	return drafts, nil
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// cleanJSONBlock removes markdown code block wrappers from JSON
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
