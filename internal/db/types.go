package db

import "time"

// Target status values. Targets progress NOT_VISITED → PROFILE_SCRAPED →
// MESSAGE_DRAFTED → APPROVED → EXPORTED; BROKEN is reachable only from import.
const (
	StatusNotVisited     = "NOT_VISITED"
	StatusProfileScraped = "PROFILE_SCRAPED"
	StatusMessageDrafted = "MESSAGE_DRAFTED"
	StatusApproved       = "APPROVED"
	StatusExported       = "EXPORTED"
	StatusBroken         = "BROKEN"
)

// Message status values
const (
	MessageStatusDraft     = "DRAFT"
	MessageStatusApproved  = "APPROVED"
	MessageStatusDiscarded = "DISCARDED"
)

// DefaultSessionID scopes targets for callers that don't supply a session token
const DefaultSessionID = "default"

// targetStatuses is the set of valid target status values
var targetStatuses = map[string]bool{
	StatusNotVisited:     true,
	StatusProfileScraped: true,
	StatusMessageDrafted: true,
	StatusApproved:       true,
	StatusExported:       true,
	StatusBroken:         true,
}

// ValidTargetStatus reports whether s is a defined target status
func ValidTargetStatus(s string) bool {
	return targetStatuses[s]
}

// messageStatuses is the set of valid message status values
var messageStatuses = map[string]bool{
	MessageStatusDraft:     true,
	MessageStatusApproved:  true,
	MessageStatusDiscarded: true,
}

// ValidMessageStatus reports whether s is a defined message status
func ValidMessageStatus(s string) bool {
	return messageStatuses[s]
}

// Target represents a prospect contact record
type Target struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	LinkedInURL string    `json:"linkedin_url"`
	Role        *string   `json:"role,omitempty"`
	Company     *string   `json:"company,omitempty"`
	Status      string    `json:"status"`
	SessionID   string    `json:"session_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Profile  *ProfileSnapshot `json:"profile,omitempty"`  // joined
	Messages []Message        `json:"messages,omitempty"` // joined
}

// IsBroken reports whether the target was admitted with failed validation.
// Broken targets must never advance via scrape.
func (t *Target) IsBroken() bool {
	return t.Status == StatusBroken
}

// TargetInput holds the fields for a new target row
type TargetInput struct {
	Name        string
	LinkedInURL string
	Role        *string
	Company     *string
	Status      string
}

// ProfileSnapshot holds captured public-profile fields for a target, one per target
type ProfileSnapshot struct {
	ID          int64     `json:"id"`
	TargetID    int64     `json:"target_id"`
	Headline    *string   `json:"headline,omitempty"`
	About       *string   `json:"about,omitempty"`
	CurrentRole *string   `json:"current_role,omitempty"`
	Company     *string   `json:"company,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Industry    *string   `json:"industry,omitempty"`
	RawHTML     *string   `json:"-"` // Don't serialize (large)
	CreatedAt   time.Time `json:"created_at"`
}

// ProfileInput holds the fields captured by one scrape
type ProfileInput struct {
	Headline    *string
	About       *string
	CurrentRole *string
	Company     *string
	Location    *string
	Industry    *string
	RawHTML     *string
}

// Message represents a generated candidate outreach message
type Message struct {
	ID        int64     `json:"id"`
	TargetID  int64     `json:"target_id"`
	Variant   string    `json:"variant"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DraftInput holds the fields for a new draft message
type DraftInput struct {
	Variant string
	Content string
}

// ApprovedMessage is a message joined with the target fields needed for export
type ApprovedMessage struct {
	Message
	TargetName    string  `json:"target_name"`
	TargetURL     string  `json:"target_url"`
	TargetRole    *string `json:"target_role,omitempty"`
	TargetCompany *string `json:"target_company,omitempty"`
}

// ConfigEntry is a key/value setting scoped by session
type ConfigEntry struct {
	Key       string    `json:"key"`
	SessionID string    `json:"session_id"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListTargetsOptions holds filters for listing targets
type ListTargetsOptions struct {
	SessionID string
	Status    string // empty or "ALL" means no status filter
	Limit     int
	Offset    int
}

// TargetPage is one page of targets plus aggregate counts.
// Stats is computed over the whole session-scoped set, independent of the
// status filter, so callers can show global per-status counts next to a
// filtered view.
type TargetPage struct {
	Items []Target       `json:"items"`
	Total int            `json:"total"`
	Stats map[string]int `json:"stats"`
}
