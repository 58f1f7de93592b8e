package server

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/outreach-assistant/internal/config"
	"github.com/jonathan/outreach-assistant/internal/db"
	"github.com/jonathan/outreach-assistant/internal/llm"
	"github.com/jonathan/outreach-assistant/internal/scrape"
)

// fakeStore is an in-memory Store with the same lifecycle semantics as the
// Postgres implementation.
type fakeStore struct {
	mu sync.Mutex

	nextTargetID  int64
	nextProfileID int64
	nextMessageID int64

	targets  map[int64]*db.Target
	profiles map[int64]*db.ProfileSnapshot // keyed by target ID
	messages map[int64]*db.Message
	configs  map[string]string // key + "\x00" + session
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		targets:  map[int64]*db.Target{},
		profiles: map[int64]*db.ProfileSnapshot{},
		messages: map[int64]*db.Message{},
		configs:  map[string]string{},
	}
}

func (f *fakeStore) addTarget(name, url, sessionID, status string) *db.Target {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextTargetID++
	t := &db.Target{
		ID:          f.nextTargetID,
		Name:        name,
		LinkedInURL: url,
		Status:      status,
		SessionID:   sessionID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.targets[t.ID] = t
	return t
}

func (f *fakeStore) addMessage(targetID int64, variant, content, status string) *db.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextMessageID++
	m := &db.Message{
		ID:        f.nextMessageID,
		TargetID:  targetID,
		Variant:   variant,
		Content:   content,
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.messages[m.ID] = m
	return m
}

func (f *fakeStore) CreateTargets(_ context.Context, sessionID string, inputs []db.TargetInput) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing := map[string]bool{}
	for _, t := range f.targets {
		if t.SessionID == sessionID {
			existing[t.LinkedInURL] = true
		}
	}
	inserted := 0
	for _, in := range inputs {
		if existing[in.LinkedInURL] {
			continue
		}
		existing[in.LinkedInURL] = true
		f.nextTargetID++
		f.targets[f.nextTargetID] = &db.Target{
			ID:          f.nextTargetID,
			Name:        in.Name,
			LinkedInURL: in.LinkedInURL,
			Role:        in.Role,
			Company:     in.Company,
			Status:      in.Status,
			SessionID:   sessionID,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		inserted++
	}
	return inserted, nil
}

func (f *fakeStore) ListTargets(_ context.Context, opts db.ListTargetsOptions) (*db.TargetPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	page := &db.TargetPage{Stats: map[string]int{}}
	var matched []db.Target
	for _, t := range f.targets {
		if t.SessionID != opts.SessionID {
			continue
		}
		page.Stats[t.Status]++
		if opts.Status != "" && opts.Status != "ALL" && t.Status != opts.Status {
			continue
		}
		matched = append(matched, *t)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	page.Total = len(matched)
	for i, t := range matched {
		if i < opts.Offset {
			continue
		}
		if opts.Limit > 0 && len(page.Items) >= opts.Limit {
			break
		}
		page.Items = append(page.Items, t)
	}
	return page, nil
}

func (f *fakeStore) GetTarget(_ context.Context, id int64) (*db.Target, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.targets[id]
	if !ok {
		return nil, nil
	}
	out := *t
	if p, ok := f.profiles[id]; ok {
		snap := *p
		out.Profile = &snap
	}
	out.Messages = f.messagesForLocked(id)
	return &out, nil
}

func (f *fakeStore) MarkTargetsExported(_ context.Context, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		if t, ok := f.targets[id]; ok {
			t.Status = db.StatusExported
		}
	}
	return nil
}

func (f *fakeStore) ResetAll(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.targets = map[int64]*db.Target{}
	f.profiles = map[int64]*db.ProfileSnapshot{}
	f.messages = map[int64]*db.Message{}
	return nil
}

func (f *fakeStore) SaveScrapeResult(_ context.Context, targetID int64, in db.ProfileInput) (*db.ProfileSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextProfileID++
	snap := &db.ProfileSnapshot{
		ID:          f.nextProfileID,
		TargetID:    targetID,
		Headline:    in.Headline,
		About:       in.About,
		CurrentRole: in.CurrentRole,
		Company:     in.Company,
		Location:    in.Location,
		Industry:    in.Industry,
		RawHTML:     in.RawHTML,
		CreatedAt:   time.Now(),
	}
	f.profiles[targetID] = snap
	if t, ok := f.targets[targetID]; ok {
		t.Status = db.StatusProfileScraped
	}
	out := *snap
	return &out, nil
}

func (f *fakeStore) CreateDrafts(_ context.Context, targetID int64, drafts []db.DraftInput) ([]db.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range drafts {
		f.nextMessageID++
		f.messages[f.nextMessageID] = &db.Message{
			ID:        f.nextMessageID,
			TargetID:  targetID,
			Variant:   d.Variant,
			Content:   d.Content,
			Status:    db.MessageStatusDraft,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
	}
	if t, ok := f.targets[targetID]; ok {
		t.Status = db.StatusMessageDrafted
	}
	return f.messagesForLocked(targetID), nil
}

func (f *fakeStore) ListMessagesByTarget(_ context.Context, targetID int64) ([]db.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messagesForLocked(targetID), nil
}

func (f *fakeStore) messagesForLocked(targetID int64) []db.Message {
	var out []db.Message
	for _, m := range f.messages {
		if m.TargetID == targetID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeStore) GetMessage(_ context.Context, id int64) (*db.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.messages[id]
	if !ok {
		return nil, nil
	}
	out := *m
	return &out, nil
}

func (f *fakeStore) UpdateMessageContent(_ context.Context, id int64, content string) (*db.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.messages[id]
	if !ok {
		return nil, nil
	}
	m.Content = content
	out := *m
	return &out, nil
}

func (f *fakeStore) ApproveMessage(_ context.Context, id int64) (*db.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.messages[id]
	if !ok {
		return nil, nil
	}
	m.Status = db.MessageStatusApproved
	for _, other := range f.messages {
		if other.TargetID == m.TargetID && other.ID != id && other.Status == db.MessageStatusApproved {
			other.Status = db.MessageStatusDraft
		}
	}
	if t, ok := f.targets[m.TargetID]; ok {
		t.Status = db.StatusApproved
	}
	out := *m
	return &out, nil
}

func (f *fakeStore) UnapproveMessage(_ context.Context, id int64) (*db.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.messages[id]
	if !ok {
		return nil, nil
	}
	m.Status = db.MessageStatusDraft
	anyApproved := false
	for _, other := range f.messages {
		if other.TargetID == m.TargetID && other.Status == db.MessageStatusApproved {
			anyApproved = true
			break
		}
	}
	if t, ok := f.targets[m.TargetID]; ok && !anyApproved && t.Status == db.StatusApproved {
		t.Status = db.StatusMessageDrafted
	}
	out := *m
	return &out, nil
}

func (f *fakeStore) DiscardMessage(_ context.Context, id int64) (*db.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.messages[id]
	if !ok {
		return nil, nil
	}
	m.Status = db.MessageStatusDiscarded
	out := *m
	return &out, nil
}

func (f *fakeStore) DiscardAllMessages(_ context.Context, targetID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.messages {
		if m.TargetID == targetID && m.Status != db.MessageStatusDiscarded {
			m.Status = db.MessageStatusDiscarded
		}
	}
	if t, ok := f.targets[targetID]; ok {
		if t.Status == db.StatusMessageDrafted || t.Status == db.StatusApproved {
			t.Status = db.StatusProfileScraped
		}
	}
	return nil
}

func (f *fakeStore) DeleteMessage(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.messages[id]; !ok {
		return false, nil
	}
	delete(f.messages, id)
	return true, nil
}

func (f *fakeStore) ListNewApproved(_ context.Context, sessionID string) ([]db.ApprovedMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.ApprovedMessage
	for _, m := range f.messages {
		if m.Status != db.MessageStatusApproved {
			continue
		}
		t, ok := f.targets[m.TargetID]
		if !ok || t.SessionID != sessionID || t.Status == db.StatusExported {
			continue
		}
		out = append(out, db.ApprovedMessage{
			Message:       *m,
			TargetName:    t.Name,
			TargetURL:     t.LinkedInURL,
			TargetRole:    t.Role,
			TargetCompany: t.Company,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) CountNewApproved(ctx context.Context, sessionID string) (int, error) {
	messages, err := f.ListNewApproved(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return len(messages), nil
}

func (f *fakeStore) GetConfig(_ context.Context, key, sessionID string) (*db.ConfigEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.configs[key+"\x00"+sessionID]
	if !ok {
		return nil, nil
	}
	return &db.ConfigEntry{Key: key, SessionID: sessionID, Value: value, UpdatedAt: time.Now()}, nil
}

func (f *fakeStore) SetConfig(_ context.Context, key, value, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.configs[key+"\x00"+sessionID] = value
	return nil
}

// stubScraper returns canned fields or a fixed error
type stubScraper struct {
	fields *scrape.ProfileFields
	err    error
}

func (s *stubScraper) ScrapeProfile(context.Context, string) (*scrape.ProfileFields, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.fields, nil
}

// stubLLM returns canned drafts or a fixed error and records the last request
type stubLLM struct {
	drafts  []llm.MessageDraft
	err     error
	lastReq llm.DraftRequest
	calls   int
}

func (s *stubLLM) GenerateOutreachDrafts(_ context.Context, req llm.DraftRequest) ([]llm.MessageDraft, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.drafts, nil
}

func (s *stubLLM) Close() error { return nil }

func strPtr(s string) *string { return &s }

// newTestServer builds a Server wired to in-memory fakes
func newTestServer() (*Server, *fakeStore) {
	store := newFakeStore()
	cfg := &config.Config{
		Port:           4000,
		ScraperMode:    config.ScraperModeDemo,
		PageSize:       20,
		DefaultSession: db.DefaultSessionID,
	}
	llmClient := &stubLLM{drafts: []llm.MessageDraft{
		{Variant: "V1", Content: "Hello there"},
		{Variant: "V2", Content: "Hi again"},
	}}
	s := &Server{
		store:     store,
		llmClient: llmClient,
		cfg:       cfg,
	}
	s.targets = NewTargetService(store, cfg.PageSize)
	s.scrapes = NewScrapeService(&stubScraper{fields: &scrape.ProfileFields{Headline: strPtr("Engineer")}}, store)
	s.messages = NewMessageService(llmClient, store)
	return s, store
}
