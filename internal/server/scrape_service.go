package server

import (
	"context"
	"log"

	"github.com/jonathan/outreach-assistant/internal/db"
	"github.com/jonathan/outreach-assistant/internal/ingestion"
	"github.com/jonathan/outreach-assistant/internal/scrape"
)

// ScrapeService drives one external scrape call and persists the result
type ScrapeService struct {
	scraper scrape.Scraper
	store   Store
}

// NewScrapeService creates a ScrapeService
func NewScrapeService(scraper scrape.Scraper, store Store) *ScrapeService {
	return &ScrapeService{scraper: scraper, store: store}
}

// Scrape resolves the target's stored URL, invokes the scraping capability and
// persists the snapshot. The scraper call runs without any open transaction;
// nothing is written unless it succeeded, so a failed scrape is retryable.
// On success the target moves to PROFILE_SCRAPED regardless of its prior
// status. Broken targets are refused and never advance.
func (s *ScrapeService) Scrape(ctx context.Context, targetID int64) (*db.ProfileSnapshot, error) {
	target, err := s.store.GetTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, &ErrTargetNotFound{ID: targetID}
	}
	if target.IsBroken() {
		return nil, &ErrValidation{Message: "target is marked BROKEN and cannot be scraped"}
	}
	if !ingestion.IsLinkedInURL(target.LinkedInURL) {
		return nil, &ErrValidation{Message: "target has no valid LinkedIn URL"}
	}

	log.Printf("[scrape] target=%d url=%s", targetID, target.LinkedInURL)
	fields, err := s.scraper.ScrapeProfile(ctx, target.LinkedInURL)
	if err != nil {
		return nil, &ErrExternalCapability{Capability: "scraper", Err: err}
	}

	snapshot, err := s.store.SaveScrapeResult(ctx, targetID, db.ProfileInput{
		Headline:    fields.Headline,
		About:       fields.About,
		CurrentRole: fields.CurrentRole,
		Company:     fields.Company,
		Location:    fields.Location,
		Industry:    fields.Industry,
		RawHTML:     fields.RawHTML,
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
