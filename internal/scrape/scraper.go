// Package scrape provides the profile scraping capability behind a narrow
// interface so the real browser implementation and the demo stub are
// interchangeable.
package scrape

import "context"

// ProfileFields holds the public-profile fields captured by one scrape.
// Every field is optional; a scraper returns what it could find.
type ProfileFields struct {
	Headline    *string
	About       *string
	CurrentRole *string
	Company     *string
	Location    *string
	Industry    *string
	RawHTML     *string
}

// Scraper captures a public profile from its URL, or fails. A failure must
// leave no trace: the caller persists nothing until the scrape succeeded.
type Scraper interface {
	ScrapeProfile(ctx context.Context, url string) (*ProfileFields, error)
}
