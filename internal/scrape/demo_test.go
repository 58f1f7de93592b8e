package scrape

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDemoScraper_StablePerURL tests that repeated scrapes of one URL return
// the same profile
func TestDemoScraper_StablePerURL(t *testing.T) {
	scraper := NewDemoScraper()

	first, err := scraper.ScrapeProfile(context.Background(), "https://linkedin.com/in/janesmith")
	require.NoError(t, err)
	second, err := scraper.ScrapeProfile(context.Background(), "https://linkedin.com/in/janesmith")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.NotNil(t, first.Headline)
	require.NotNil(t, first.RawHTML)
	assert.Contains(t, *first.RawHTML, "https://linkedin.com/in/janesmith")
}

// TestDemoScraper_FieldsPopulated tests that canned profiles carry every field
func TestDemoScraper_FieldsPopulated(t *testing.T) {
	scraper := NewDemoScraper()

	profile, err := scraper.ScrapeProfile(context.Background(), "https://linkedin.com/in/bobjones")
	require.NoError(t, err)

	assert.NotNil(t, profile.Headline)
	assert.NotNil(t, profile.About)
	assert.NotNil(t, profile.CurrentRole)
	assert.NotNil(t, profile.Company)
	assert.NotNil(t, profile.Location)
	assert.NotNil(t, profile.Industry)
}
