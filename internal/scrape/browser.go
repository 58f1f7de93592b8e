package scrape

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// DefaultScrapeTimeout bounds one headless browser session
const DefaultScrapeTimeout = 30 * time.Second

// BrowserScraper renders profiles in a headless browser and extracts fields
// from the rendered markup. Requires Chrome/Chromium on the system.
type BrowserScraper struct {
	Timeout time.Duration
	Verbose bool
}

// NewBrowserScraper creates a browser scraper with the default timeout
func NewBrowserScraper() *BrowserScraper {
	return &BrowserScraper{Timeout: DefaultScrapeTimeout}
}

// ScrapeProfile renders the URL and extracts profile fields from the HTML
func (s *BrowserScraper) ScrapeProfile(ctx context.Context, url string) (*ProfileFields, error) {
	if s.Verbose {
		log.Printf("[scrape] starting headless browser for: %s", url)
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultScrapeTimeout
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Let client-side rendering settle before capturing
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, fmt.Errorf("browser rendering failed: %w", err)
	}

	if s.Verbose {
		log.Printf("[scrape] rendered HTML: %d bytes", len(html))
	}

	profile, err := extractProfileFields(html)
	if err != nil {
		return nil, err
	}
	profile.RawHTML = &html
	return profile, nil
}

// extractProfileFields pulls the known profile fields out of rendered markup
func extractProfileFields(html string) (*ProfileFields, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered HTML: %w", err)
	}

	profile := &ProfileFields{
		Headline:    selectText(doc, "h1"),
		About:       selectText(doc, "section#about, section[data-section='about']"),
		CurrentRole: selectText(doc, "section#experience h3, section[data-section='experience'] h3"),
		Company:     selectText(doc, "section#experience span, section[data-section='experience'] span"),
		Location:    selectText(doc, "div.text-body-small.inline"),
		Industry:    selectText(doc, "li.t-14"),
	}
	return profile, nil
}

// selectText returns the trimmed text of the first match, or nil when absent
func selectText(doc *goquery.Document, selector string) *string {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	text := strings.TrimSpace(sel.Text())
	if text == "" {
		return nil
	}
	return &text
}
