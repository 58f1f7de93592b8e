package scrape

import (
	"context"
	"fmt"
	"hash/fnv"
)

// demoProfiles is a small canned profile set for demos and tests
var demoProfiles = []ProfileFields{
	{
		Headline:    ptr("AI Automation Consultant | Helping teams ship faster"),
		About:       ptr("Seasoned consultant focused on reliable automation and AI workflows."),
		CurrentRole: ptr("Founder"),
		Company:     ptr("Prema Vision"),
		Location:    ptr("Remote"),
		Industry:    ptr("Information Technology"),
	},
	{
		Headline:    ptr("Head of Operations at GrowthHub"),
		About:       ptr("Ops leader scaling teams and processes for B2B SaaS."),
		CurrentRole: ptr("Head of Operations"),
		Company:     ptr("GrowthHub"),
		Location:    ptr("Austin, TX"),
		Industry:    ptr("SaaS"),
	},
}

// DemoScraper returns canned profiles without touching the network. The pick
// is keyed on the URL hash so repeated scrapes of one target are stable.
type DemoScraper struct{}

// NewDemoScraper creates a demo scraper
func NewDemoScraper() *DemoScraper {
	return &DemoScraper{}
}

// ScrapeProfile returns a canned profile for the URL
func (s *DemoScraper) ScrapeProfile(_ context.Context, url string) (*ProfileFields, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(url))
	sample := demoProfiles[int(h.Sum32())%len(demoProfiles)]

	profile := sample // copy
	raw := fmt.Sprintf("<demo-snapshot url=%q></demo-snapshot>", url)
	profile.RawHTML = &raw
	return &profile, nil
}

func ptr(s string) *string {
	return &s
}
