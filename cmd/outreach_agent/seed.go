package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/outreach-assistant/internal/config"
	"github.com/jonathan/outreach-assistant/internal/db"
	"github.com/jonathan/outreach-assistant/internal/ingestion"
	"github.com/jonathan/outreach-assistant/internal/scrape"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a targets CSV directly into the database",
	Long:  "Parses a prospect CSV with the same validation rules as the import endpoint and inserts the targets. Optionally pre-scrapes some of them with the demo scraper so the dataset has profile snapshots to draft from.",
	RunE:  runSeed,
}

var (
	seedInputFile   string
	seedSession     string
	seedScrapeCount int
	seedWorkers     int
)

func init() {
	seedCmd.Flags().StringVarP(&seedInputFile, "in", "i", "", "Path to targets CSV file (required)")
	seedCmd.Flags().StringVar(&seedSession, "session", db.DefaultSessionID, "Session to load the targets into")
	seedCmd.Flags().IntVar(&seedScrapeCount, "scraped", 0, "Pre-scrape this many targets with the demo scraper")
	seedCmd.Flags().IntVar(&seedWorkers, "workers", 4, "Concurrent scrape workers")

	if err := seedCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	file, err := os.Open(seedInputFile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	inputs, err := ingestion.ParseTargets(file)
	if err != nil {
		return fmt.Errorf("failed to parse targets CSV: %w", err)
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	inserted, err := database.CreateTargets(ctx, seedSession, inputs)
	if err != nil {
		return fmt.Errorf("failed to insert targets: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Inserted %d target(s), skipped %d duplicate(s)\n", inserted, len(inputs)-inserted)

	if seedScrapeCount > 0 {
		scraped, err := preScrape(ctx, database, seedSession, seedScrapeCount)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Pre-scraped %d target(s)\n", scraped)
	}

	return nil
}

// preScrape runs the demo scraper over up to count unvisited targets in the
// session, with bounded concurrency
func preScrape(ctx context.Context, database *db.DB, sessionID string, count int) (int, error) {
	page, err := database.ListTargets(ctx, db.ListTargetsOptions{
		SessionID: sessionID,
		Status:    db.StatusNotVisited,
		Limit:     count,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list targets: %w", err)
	}

	scraper := scrape.NewDemoScraper()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(seedWorkers)
	for _, target := range page.Items {
		g.Go(func() error {
			fields, err := scraper.ScrapeProfile(ctx, target.LinkedInURL)
			if err != nil {
				return fmt.Errorf("failed to scrape target %d: %w", target.ID, err)
			}
			_, err = database.SaveScrapeResult(ctx, target.ID, db.ProfileInput{
				Headline:    fields.Headline,
				About:       fields.About,
				CurrentRole: fields.CurrentRole,
				Company:     fields.Company,
				Location:    fields.Location,
				Industry:    fields.Industry,
				RawHTML:     fields.RawHTML,
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(page.Items), nil
}
