package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-assistant/internal/config"
	"github.com/jonathan/outreach-assistant/internal/db"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all targets, snapshots and messages",
	Long:  "Wipes the working tables in dependency order. Intended for demo and test environments.",
	RunE:  runReset,
}

var resetConfirm bool

func init() {
	resetCmd.Flags().BoolVar(&resetConfirm, "yes", false, "Skip confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if !resetConfirm {
		return fmt.Errorf("refusing to wipe the database without --yes")
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.ResetAll(ctx); err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}

	fmt.Fprintln(os.Stdout, "Database reset complete")
	return nil
}
