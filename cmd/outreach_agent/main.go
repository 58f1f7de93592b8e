// Package main provides the entry point for the Outreach Assistant HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "outreach_agent",
	Short: "Outreach Assistant HTTP API Server",
	Long:  "Outreach Assistant imports prospect targets from CSV, scrapes their public profiles, drafts personalized outreach messages and exports approved messages via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
