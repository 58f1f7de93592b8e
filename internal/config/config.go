// Package config provides environment-driven configuration for the outreach assistant.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Scraper modes
const (
	ScraperModeDemo    = "demo"
	ScraperModeBrowser = "browser"
)

// Config holds process configuration. Values come from the environment;
// main loads a .env file first when one exists.
type Config struct {
	Port           int    // PORT, default 4000
	DatabaseURL    string // DATABASE_URL, required for serve/seed/reset
	ScraperMode    string // SCRAPER_MODE: demo or browser, default demo
	GeminiAPIKey   string // GEMINI_API_KEY; empty selects the local drafting stub
	GeminiModel    string // GEMINI_MODEL, default gemini-1.5-flash
	PageSize       int    // PAGE_SIZE for target listing, default 20
	DefaultSession string // DEFAULT_SESSION for callers without a session header
}

// Load reads configuration from the environment, applying defaults
func Load() *Config {
	return &Config{
		Port:           envInt("PORT", 4000),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		ScraperMode:    envString("SCRAPER_MODE", ScraperModeDemo),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    envString("GEMINI_MODEL", "gemini-1.5-flash"),
		PageSize:       envInt("PAGE_SIZE", 20),
		DefaultSession: envString("DEFAULT_SESSION", "default"),
	}
}

// Validate checks that the configuration has usable values
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required")
	}
	if c.ScraperMode != ScraperModeDemo && c.ScraperMode != ScraperModeBrowser {
		return fmt.Errorf("config error: SCRAPER_MODE must be %q or %q, got %q",
			ScraperModeDemo, ScraperModeBrowser, c.ScraperMode)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("config error: PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
