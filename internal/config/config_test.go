package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/outreach")
	t.Setenv("PORT", "")
	t.Setenv("SCRAPER_MODE", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("PAGE_SIZE", "")
	t.Setenv("DEFAULT_SESSION", "")
}

func TestLoad_Defaults(t *testing.T) {
	validEnv(t)

	cfg := Load()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, ScraperModeDemo, cfg.ScraperMode)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, "default", cfg.DefaultSession)
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestLoad_Overrides(t *testing.T) {
	validEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("SCRAPER_MODE", "browser")
	t.Setenv("PAGE_SIZE", "50")

	cfg := Load()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ScraperModeBrowser, cfg.ScraperMode)
	assert.Equal(t, 50, cfg.PageSize)
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	validEnv(t)
	t.Setenv("DATABASE_URL", "")

	cfg := Load()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestValidate_UnknownScraperMode(t *testing.T) {
	validEnv(t)
	t.Setenv("SCRAPER_MODE", "telepathy")

	cfg := Load()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCRAPER_MODE")
}

func TestValidate_BadPort(t *testing.T) {
	validEnv(t)
	t.Setenv("PORT", "99999")

	cfg := Load()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestValidate_NonNumericPortFallsBack(t *testing.T) {
	validEnv(t)
	t.Setenv("PORT", "not-a-number")

	cfg := Load()
	assert.Equal(t, 4000, cfg.Port)
}
