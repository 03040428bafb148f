package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 4934, cfg.HTTP.Port)
	assert.Equal(t, "EUR", cfg.API.Currency)
	assert.Equal(t, 180, cfg.Search.HorizonDays)
	assert.Equal(t, []time.Weekday{time.Friday}, cfg.DefaultDays())
	assert.Equal(t, 30*time.Second, cfg.FinderOptions().Timeout)
}

func TestLoadConfigOverlaysFile(t *testing.T) {
	path := writeConfig(t, `
http:
  port: 8080
api:
  market: ie
  currency: GBP
  currency_symbol: "£"
search:
  horizon_days: 90
  default_days: [saturday, sunday]
  timezone: UTC
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "ie", cfg.API.Market)
	assert.Equal(t, "GBP", cfg.API.Currency)
	assert.Equal(t, "£", cfg.API.CurrencySymbol)
	assert.Equal(t, "en", cfg.API.Language)
	assert.Equal(t, 90, cfg.Search.HorizonDays)
	assert.Equal(t, 30, cfg.Search.DefaultSpanDays)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, cfg.DefaultDays())
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoadConfigInvalid(t *testing.T) {
	path := writeConfig(t, `
search:
  horizon_days: 0
  default_days: [Funday]
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "horizon_days")
	assert.Contains(t, err.Error(), "Funday")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
