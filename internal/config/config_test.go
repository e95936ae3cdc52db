package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "info")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 0, cfg.ProviderMaxRetries)
	assert.Equal(t, 3, cfg.TideDays)
	assert.Equal(t, "Pacific/Honolulu", cfg.RegionTimezone)
	assert.Equal(t, time.Duration(0), cfg.WarmInterval)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Equal(t, "Pacific/Honolulu", cfg.Location().String())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OPENWEATHER_API_KEY", "owm-key")
	t.Setenv("WORLDTIDES_API_KEY", "wt-key")
	t.Setenv("PROVIDER_TIMEOUT", "5s")
	t.Setenv("PROVIDER_MAX_RETRIES", "2")
	t.Setenv("TIDE_DAYS", "7")
	t.Setenv("REGION_TIMEZONE", "UTC")
	t.Setenv("WARM_INTERVAL", "5m")
	t.Setenv("WARM_REGIONS", "oahu, maui,,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "owm-key", cfg.OpenWeatherAPIKey)
	assert.Equal(t, "wt-key", cfg.WorldTidesAPIKey)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 2, cfg.ProviderMaxRetries)
	assert.Equal(t, 7, cfg.TideDays)
	assert.Equal(t, 5*time.Minute, cfg.WarmInterval)
	assert.Equal(t, []string{"oahu", "maui"}, cfg.WarmRegions)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"tide days too high": {"TIDE_DAYS", "8"},
		"tide days zero":     {"TIDE_DAYS", "0"},
		"bad duration":       {"PROVIDER_TIMEOUT", "soon"},
		"zero timeout":       {"PROVIDER_TIMEOUT", "0s"},
		"bad log level":      {"LOG_LEVEL", "verbose"},
		"bad timezone":       {"REGION_TIMEZONE", "Mars/Olympus"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("PORT", "8080")
			t.Setenv("LOG_LEVEL", "info")
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
