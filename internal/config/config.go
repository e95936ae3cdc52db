package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type AppConfig struct {
	Port     string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// Empty credentials switch the matching provider to synthesized data.
	OpenWeatherAPIKey string `envconfig:"OPENWEATHER_API_KEY"`
	WorldTidesAPIKey  string `envconfig:"WORLDTIDES_API_KEY"`

	// ProviderTimeout bounds each upstream call, weather and tides alike.
	ProviderTimeout    time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"15s" validate:"gt=0"`
	ProviderMaxRetries int           `envconfig:"PROVIDER_MAX_RETRIES" default:"0" validate:"gte=0,lte=5"`

	TideDays       int    `envconfig:"TIDE_DAYS" default:"3" validate:"gte=1,lte=7"`
	RegionTimezone string `envconfig:"REGION_TIMEZONE" default:"Pacific/Honolulu" validate:"required"`
	RegionsFile    string `envconfig:"REGIONS_FILE"`

	// Cache warmer, disabled when WarmInterval is zero.
	WarmInterval time.Duration `envconfig:"WARM_INTERVAL" default:"0s" validate:"gte=0"`
	WarmRegions  []string      `envconfig:"WARM_REGIONS"`
}

// Load reads configuration from the environment (and .env when present),
// applying defaults and validating the result.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := time.LoadLocation(cfg.RegionTimezone); err != nil {
		return nil, fmt.Errorf("invalid REGION_TIMEZONE: %w", err)
	}

	warm := cfg.WarmRegions[:0]
	for _, id := range cfg.WarmRegions {
		if id = strings.TrimSpace(id); id != "" {
			warm = append(warm, id)
		}
	}
	cfg.WarmRegions = warm

	return &cfg, nil
}

// Location returns the configured region zone. Load has already validated it.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.RegionTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SlogLevel maps LOG_LEVEL onto a slog level.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
