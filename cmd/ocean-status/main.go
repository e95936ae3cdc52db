package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/ocean-status/internal/api/http"
	"github.com/i474232898/ocean-status/internal/config"
	"github.com/i474232898/ocean-status/internal/ocean"
	"github.com/i474232898/ocean-status/internal/ocean/providers"
	"github.com/i474232898/ocean-status/internal/scheduler"
	"github.com/i474232898/ocean-status/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	regions, err := config.LoadRegistry(cfg.RegionsFile)
	if err != nil {
		slog.Error("failed to load regions", "error", err)
		os.Exit(1)
	}

	loc := cfg.Location()

	// Shared HTTP client for outbound provider calls. Per-call deadlines come
	// from the providers' own timeout.
	httpClient := &http.Client{}

	provOpts := []providers.Option{
		providers.WithTimeout(cfg.ProviderTimeout),
		providers.WithMaxRetries(cfg.ProviderMaxRetries),
		providers.WithLocation(loc),
	}
	weatherProv := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, provOpts...)
	tideProv := providers.NewWorldTidesProvider(httpClient, cfg.WorldTidesAPIKey, provOpts...)

	if cfg.OpenWeatherAPIKey == "" {
		slog.Warn("OPENWEATHER_API_KEY not set, weather will be synthesized")
	}
	if cfg.WorldTidesAPIKey == "" {
		slog.Warn("WORLDTIDES_API_KEY not set, tides will be synthesized")
	}

	cache := store.NewResponseCache(store.DefaultTTL, nil)

	service := ocean.NewService(cache, regions, weatherProv, tideProv,
		ocean.WithLocation(loc),
		ocean.WithTideDays(cfg.TideDays),
	)

	warmer := scheduler.New(cfg.WarmRegions, cfg.WarmInterval, service)
	if err := warmer.Start(); err != nil {
		slog.Error("failed to start cache warmer", "error", err)
		os.Exit(1)
	}
	defer warmer.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "ocean-status",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// Room for both providers to time out and fall back.
		WriteTimeout: cfg.ProviderTimeout + 10*time.Second,
		ErrorHandler: httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "ocean-status",
			"regions": len(regions.All()),
		})
	})

	httpapi.RegisterRoutes(app, service, httpapi.WithRequestTimeout(cfg.ProviderTimeout+5*time.Second))

	go func() {
		slog.Info("listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
}
