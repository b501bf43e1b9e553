package main

//go:generate go run github.com/swaggo/swag/cmd/swag@latest init -g main.go -o ../../docs --parseDependency

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"location-finder/internal/config"
)

// @title Location Finder API
// @version 1.0
// @description Place search, forward geocoding and reverse geocoding backed by OpenStreetMap Nominatim.
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger) // Set as default logger for the application

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create app
	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close cache", "error", err)
		}
	}()

	// Start server
	logger.Info("starting server",
		"addr", cfg.GetServerAddr(),
		"cache_driver", cfg.Cache.Driver,
		"cache_enabled", cfg.Cache.Enabled,
	)
	if err := app.Run(ctx, cfg.GetServerAddr()); err != nil {
		logger.Error("server failed", "error", err)
		log.Fatal(err)
	}
}
