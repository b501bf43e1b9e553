package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"location-finder/internal/cache"
	"location-finder/internal/config"
	"location-finder/internal/geocoding"
	"location-finder/internal/metrics"
	"location-finder/internal/timezone"

	_ "location-finder/docs" // Ensure docs are imported
)

const shutdownTimeout = 10 * time.Second

// App encapsulates application dependencies
type App struct {
	router           *gin.Engine
	logger           *slog.Logger
	geocodingService geocoding.Service
	timezoneService  timezone.Service // nil when timezone annotation is disabled
	store            cache.Store
	cfg              *config.Config
}

// NewApp creates a new application with injected dependencies
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := cache.New(ctx, cfg.Cache, cfg.Redis)
	if err != nil {
		return nil, err
	}

	geocodingSvc := geocoding.NewGeocodingService(cfg.Geocoding, cfg.Cache, store, metrics.NewMetrics(), logger)

	var timezoneSvc timezone.Service
	if cfg.App.TimezoneEnabled {
		timezoneSvc, err = timezone.NewService()
		if err != nil {
			// Reverse geocoding still works without the zone name
			logger.Warn("timezone lookup disabled", "error", err)
		}
	}

	app := NewAppWithServices(cfg, logger, geocodingSvc, timezoneSvc)
	app.store = store
	return app, nil
}

// NewAppWithServices builds the router around already constructed services.
// This is useful for testing with mock services.
func NewAppWithServices(
	cfg *config.Config,
	logger *slog.Logger,
	geocodingSvc geocoding.Service,
	timezoneSvc timezone.Service,
) *App {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	router := gin.New()
	router.Use(gin.CustomRecovery(recoveryHandler(logger)))
	router.Use(requestLogger(logger))
	if cors := corsMiddleware(cfg.Server.CORSOrigins); cors != nil {
		router.Use(cors)
	}

	registerValidatorTagNames()

	app := &App{
		router:           router,
		logger:           logger,
		geocodingService: geocodingSvc,
		timezoneService:  timezoneSvc,
		store:            cache.NewNoop(),
		cfg:              cfg,
	}

	app.registerRoutes()

	return app
}

// Run serves HTTP on addr until ctx is cancelled, then drains in-flight requests
func (app *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// Close releases the result cache
func (app *App) Close() error {
	return app.store.Close()
}
