// Package main is the entry point for the trip planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/pkordes/tripplanner/api"
	"github.com/pkordes/tripplanner/internal/app"
	"github.com/pkordes/tripplanner/internal/archive"
	"github.com/pkordes/tripplanner/internal/config"
	"github.com/pkordes/tripplanner/internal/events"
	"github.com/pkordes/tripplanner/internal/handler"
	"github.com/pkordes/tripplanner/internal/middleware"
	"github.com/pkordes/tripplanner/internal/planner"
	"github.com/pkordes/tripplanner/internal/repo"
	"github.com/pkordes/tripplanner/internal/service"
	"github.com/pkordes/tripplanner/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// goose needs a database/sql handle; it is closed once migrations ran.
	applied, err := migrate(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied", "count", applied)

	// --- Notifiers --------------------------------------------------------
	var notifiers []service.Notifier
	if cfg.Archive.Enabled() {
		arc, err := archive.New(cfg.Archive)
		if err != nil {
			slog.Error("failed to create archive client", "error", err)
			os.Exit(1)
		}
		if err := arc.EnsureBucket(ctx); err != nil {
			slog.Error("failed to prepare archive bucket", "bucket", cfg.Archive.Bucket, "error", err)
			os.Exit(1)
		}
		notifiers = append(notifiers, arc)
		slog.Info("itinerary archive enabled", "endpoint", cfg.Archive.Endpoint, "bucket", cfg.Archive.Bucket)
	}
	if cfg.Events.Enabled() {
		pub := events.NewPublisher(cfg.Events)
		defer func() {
			if err := pub.Close(); err != nil {
				slog.Error("failed to close event publisher", "error", err)
			}
		}()
		notifiers = append(notifiers, pub)
		slog.Info("itinerary events enabled", "brokers", cfg.Events.Brokers, "topic", cfg.Events.Topic)
	}

	// --- Services ---------------------------------------------------------
	providers := app.NewProviders(cfg.Providers)
	slog.Info("providers configured",
		"places", providers.PlacesSource,
		"photos", providers.Photos != nil,
		"geonames", providers.Countries != nil,
	)

	itineraryRepo := repo.NewItineraryRepo(pool)
	itinerarySvc := service.NewItineraryService(itineraryRepo, logger, notifiers...)
	preferenceSvc := service.NewPreferenceService(repo.NewPreferenceRepo(pool))
	exportSvc := service.NewExportService(itineraryRepo)
	destinationSvc := service.NewDestinationService(service.DestinationDeps{
		Summaries:     providers.Summaries,
		Countries:     providers.Countries,
		Facts:         providers.Facts,
		Photos:        providers.Photos,
		PhotosPerPage: cfg.Providers.PhotosPerPage,
	}, logger)

	sessions := planner.NewStore(planner.Deps{
		Geocoder:      providers.Geocoder,
		Places:        providers.Places,
		Photos:        providers.Photos,
		Itineraries:   itinerarySvc,
		Preferences:   preferenceSvc,
		PlacesRadiusM: cfg.Providers.PlacesRadiusM,
		PlacesLimit:   cfg.Providers.PlacesLimit,
		PhotosPerPage: cfg.Providers.PhotosPerPage,
		Log:           logger,
	}, cfg.SessionTTL)
	go sessions.Run(ctx, time.Minute)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → MaxBodySize.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	srvHandler := handler.NewServer(handler.Deps{
		Itineraries:  itinerarySvc,
		Export:       exportSvc,
		Preferences:  preferenceSvc,
		Destinations: destinationSvc,
		Sessions:     sessions,
		OpenAPI:      api.OpenAPI,
		Log:          logger,
	})
	r.Mount("/", srvHandler.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Destination lookups fan out to several upstreams, so the write
	// timeout leaves room for a slow provider.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Providers.Timeout + 20*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func migrate(ctx context.Context, dsn string) (int, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	return migrations.Up(ctx, db)
}
