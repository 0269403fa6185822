package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dgraph-io/badger/v4"

	"vitals-insights/internal/aggregators"
	internalhttp "vitals-insights/internal/http"
	"vitals-insights/internal/ingestors"
	"vitals-insights/internal/queries"
	"vitals-insights/internal/shared/configs"
	"vitals-insights/internal/shared/loggers"
	"vitals-insights/internal/stores"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server
	db        *badger.DB
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "vitals-insights").
		Logger()

	// Initialize the rollup store. One store client is constructed here and
	// injected everywhere; nothing holds ambient global state.
	db, err := stores.NewBadgerDB(config.Storage.Dir, config.Storage.InMemory)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	rollupStore := stores.NewBadgerRollupStore(db)

	// Initialize query engine
	periodAggregator := aggregators.NewPeriodAggregator()
	queryService := queries.NewQueryService(rollupStore, periodAggregator)

	// Initialize ingest surface
	ingestService := ingestors.NewRollupIngestService(rollupStore)

	// Initialize http router
	responseCache, err := internalhttp.NewResponseCache(
		config.Query.CacheMaxBytes,
		time.Duration(config.Query.CacheTTLSeconds)*time.Second,
	)
	if err != nil {
		return nil, err
	}
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(queryService, ingestService, responseCache, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:    config,
		appLogger: appLogger,
		server:    server,
		db:        db,
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting vitals-insights service on port %d (log_level=%s, storage_dir=%s)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Storage.Dir)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Close the store
	if err := app.db.Close(); err != nil {
		return fmt.Errorf("storage close failed: %w", err)
	}
	app.appLogger.Info().Msg("Storage closed")

	return nil
}
