// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Tilawa HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (and .env in development).
//  3. Connect to PostgreSQL (pgxpool) and run migrations.
//  4. Connect to Redis when REDIS_URL is set.
//  5. Open the Quran data source and warm the catalogue.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/taibuivan/tilawa/data"
	"github.com/taibuivan/tilawa/internal/adapter/provider"
	"github.com/taibuivan/tilawa/internal/api"
	"github.com/taibuivan/tilawa/internal/core/catalog"
	"github.com/taibuivan/tilawa/internal/core/recitation"
	"github.com/taibuivan/tilawa/internal/library/reader"
	"github.com/taibuivan/tilawa/internal/platform/config"
	"github.com/taibuivan/tilawa/internal/platform/constants"
	"github.com/taibuivan/tilawa/internal/platform/migration"
	pgstore "github.com/taibuivan/tilawa/internal/platform/postgres"
	redisstore "github.com/taibuivan/tilawa/internal/platform/redis"
	"github.com/taibuivan/tilawa/internal/platform/sec"
	"github.com/taibuivan/tilawa/internal/quran/normalize"
	"github.com/taibuivan/tilawa/internal/users/session"
)

const appName = "tilawa"

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
		if cfg.IsProduction() {
			log.Warn("debug_logging_in_production")
		}
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("quran_source", cfg.QuranSource),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	if cfg.MigrationPath != "" {
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")
	} else {
		must(log, migration.RunUpFS(cfg.DatabaseURL, data.Migrations, data.MigrationsDir, log), "run embedded migrations")
	}

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	health := api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
	}

	var cache catalog.Cache
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		cache = catalog.NewRedisCache(rdb, cfg.CatalogCacheTTL)
		health.CheckCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	} else {
		log.Warn("redis_disabled", slog.String("cache", "memory"))
		cache = catalog.NewMemoryCache(cfg.CatalogCacheTTL)
	}

	// ── 5. Quran Catalogue ────────────────────────────────────────────────
	source, err := provider.Open(cfg.QuranSource, provider.HTTPOptions{
		BaseURL:     cfg.QuranAPIBaseURL,
		ListPath:    cfg.QuranAPIListPath,
		ChapterPath: cfg.QuranAPIChapterPath,
		Timeout:     cfg.ProviderTimeout,
	}, cfg.QuranDataFile, log)
	must(log, err, "open quran source")

	normalizer := normalize.Default()
	if cfg.NormalizerAliasesPath != "" {
		aliases, err := normalize.LoadAliasesFile(cfg.NormalizerAliasesPath)
		must(log, err, "load normalizer aliases")
		normalizer = normalize.New(aliases)
	}

	reciters, err := loadReciters(cfg)
	must(log, err, "load reciter catalogue")

	catalogService, err := catalog.NewService(catalog.Dependencies{
		Source:      source,
		Normalizer:  normalizer,
		Cache:       cache,
		Reciters:    reciters,
		Logger:      log,
		Concurrency: cfg.ProviderConcurrency,
	})
	must(log, err, "initialize catalogue")

	// A cold upstream must not block startup; the chapters load on first use instead.
	if numbers := cfg.PrefetchChapters(); len(numbers) > 0 {
		if _, err := catalogService.Prefetch(startupCtx, numbers); err != nil {
			log.Warn("catalog_prefetch_failed", slog.Any("error", err))
		}
	}

	// ── 6. Sessions ───────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.SessionSecret, constants.AuthIssuer, cfg.SessionTTL)
	must(log, err, "initialize session tokens")
	log.Info("session_tokens_ready", slog.Duration("ttl", tokens.TimeToLive()))

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(health, log)

	readerService := reader.NewService(reader.NewPostgresRepository(pool), catalogService, reciters, log)

	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Session:    session.NewHandler(session.NewService(tokens, log)),
		Catalog:    catalog.NewHandler(catalogService),
		Recitation: recitation.NewHandler(reciters, catalogService),
		Reader:     reader.NewHandler(readerService),
	}

	// The rate limiter cleanup goroutine stops with this context.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokens, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

func loadReciters(cfg *config.Config) (*recitation.Catalog, error) {
	if cfg.RecitersPath != "" {
		return recitation.LoadCatalogFile(cfg.RecitersPath, cfg.AudioBaseURL)
	}
	return recitation.DefaultCatalog(cfg.AudioBaseURL)
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String(constants.FieldApp, appName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
