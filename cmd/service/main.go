// Package main is the entry point for the quotes API service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/uptrace/bun"

	"github.com/jsamuelsen/quotable-api/internal/adapters/cache"
	"github.com/jsamuelsen/quotable-api/internal/adapters/flags"
	"github.com/jsamuelsen/quotable-api/internal/adapters/http"
	"github.com/jsamuelsen/quotable-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotable-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotable-api/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/quotable-api/internal/app"
	"github.com/jsamuelsen/quotable-api/internal/platform/config"
	"github.com/jsamuelsen/quotable-api/internal/platform/logging"
	"github.com/jsamuelsen/quotable-api/internal/platform/telemetry"
	"github.com/jsamuelsen/quotable-api/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Open storage
	db, err := openDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	// 6. Create health registry
	healthRegistry := ports.NewHealthRegistry(ports.WithCheckTimeout(cfg.Server.RequestTimeout))
	if err := healthRegistry.Register(sqlite.NewHealthCheck(db)); err != nil {
		return fmt.Errorf("registering database health check: %w", err)
	}

	// 7. Create the read model cache
	readCache, closeCache, err := openCache(ctx, cfg.Cache, healthRegistry, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	featureFlags, err := flags.New(cfg.Features)
	if err != nil {
		return fmt.Errorf("loading feature flags: %w", err)
	}

	// 8. Create application services
	quoteRepo := sqlite.NewQuoteRepository(db)
	authorRepo := sqlite.NewAuthorRepository(db)
	tagRepo := sqlite.NewTagRepository(db)

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Quotes:         quoteRepo,
		Flags:          featureFlags,
		Limits:         cfg.API.Limits(),
		MaxRandomCount: cfg.API.MaxRandomCount,
		Logger:         logger,
	})
	authorService := app.NewAuthorService(app.AuthorServiceConfig{
		Authors: authorRepo,
		Quotes:  quoteRepo,
		Flags:   featureFlags,
		Limits:  cfg.API.Limits(),
		Logger:  logger,
	})
	tagService := app.NewTagService(app.TagServiceConfig{
		Tags:       tagRepo,
		Cache:      readCache,
		TTLSeconds: cfg.Cache.TTL,
		Logger:     logger,
	})
	infoService := app.NewInfoService(app.InfoServiceConfig{
		Quotes:     quoteRepo,
		Authors:    authorRepo,
		Tags:       tagRepo,
		Cache:      readCache,
		TTLSeconds: cfg.Cache.TTL,
		Version:    cfg.App.Version,
		Logger:     logger,
	})

	// 9. Schedule cache warm-ups
	if readCache != nil && cfg.Cache.WarmSchedule != "" {
		warmer, err := app.NewWarmer(app.WarmerConfig{
			Schedule:   cfg.Cache.WarmSchedule,
			Refreshers: []app.Refresher{tagService, infoService},
			Logger:     logger,
		})
		if err != nil {
			return err
		}

		warmer.Start()
		defer warmer.Stop(ctx)
	}

	// 10. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)

	routerCfg := http.NewDefaultRouterConfig(
		logger,
		&cfg.App,
		handlers.NewHealthHandler(healthRegistry, buildInfo),
	)
	routerCfg.Quotes = handlers.NewQuoteHandler(quoteService)
	routerCfg.Authors = handlers.NewAuthorHandler(authorService)
	routerCfg.Tags = handlers.NewTagHandler(tagService)
	routerCfg.Info = handlers.NewInfoHandler(infoService)
	routerCfg.Timeout = cfg.Server.RequestTimeout

	if cfg.RateLimit.Enabled {
		routerCfg.RateLimiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
			Limit:        cfg.RateLimit.Limit,
			Window:       cfg.RateLimit.Window,
			MaxClients:   cfg.RateLimit.MaxClients,
			SkipPrefixes: []string{"/-/"},
		})
	}

	// 11. Create HTTP server and router
	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), routerCfg)

	// 12. Start server (non-blocking)
	serverErr := server.Start()

	// 13. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*bun.DB, error) {
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sqlite.Open(ctx, sqlite.Config{
		Path:         cfg.Path,
		BusyTimeout:  cfg.BusyTimeout,
		MaxOpenConns: cfg.MaxOpenConns,
		Migrate:      cfg.Migrate,
		Debug:        cfg.Debug,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("opening database %q: %w", cfg.Path, err)
	}

	return db, nil
}

// openCache returns nil when caching is disabled. The returned close func is
// always safe to call.
func openCache(
	ctx context.Context,
	cfg config.CacheConfig,
	registry ports.HealthRegistry,
	logger *slog.Logger,
) (ports.Cache, func(), error) {
	logger.Info("configuring read cache",
		slog.String("driver", cfg.Driver),
		slog.Int("ttl_seconds", cfg.TTL),
	)

	switch cfg.Driver {
	case config.CacheDriverRedis:
		rc, err := cache.NewRedis(ctx, cache.RedisConfig{
			URL:          cfg.Redis.URL,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			KeyPrefix:    cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, func() {}, err
		}

		logger.Info("connected to redis", slog.String("redis_url", cfg.Redis.URL))

		if err := registry.Register(rc); err != nil {
			_ = rc.Close()
			return nil, func() {}, fmt.Errorf("registering redis health check: %w", err)
		}

		return rc, func() { _ = rc.Close() }, nil

	case config.CacheDriverMemory:
		return cache.NewMemory(cfg.MemorySize, time.Duration(cfg.TTL)*time.Second), func() {}, nil

	default:
		return nil, func() {}, nil
	}
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
