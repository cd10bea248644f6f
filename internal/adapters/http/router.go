package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotable-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotable-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotable-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotable-api/internal/platform/config"
	"github.com/jsamuelsen/quotable-api/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 15 * time.Second

// APIPrefix mirrors every API route under a versioned path.
const APIPrefix = "/api/v1"

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	Quotes  *handlers.QuoteHandler
	Authors *handlers.AuthorHandler
	Tags    *handlers.TagHandler
	Info    *handlers.InfoHandler

	// RateLimiter is optional. Without it requests are not limited.
	RateLimiter *middleware.RateLimiter

	// Timeout is the request deadline for API routes. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Context logger - request-scoped logger for everything below
//  3. Request ID - generate/extract request ID
//  4. Correlation ID - handle distributed tracing correlation
//  5. OpenTelemetry - tracing and metrics
//  6. Logging - request logging (skips health endpoints)
//  7. Rate limit - per client IP (skips health endpoints)
//  8. Timeout - request deadline on API routes
//
// Route groups:
//   - /-/ (internal): Health, build info and metrics
//   - / and /api/v1/ (public API): quotes, authors, tags and info
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(),
		middleware.ContextLogger(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(serviceName(cfg)),
		telemetry.Middleware(serviceName(cfg)),
		middleware.Logging(),
	)

	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}

	// Register health endpoints (no timeout for probes)
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	root := engine.Group("")
	apiV1 := engine.Group(APIPrefix)

	root.Use(middleware.Timeout(cfg.Timeout))
	apiV1.Use(middleware.Timeout(cfg.Timeout))

	setupAPIRoutes(root, cfg)
	setupAPIRoutes(apiV1, cfg)

	engine.NoRoute(func(c *gin.Context) {
		dto.AbortWithStatus(c, http.StatusNotFound, dto.MsgNotFound)
	})
}

// setupAPIRoutes registers the public API on rg.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Quotes != nil {
		cfg.Quotes.RegisterQuoteRoutes(rg)
	}

	if cfg.Authors != nil {
		cfg.Authors.RegisterAuthorRoutes(rg)
	}

	if cfg.Tags != nil {
		cfg.Tags.RegisterTagRoutes(rg)
	}

	if cfg.Info != nil {
		cfg.Info.RegisterInfoRoutes(rg)
	}
}

func serviceName(cfg RouterConfig) string {
	if cfg.AppConfig == nil || cfg.AppConfig.Name == "" {
		return "quotable-api"
	}

	return cfg.AppConfig.Name
}

// NewDefaultRouterConfig creates a RouterConfig with sensible defaults.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	healthHandler *handlers.HealthHandler,
) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		AppConfig:     appCfg,
		HealthHandler: healthHandler,
		Timeout:       DefaultRequestTimeout,
	}
}
