//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/jsamuelsen/quotable-api/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotable-api/internal/adapters/flags"
	apihttp "github.com/jsamuelsen/quotable-api/internal/adapters/http"
	"github.com/jsamuelsen/quotable-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotable-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotable-api/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/quotable-api/internal/app"
	"github.com/jsamuelsen/quotable-api/internal/domain/query"
	"github.com/jsamuelsen/quotable-api/internal/platform/config"
	"github.com/jsamuelsen/quotable-api/internal/ports"
)

// datasetDir holds the fixture dataset shared by every integration test.
const datasetDir = "../testdata/dataset"

// Fixture sizes, matching the files under datasetDir.
const (
	fixtureQuotes  = 6
	fixtureAuthors = 5
	fixtureTags    = 7
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// appOptions tweaks the in-process service.
type appOptions struct {
	cache       ports.Cache
	rateLimiter *middleware.RateLimiter
	features    map[string]any
}

// testApp is the service wired the same way cmd/service wires it, backed by a
// seeded SQLite file in a temp directory.
type testApp struct {
	db     *bun.DB
	server *httptest.Server
}

// seedDatabase opens a migrated SQLite file under t.TempDir and imports the
// fixture dataset.
func seedDatabase(t *testing.T) *bun.DB {
	t.Helper()

	ctx := context.Background()
	logger := discardLogger()

	db, err := sqlite.Open(ctx, sqlite.Config{
		Path:         filepath.Join(t.TempDir(), "quotable.db"),
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 4,
		Migrate:      true,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ds, err := acl.ReadDatasetDir(datasetDir)
	require.NoError(t, err)

	result, err := sqlite.NewImporter(db, logger).Import(ctx, ds, sqlite.ImportOptions{Reset: true})
	require.NoError(t, err)
	require.Equal(t, fixtureQuotes, result.Quotes)

	return db
}

func newTestApp(t *testing.T, opts appOptions) *testApp {
	t.Helper()

	logger := discardLogger()
	db := seedDatabase(t)

	features := opts.features
	if features == nil {
		features = map[string]any{ports.FlagAdvancedQuery: true}
	}
	featureFlags, err := flags.New(features)
	require.NoError(t, err)

	limits := query.Limits{DefaultLimit: 20, MaxLimit: 150, MaxSkip: 10000}

	quoteRepo := sqlite.NewQuoteRepository(db)
	authorRepo := sqlite.NewAuthorRepository(db)
	tagRepo := sqlite.NewTagRepository(db)

	quotes := app.NewQuoteService(app.QuoteServiceConfig{
		Quotes:         quoteRepo,
		Flags:          featureFlags,
		Limits:         limits,
		MaxRandomCount: 50,
		Logger:         logger,
	})
	authors := app.NewAuthorService(app.AuthorServiceConfig{
		Authors: authorRepo,
		Quotes:  quoteRepo,
		Flags:   featureFlags,
		Limits:  limits,
		Logger:  logger,
	})
	tags := app.NewTagService(app.TagServiceConfig{
		Tags:       tagRepo,
		Cache:      opts.cache,
		TTLSeconds: 60,
		Logger:     logger,
	})
	info := app.NewInfoService(app.InfoServiceConfig{
		Quotes:     quoteRepo,
		Authors:    authorRepo,
		Tags:       tagRepo,
		Cache:      opts.cache,
		TTLSeconds: 60,
		Version:    "integration",
		Logger:     logger,
	})

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(sqlite.NewHealthCheck(db)))

	routerCfg := apihttp.NewDefaultRouterConfig(
		logger,
		&config.AppConfig{Name: "quotable-integration", Version: "integration", Environment: "test"},
		handlers.NewHealthHandler(registry, handlers.NewBuildInfo("integration", "none", "now")),
	)
	routerCfg.Quotes = handlers.NewQuoteHandler(quotes)
	routerCfg.Authors = handlers.NewAuthorHandler(authors)
	routerCfg.Tags = handlers.NewTagHandler(tags)
	routerCfg.Info = handlers.NewInfoHandler(info)
	routerCfg.RateLimiter = opts.rateLimiter

	engine := gin.New()
	apihttp.SetupRouter(engine, routerCfg)

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return &testApp{db: db, server: server}
}
