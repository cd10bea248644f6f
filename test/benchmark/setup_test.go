package benchmark

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotable-api/internal/adapters/cache"
	"github.com/jsamuelsen/quotable-api/internal/adapters/flags"
	apihttp "github.com/jsamuelsen/quotable-api/internal/adapters/http"
	"github.com/jsamuelsen/quotable-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotable-api/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/quotable-api/internal/app"
	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/domain/query"
	"github.com/jsamuelsen/quotable-api/internal/platform/config"
	"github.com/jsamuelsen/quotable-api/internal/ports"
)

const (
	benchQuotes  = 2000
	benchAuthors = 50
)

var (
	benchTags  = []string{"wisdom", "love", "life", "work", "humor", "friendship", "science", "famous-quotes"}
	benchWords = []string{"life", "love", "time", "truth", "courage", "knowledge", "failure", "success", "friend", "dream"}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// benchDataset generates a deterministic dataset. Author 0 is Albert Einstein
// so field-prefixed searches have something to find.
func benchDataset() domain.Dataset {
	authors := make([]domain.Author, benchAuthors)
	for i := range authors {
		name := fmt.Sprintf("Author %d", i)
		if i == 0 {
			name = "Albert Einstein"
		}
		authors[i] = domain.Author{ID: fmt.Sprintf("a%d", i), Name: name, Bio: "Bio of " + name}
	}

	quotes := make([]domain.Quote, benchQuotes)
	for i := range quotes {
		a := authors[i%benchAuthors]
		quotes[i] = domain.Quote{
			ID: fmt.Sprintf("q%d", i),
			Content: fmt.Sprintf("The %s of %s is the %s of %s, number %d.",
				benchWords[i%len(benchWords)],
				benchWords[(i/3)%len(benchWords)],
				benchWords[(i/7)%len(benchWords)],
				benchWords[(i/11)%len(benchWords)],
				i),
			Author:    a.Name,
			Tags:      []string{benchTags[i%len(benchTags)], benchTags[(i/5)%len(benchTags)]},
			DateAdded: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i%365).Format(time.DateOnly),
		}
	}

	return domain.Dataset{Quotes: quotes, Authors: authors}
}

// setupAPIRouter wires the API over an in-memory database and memory cache.
func setupAPIRouter(b *testing.B) *gin.Engine {
	b.Helper()

	ctx := context.Background()
	logger := discardLogger()

	db, err := sqlite.Open(ctx, sqlite.Config{Path: ":memory:", MaxOpenConns: 1, Migrate: true}, logger)
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = db.Close() })

	if _, err := sqlite.NewImporter(db, logger).Import(ctx, benchDataset(), sqlite.ImportOptions{}); err != nil {
		b.Fatal(err)
	}

	featureFlags, err := flags.New(map[string]any{ports.FlagAdvancedQuery: true})
	if err != nil {
		b.Fatal(err)
	}

	limits := query.Limits{DefaultLimit: 20, MaxLimit: 150, MaxSkip: 10000}
	readCache := cache.NewMemory(128, time.Hour)

	quoteRepo := sqlite.NewQuoteRepository(db)
	authorRepo := sqlite.NewAuthorRepository(db)
	tagRepo := sqlite.NewTagRepository(db)

	cfg := apihttp.NewDefaultRouterConfig(logger, &config.AppConfig{Name: "bench"}, setupHealthHandler())
	cfg.Quotes = handlers.NewQuoteHandler(app.NewQuoteService(app.QuoteServiceConfig{
		Quotes:         quoteRepo,
		Flags:          featureFlags,
		Limits:         limits,
		MaxRandomCount: 50,
		Logger:         logger,
	}))
	cfg.Authors = handlers.NewAuthorHandler(app.NewAuthorService(app.AuthorServiceConfig{
		Authors: authorRepo,
		Quotes:  quoteRepo,
		Flags:   featureFlags,
		Limits:  limits,
		Logger:  logger,
	}))
	cfg.Tags = handlers.NewTagHandler(app.NewTagService(app.TagServiceConfig{
		Tags:       tagRepo,
		Cache:      readCache,
		TTLSeconds: 3600,
		Logger:     logger,
	}))
	cfg.Info = handlers.NewInfoHandler(app.NewInfoService(app.InfoServiceConfig{
		Quotes:     quoteRepo,
		Authors:    authorRepo,
		Tags:       tagRepo,
		Cache:      readCache,
		TTLSeconds: 3600,
		Version:    "bench",
		Logger:     logger,
	}))

	router := gin.New()
	apihttp.SetupRouter(router, cfg)

	return router
}
