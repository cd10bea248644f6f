package sqlite

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/jsamuelsen/quotable-api/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
}

func testDataset() domain.Dataset {
	return domain.Dataset{
		Quotes: []domain.Quote{
			{
				ID:        "q1",
				Content:   "Life is what happens when you're busy making other plans.",
				Author:    "John Lennon",
				Tags:      []string{"famous-quotes", "life"},
				DateAdded: "2020-01-01",
			},
			{
				ID:        "q2",
				Content:   "The only way to do great work is to love what you do.",
				Author:    "Steve Jobs",
				Tags:      []string{"work", "love"},
				DateAdded: "2020-01-02",
			},
			{
				ID:        "q3",
				Content:   "In the middle of difficulty lies opportunity.",
				Author:    "Albert Einstein",
				AuthorID:  "legacy-einstein",
				Tags:      []string{"wisdom", "famous-quotes"},
				DateAdded: "2020-01-03",
			},
			{
				ID:        "q4",
				Content:   "Imagination is more important than knowledge.",
				Author:    "Albert Einstein",
				AuthorID:  "legacy-einstein",
				Tags:      []string{"famous-quotes", "wisdom", "knowledge"},
				DateAdded: "2020-01-04",
			},
			{
				ID:        "q5",
				Content:   "Love all, trust a few, do wrong to none.",
				Author:    "William Shakespeare",
				Tags:      []string{"love", "Love"},
				DateAdded: "2020-01-05",
			},
		},
		Authors: []domain.Author{
			{ID: "a1", Name: "Albert Einstein", Bio: "Physicist."},
			{ID: "a2", Name: "Steve Jobs"},
			{ID: "a3", Name: "John Lennon"},
			{ID: "a4", Name: "William Shakespeare"},
			{ID: "a5", Name: "José Martí"},
		},
	}
}

// newTestDB opens a migrated in-memory database loaded with testDataset.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	ctx := context.Background()

	db, err := Open(ctx, Config{Path: memoryPath, Migrate: true}, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = NewImporter(db, discardLogger()).Import(ctx, testDataset(), ImportOptions{Now: fixedNow})
	require.NoError(t, err)

	return db
}
