package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/domain/query"
)

func TestPrepareDataset(t *testing.T) {
	ds := domain.Dataset{
		Quotes: []domain.Quote{
			{Content: "Héllo", Author: "Søren Kierkegaard", Tags: []string{"life", "Life", ""}},
			{ID: "q2", Content: "Two", Author: "Unknown Person", Tags: []string{"famous-quotes"}, DateAdded: "2020-01-01"},
		},
		Authors: []domain.Author{
			{ID: "a1", Name: "Søren Kierkegaard"},
			{ID: "dup", Name: "soren kierkegaard"},
		},
		Tags: []domain.Tag{{ID: "t1", Name: "famous-quotes"}, {Name: "unused"}},
	}

	quotes, authors, tags := prepareDataset(ds, "2026-03-01T00:00:00Z")

	require.Len(t, quotes, 2)
	assert.NotEmpty(t, quotes[0].ID)
	assert.Equal(t, 5, quotes[0].Length)
	assert.Equal(t, "soren-kierkegaard", quotes[0].AuthorSlug)
	assert.Equal(t, []string{"life"}, quotes[0].Tags)
	assert.Equal(t, "2026-03-01T00:00:00Z", quotes[0].DateAdded)
	assert.Equal(t, "2020-01-01", quotes[1].DateModified)

	require.Len(t, authors, 2)
	assert.Equal(t, "a1", authors[0].ID)
	assert.Equal(t, 1, authors[0].QuoteCount)
	assert.Equal(t, "Unknown Person", authors[1].Name)
	assert.Equal(t, "unknown-person", authors[1].Slug)
	assert.Equal(t, 1, authors[1].QuoteCount)

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
		assert.NotEmpty(t, tag.ID)
	}
	assert.Equal(t, []string{"life", "famous-quotes", "unused"}, names)
	assert.Equal(t, "t1", tags[1].ID)
}

func TestImporter_Reset(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	importer := NewImporter(db, discardLogger())

	_, err := importer.Import(ctx, testDataset(), ImportOptions{Now: fixedNow})
	require.Error(t, err, "importing the same ids twice without reset should fail")

	result, err := importer.Import(ctx, testDataset(), ImportOptions{Reset: true, Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Quotes: 5, Authors: 5, Tags: 6}, result)

	count, err := NewQuoteRepository(db).Count(ctx, query.QuoteFilter{})
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}
