package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/domain/query"
)

func authorNames(authors []domain.Author) []string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		names = append(names, a.Name)
	}
	return names
}

func byName(limit, skip int) query.Page {
	return query.Page{
		Skip:  skip,
		Limit: limit,
		Sort:  query.SortSpec{Field: query.FieldName, Order: query.Ascending},
	}
}

func TestAuthorRepository_List(t *testing.T) {
	repo := NewAuthorRepository(newTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name   string
		filter query.AuthorFilterSet
		page   query.Page
		want   []string
	}{
		{
			name: "all by name",
			page: byName(0, 0),
			want: []string{"Albert Einstein", "John Lennon", "José Martí", "Steve Jobs", "William Shakespeare"},
		},
		{
			name: "second page",
			page: byName(2, 2),
			want: []string{"José Martí", "Steve Jobs"},
		},
		{
			name: "most quotes first",
			page: query.Page{Limit: 1, Sort: query.SortSpec{Field: query.FieldQuoteCount, Order: query.Descending}},
			want: []string{"Albert Einstein"},
		},
		{
			name:   "name contains",
			filter: query.AuthorFilterSet{Name: "einst"},
			page:   byName(0, 0),
			want:   []string{"Albert Einstein"},
		},
		{
			name:   "name without diacritics",
			filter: query.AuthorFilterSet{Name: "Jose"},
			page:   byName(0, 0),
			want:   []string{"José Martí"},
		},
		{
			name:   "slugs",
			filter: query.AuthorFilterSet{Slugs: []string{"steve-jobs", "john-lennon"}},
			page:   byName(0, 0),
			want:   []string{"John Lennon", "Steve Jobs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authors, err := repo.List(ctx, tt.filter, tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.want, authorNames(authors))
		})
	}
}

func TestAuthorRepository_Count(t *testing.T) {
	repo := NewAuthorRepository(newTestDB(t))
	ctx := context.Background()

	count, err := repo.Count(ctx, query.AuthorFilterSet{})
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	count, err = repo.Count(ctx, query.AuthorFilterSet{Name: "william"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = repo.Count(ctx, query.ParseAuthorListFilter(query.Params{"slug": "|"}))
	require.NoError(t, err)
	assert.Zero(t, count, "a slug list naming nothing matches nothing")

	authors, err := repo.List(ctx, query.ParseAuthorListFilter(query.Params{"slug": "|"}), byName(0, 0))
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestAuthorRepository_QuoteCounts(t *testing.T) {
	repo := NewAuthorRepository(newTestDB(t))

	authors, err := repo.List(context.Background(), query.AuthorFilterSet{}, byName(0, 0))
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, a := range authors {
		counts[a.Slug] = a.QuoteCount
	}

	assert.Equal(t, map[string]int{
		"albert-einstein":     2,
		"john-lennon":         1,
		"jose-marti":          0,
		"steve-jobs":          1,
		"william-shakespeare": 1,
	}, counts)
}

func TestAuthorRepository_Search(t *testing.T) {
	repo := NewAuthorRepository(newTestDB(t))
	ctx := context.Background()
	page := query.Page{Limit: 20}

	tests := []struct {
		name   string
		search query.AuthorSearch
		want   []string
	}{
		{
			name:   "single term",
			search: query.NewAuthorSearch("einstein", 2, false),
			want:   []string{"Albert Einstein"},
		},
		{
			name:   "autocomplete prefix",
			search: query.NewAuthorSearch("ein", 2, true),
			want:   []string{"Albert Einstein"},
		},
		{
			name:   "prefix without autocomplete",
			search: query.NewAuthorSearch("ein", 2, false),
			want:   []string{},
		},
		{
			name:   "threshold requires both terms",
			search: query.NewAuthorSearch("john einstein", 2, false),
			want:   []string{},
		},
		{
			name:   "threshold of one ranks by quote count",
			search: query.NewAuthorSearch("lennon einstein", 1, false),
			want:   []string{"Albert Einstein", "John Lennon"},
		},
		{
			name:   "exact name first",
			search: query.NewAuthorSearch("John Lennon", 1, true),
			want:   []string{"John Lennon"},
		},
		{
			name:   "diacritics are ignored",
			search: query.NewAuthorSearch("jose marti", 2, false),
			want:   []string{"José Martí"},
		},
		{
			name:   "honorifics are not terms",
			search: query.NewAuthorSearch("Dr. Einstein", 2, false),
			want:   []string{"Albert Einstein"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authors, err := repo.Search(ctx, tt.search, page)
			require.NoError(t, err)
			assert.Equal(t, tt.want, authorNames(authors))

			count, err := repo.CountSearch(ctx, tt.search)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), count)
		})
	}
}

func TestAuthorRepository_SearchEmpty(t *testing.T) {
	repo := NewAuthorRepository(newTestDB(t))
	ctx := context.Background()

	authors, err := repo.Search(ctx, query.AuthorSearch{}, query.Page{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, authors)

	count, err := repo.CountSearch(ctx, query.AuthorSearch{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAuthorRepository_Get(t *testing.T) {
	repo := NewAuthorRepository(newTestDB(t))
	ctx := context.Background()

	author, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Albert Einstein", author.Name)
	assert.Equal(t, "Physicist.", author.Bio)

	author, err = repo.GetBySlug(ctx, "jose-marti")
	require.NoError(t, err)
	assert.Equal(t, "a5", author.ID)

	_, err = repo.GetBySlug(ctx, "nobody")
	assert.True(t, domain.IsNotFound(err))

	_, err = repo.GetByID(ctx, "nobody")
	assert.True(t, domain.IsNotFound(err))
}
