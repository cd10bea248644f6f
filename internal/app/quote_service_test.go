package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/domain/query"
	"github.com/jsamuelsen/quotable-api/internal/mocks"
	"github.com/jsamuelsen/quotable-api/internal/ports"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newQuoteService(t *testing.T) (*QuoteService, *mocks.MockQuoteRepository, *mocks.MockFeatureFlags) {
	t.Helper()

	repo := mocks.NewMockQuoteRepository(t)
	flags := mocks.NewMockFeatureFlags(t)

	svc := NewQuoteService(QuoteServiceConfig{
		Quotes: repo,
		Flags:  flags,
		Logger: discardLogger(),
	})

	return svc, repo, flags
}

func TestNewQuoteService_PanicsWithoutRepository(t *testing.T) {
	assert.Panics(t, func() {
		NewQuoteService(QuoteServiceConfig{Logger: slog.Default()})
	})
}

func TestNewQuoteService_Defaults(t *testing.T) {
	svc := NewQuoteService(QuoteServiceConfig{Quotes: mocks.NewMockQuoteRepository(t)})

	require.NotNil(t, svc)
	assert.NotNil(t, svc.logger)
	assert.Equal(t, query.DefaultLimits(), svc.limits)
	assert.Equal(t, query.MaxRandomCount, svc.maxRandomCount)
}

func TestQuoteService_List(t *testing.T) {
	svc, repo, _ := newQuoteService(t)

	wantFilter := query.QuoteFilter{
		Author: query.AuthorsBySlug{Slugs: []string{"albert-einstein"}},
		Tags:   query.AnyOfTags{Tags: []string{"Love", "Life"}},
		Length: &query.LengthRange{Min: 10, Max: query.MaxLength},
	}
	wantPage := query.Page{
		Skip:  10,
		Limit: 10,
		Sort:  query.SortSpec{Field: query.FieldAuthor, Order: query.Ascending},
	}
	quotes := []domain.Quote{{ID: "q1"}, {ID: "q2"}}

	repo.EXPECT().List(mock.Anything, wantFilter, wantPage).Return(quotes, nil)
	repo.EXPECT().Count(mock.Anything, wantFilter).Return(12, nil)

	env, err := svc.List(context.Background(), query.Params{
		"author":    "Albert Einstein",
		"tags":      "love|life",
		"minLength": "10",
		"page":      "2",
		"limit":     "10",
		"sortBy":    "author",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, env.Count)
	assert.Equal(t, 12, env.TotalCount)
	assert.Equal(t, 2, env.Page)
	assert.Equal(t, 2, env.TotalPages)
	assert.Nil(t, env.LastItemIndex)
	assert.Equal(t, quotes, env.Results)
}

func TestQuoteService_List_AuthorSlugAlias(t *testing.T) {
	svc, repo, _ := newQuoteService(t)

	want := query.QuoteFilter{Author: query.AuthorsBySlug{Slugs: []string{"plato"}}}
	repo.EXPECT().List(mock.Anything, want, mock.Anything).Return(nil, nil)
	repo.EXPECT().Count(mock.Anything, want).Return(0, nil)

	env, err := svc.List(context.Background(), query.Params{"authorSlug": "plato"})

	require.NoError(t, err)
	assert.Empty(t, env.Results)
	assert.NotNil(t, env.Results)
}

func TestQuoteService_List_RejectsCommaAuthors(t *testing.T) {
	svc, _, _ := newQuoteService(t)

	_, err := svc.List(context.Background(), query.Params{"author": "Plato,Socrates"})

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestQuoteService_List_StorageError(t *testing.T) {
	svc, repo, _ := newQuoteService(t)

	repo.EXPECT().List(mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("disk I/O error"))
	repo.EXPECT().Count(mock.Anything, mock.Anything).Return(0, nil).Maybe()

	_, err := svc.List(context.Background(), query.Params{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
}

func TestQuoteService_Get(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		quote    *domain.Quote
		repoErr  error
		errCheck func(error) bool
	}{
		{
			name:  "success",
			id:    "q-123",
			quote: &domain.Quote{ID: "q-123", Content: "Specific quote", Author: "Author"},
		},
		{
			name:     "not found",
			id:       "nonexistent",
			repoErr:  domain.NewNotFoundError("quote", "nonexistent"),
			errCheck: domain.IsNotFound,
		},
		{
			name:     "storage unavailable",
			id:       "q-456",
			repoErr:  domain.NewUnavailableError("sqlite", "database is locked"),
			errCheck: domain.IsUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newQuoteService(t)
			repo.EXPECT().GetByID(mock.Anything, tt.id).Return(tt.quote, tt.repoErr)

			quote, err := svc.Get(context.Background(), tt.id)

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err))
				assert.Nil(t, quote)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.quote, quote)
			}
		})
	}
}

func TestQuoteService_Random(t *testing.T) {
	svc, repo, flags := newQuoteService(t)

	want := query.QuoteFilter{
		Tags: query.AllOfTags{Tags: []string{"Wisdom"}},
		Text: &query.TextSearch{Query: query.ParsedQuery{Query: "life"}, Advanced: true},
	}

	flags.EXPECT().IsEnabled(mock.Anything, ports.FlagAdvancedQuery, true).Return(true)
	repo.EXPECT().Sample(mock.Anything, want, 3).Return([]domain.Quote{{ID: "q1"}}, nil)

	quotes, err := svc.Random(context.Background(), query.Params{"tags": "wisdom", "query": "life", "limit": "3"})

	require.NoError(t, err)
	assert.Len(t, quotes, 1)
}

func TestQuoteService_Random_NoMatch(t *testing.T) {
	svc, repo, _ := newQuoteService(t)

	want := query.QuoteFilter{Author: query.AuthorsByID{IDs: []string{"does-not-exist"}}}
	repo.EXPECT().Sample(mock.Anything, want, 1).Return(nil, nil)

	quotes, err := svc.Random(context.Background(), query.Params{"authorId": "does-not-exist"})

	require.Error(t, err)
	assert.Nil(t, quotes)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, MsgNoMatchingQuotes, err.Error())
}

func TestQuoteService_Random_CapsCount(t *testing.T) {
	svc, repo, _ := newQuoteService(t)

	repo.EXPECT().Sample(mock.Anything, query.QuoteFilter{}, query.MaxRandomCount).
		Return([]domain.Quote{{ID: "q1"}}, nil)

	_, err := svc.Random(context.Background(), query.Params{"limit": "1000"})
	require.NoError(t, err)
}

func TestQuoteService_Random_InvalidQuery(t *testing.T) {
	svc, _, _ := newQuoteService(t)

	_, err := svc.Random(context.Background(), query.Params{"query": "foo:bar"})

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestQuoteService_RandomOne(t *testing.T) {
	svc, repo, _ := newQuoteService(t)

	repo.EXPECT().Sample(mock.Anything, query.QuoteFilter{}, 1).Return([]domain.Quote{{ID: "q9"}}, nil)

	quote, err := svc.RandomOne(context.Background(), query.Params{"limit": "10"})

	require.NoError(t, err)
	assert.Equal(t, "q9", quote.ID)
}

func TestQuoteService_RandomOne_NoMatch(t *testing.T) {
	svc, repo, _ := newQuoteService(t)

	repo.EXPECT().Sample(mock.Anything, mock.Anything, 1).Return([]domain.Quote{}, nil)

	quote, err := svc.RandomOne(context.Background(), query.Params{"authorId": "does-not-exist"})

	require.Error(t, err)
	assert.Nil(t, quote)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, MsgNoMatchingQuotes, err.Error())
}

func TestQuoteService_Search(t *testing.T) {
	tests := []struct {
		name     string
		advanced bool
	}{
		{"advanced query enabled", true},
		{"advanced query disabled", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, flags := newQuoteService(t)

			want := query.QuoteFilter{Text: &query.TextSearch{
				Query:    query.ParsedQuery{Query: "(content:love OR tags:love)"},
				Advanced: tt.advanced,
			}}
			wantPage := query.Page{
				Limit: query.DefaultLimit,
				Sort:  query.SortSpec{Field: query.FieldRelevance, Order: query.Descending},
			}

			flags.EXPECT().IsEnabled(mock.Anything, ports.FlagAdvancedQuery, true).Return(tt.advanced)
			repo.EXPECT().List(mock.Anything, want, wantPage).Return([]domain.Quote{{ID: "q1"}}, nil)
			repo.EXPECT().Count(mock.Anything, want).Return(1, nil)

			env, err := svc.Search(context.Background(), query.Params{"query": "content:love"})

			require.NoError(t, err)
			assert.Equal(t, 1, env.TotalCount)
			assert.Equal(t, 1, env.TotalPages)
		})
	}
}

func TestQuoteService_Search_Errors(t *testing.T) {
	tests := []struct {
		name     string
		params   query.Params
		errCheck func(error) bool
	}{
		{"missing query", query.Params{}, domain.IsMissingParameter},
		{"blank query", query.Params{"query": "  "}, domain.IsMissingParameter},
		{"too many operators", query.Params{"query": "a OR b OR c OR d OR e OR f OR g"}, domain.IsValidation},
		{"invalid prefix", query.Params{"query": "year:1900"}, domain.IsValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newQuoteService(t)

			_, err := svc.Search(context.Background(), tt.params)

			require.Error(t, err)
			assert.True(t, tt.errCheck(err))
		})
	}
}

func TestQuoteService_Search_WithoutFlagsDefaultsToAdvanced(t *testing.T) {
	repo := mocks.NewMockQuoteRepository(t)
	svc := NewQuoteService(QuoteServiceConfig{Quotes: repo, Logger: discardLogger()})

	isAdvanced := mock.MatchedBy(func(f query.QuoteFilter) bool { return f.Text != nil && f.Text.Advanced })
	repo.EXPECT().List(mock.Anything, isAdvanced, mock.Anything).Return(nil, nil)
	repo.EXPECT().Count(mock.Anything, isAdvanced).Return(0, nil)

	_, err := svc.Search(context.Background(), query.Params{"query": "life"})
	require.NoError(t, err)
}
