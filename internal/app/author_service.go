package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/domain/query"
	"github.com/jsamuelsen/quotable-api/internal/ports"
)

// authorQuotesPage selects every quote of an author, newest first.
var authorQuotesPage = query.Page{
	Sort: query.SortSpec{Field: query.FieldDateAdded, Order: query.Descending},
}

// AuthorService orchestrates author listing, lookup and search.
type AuthorService struct {
	authors ports.AuthorRepository
	quotes  ports.QuoteRepository
	flags   ports.FeatureFlags
	limits  query.Limits
	logger  *slog.Logger
}

// AuthorServiceConfig contains configuration for the author service.
type AuthorServiceConfig struct {
	Authors ports.AuthorRepository
	Quotes  ports.QuoteRepository

	// Flags supplies the default search match threshold. Optional.
	Flags  ports.FeatureFlags
	Limits query.Limits
	Logger *slog.Logger
}

// NewAuthorService creates an author service. Panics if a repository is nil.
func NewAuthorService(cfg AuthorServiceConfig) *AuthorService {
	if cfg.Authors == nil || cfg.Quotes == nil {
		panic("app: AuthorServiceConfig requires Authors and Quotes")
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.Limits == (query.Limits{}) {
		cfg.Limits = query.DefaultLimits()
	}

	return &AuthorService{
		authors: cfg.Authors,
		quotes:  cfg.Quotes,
		flags:   cfg.Flags,
		limits:  cfg.Limits,
		logger:  cfg.Logger,
	}
}

// List returns one page of authors filtered by name and slug.
func (s *AuthorService) List(ctx context.Context, p query.Params) (query.Envelope[domain.Author], error) {
	filter := query.ParseAuthorListFilter(p)
	pagination := query.NormalizePagination(p, s.limits)
	page := query.PageOf(pagination, query.NormalizeSort(p, query.AuthorSort))

	authors, total, err := Parallel2(ctx,
		func(ctx context.Context) ([]domain.Author, error) { return s.authors.List(ctx, filter, page) },
		func(ctx context.Context) (int, error) { return s.authors.Count(ctx, filter) },
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list authors", slog.Any("error", err))
		return query.Envelope[domain.Author]{}, err
	}

	return query.BuildEnvelope(authors, total, pagination), nil
}

// GetByID returns an author and all of their quotes.
func (s *AuthorService) GetByID(ctx context.Context, id string) (*domain.AuthorProfile, error) {
	author, err := s.authors.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupFailed(ctx, "author_id", id, err)
	}

	quotes, err := s.quotes.List(ctx, quotesBy(author.Slug), authorQuotesPage)
	if err != nil {
		return nil, s.lookupFailed(ctx, "author_id", id, err)
	}

	return profile(author, quotes), nil
}

// GetBySlug returns an author and all of their quotes. The author and the
// quotes are read concurrently.
func (s *AuthorService) GetBySlug(ctx context.Context, slug string) (*domain.AuthorProfile, error) {
	author, quotes, err := Parallel2(ctx,
		func(ctx context.Context) (*domain.Author, error) { return s.authors.GetBySlug(ctx, slug) },
		func(ctx context.Context) ([]domain.Quote, error) {
			return s.quotes.List(ctx, quotesBy(slug), authorQuotesPage)
		},
	)
	if err != nil {
		return nil, s.lookupFailed(ctx, "author_slug", slug, err)
	}

	return profile(author, quotes), nil
}

// Search returns one page of authors whose names match the query parameter.
func (s *AuthorService) Search(ctx context.Context, p query.Params) (query.Envelope[domain.Author], error) {
	search, err := query.ParseAuthorSearch(p, s.matchThreshold(ctx))
	if err != nil {
		return query.Envelope[domain.Author]{}, err
	}

	pagination := query.NormalizePagination(p, s.limits)
	if search.IsEmpty() {
		return query.BuildEnvelope[domain.Author](nil, 0, pagination), nil
	}

	page := query.PageOf(pagination, query.SortSpec{Field: query.FieldRelevance, Order: query.Descending})

	s.logger.DebugContext(ctx, "searching authors",
		slog.Any("terms", search.Terms),
		slog.Int("min_match", search.MinMatch),
		slog.Bool("autocomplete", search.Autocomplete),
	)

	authors, total, err := Parallel2(ctx,
		func(ctx context.Context) ([]domain.Author, error) { return s.authors.Search(ctx, search, page) },
		func(ctx context.Context) (int, error) { return s.authors.CountSearch(ctx, search) },
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to search authors", slog.Any("error", err))
		return query.Envelope[domain.Author]{}, err
	}

	return query.BuildEnvelope(authors, total, pagination), nil
}

func (s *AuthorService) matchThreshold(ctx context.Context) int {
	if s.flags == nil {
		return query.DefaultMatchThreshold
	}

	return s.flags.GetInt(ctx, ports.FlagAuthorMatchThreshold, query.DefaultMatchThreshold)
}

func (s *AuthorService) lookupFailed(ctx context.Context, key, value string, err error) error {
	if !domain.IsNotFound(err) {
		s.logger.ErrorContext(ctx, "failed to fetch author",
			slog.String(key, value),
			slog.Any("error", err),
		)
	}

	return err
}

func quotesBy(slug string) query.QuoteFilter {
	return query.QuoteFilter{Author: query.AuthorsBySlug{Slugs: []string{slug}}}
}

func profile(author *domain.Author, quotes []domain.Quote) *domain.AuthorProfile {
	if quotes == nil {
		quotes = []domain.Quote{}
	}

	return &domain.AuthorProfile{Author: *author, Quotes: quotes}
}
