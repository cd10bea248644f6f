// Package app contains application services that orchestrate use cases.
// Services normalize request parameters, issue storage reads and assemble
// responses. They never see HTTP types.
package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/domain/query"
	"github.com/jsamuelsen/quotable-api/internal/ports"
)

// MsgNoMatchingQuotes is the not-found reason of the random endpoints.
const MsgNoMatchingQuotes = "Could not find any matching quotes"

// QuoteService orchestrates quote-related use cases.
// It depends on port interfaces, not concrete implementations,
// following the Dependency Inversion Principle.
type QuoteService struct {
	quotes         ports.QuoteRepository
	flags          ports.FeatureFlags
	limits         query.Limits
	maxRandomCount int
	logger         *slog.Logger
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Quotes ports.QuoteRepository

	// Flags is optional. Without it every flag takes its default.
	Flags ports.FeatureFlags

	// Limits defaults to query.DefaultLimits.
	Limits query.Limits

	// MaxRandomCount defaults to query.MaxRandomCount.
	MaxRandomCount int

	Logger *slog.Logger
}

// NewQuoteService creates a new quote service with the provided dependencies.
// Panics if Quotes is nil.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Quotes == nil {
		panic("app: QuoteServiceConfig.Quotes is required")
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.Limits == (query.Limits{}) {
		cfg.Limits = query.DefaultLimits()
	}

	if cfg.MaxRandomCount <= 0 {
		cfg.MaxRandomCount = query.MaxRandomCount
	}

	return &QuoteService{
		quotes:         cfg.Quotes,
		flags:          cfg.Flags,
		limits:         cfg.Limits,
		maxRandomCount: cfg.MaxRandomCount,
		logger:         cfg.Logger,
	}
}

// List returns one page of quotes filtered by author, tags and length.
func (s *QuoteService) List(ctx context.Context, p query.Params) (query.Envelope[domain.Quote], error) {
	filter, err := parseQuoteFilter(p)
	if err != nil {
		return query.Envelope[domain.Quote]{}, err
	}

	pagination := query.NormalizePagination(p, s.limits)
	page := query.PageOf(pagination, query.NormalizeSort(p, query.QuoteSort))

	return s.page(ctx, filter, page, pagination)
}

// Get retrieves a quote by its identifier.
func (s *QuoteService) Get(ctx context.Context, id string) (*domain.Quote, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		if !domain.IsNotFound(err) {
			s.logger.ErrorContext(ctx, "failed to fetch quote",
				slog.String("quote_id", id),
				slog.Any("error", err),
			)
		}
		return nil, err
	}

	return quote, nil
}

// Random returns up to limit randomly chosen quotes matching the filters.
// Returns a not found error when nothing matches.
func (s *QuoteService) Random(ctx context.Context, p query.Params) ([]domain.Quote, error) {
	filter, err := s.randomFilter(ctx, p)
	if err != nil {
		return nil, err
	}

	quotes, err := s.quotes.Sample(ctx, filter, query.RandomCount(p, s.maxRandomCount))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to sample quotes", slog.Any("error", err))
		return nil, err
	}

	if len(quotes) == 0 {
		return nil, domain.NewNoMatchError("quote", MsgNoMatchingQuotes)
	}

	return quotes, nil
}

// RandomOne returns a single random quote matching the filters.
// Returns a not found error when nothing matches.
func (s *QuoteService) RandomOne(ctx context.Context, p query.Params) (*domain.Quote, error) {
	filter, err := s.randomFilter(ctx, p)
	if err != nil {
		return nil, err
	}

	quotes, err := s.quotes.Sample(ctx, filter, 1)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to sample quotes", slog.Any("error", err))
		return nil, err
	}

	if len(quotes) == 0 {
		return nil, domain.NewNoMatchError("quote", MsgNoMatchingQuotes)
	}

	return &quotes[0], nil
}

// Search returns one page of quotes matching the free-text query parameter.
func (s *QuoteService) Search(ctx context.Context, p query.Params) (query.Envelope[domain.Quote], error) {
	raw := strings.TrimSpace(p.Get("query"))
	if raw == "" {
		return query.Envelope[domain.Quote]{}, domain.NewMissingParameterError("query")
	}

	parsed, err := query.ParseQuery(raw)
	if err != nil {
		return query.Envelope[domain.Quote]{}, err
	}

	filter := query.QuoteFilter{Text: s.textSearch(ctx, parsed)}
	pagination := query.NormalizePagination(p, s.limits)
	page := query.PageOf(pagination, query.NormalizeSort(p, query.SearchQuoteSort))

	s.logger.DebugContext(ctx, "searching quotes",
		slog.String("query", parsed.Query),
		slog.Bool("exact_phrase", parsed.ExactPhrase),
		slog.Bool("advanced", filter.Text.Advanced),
	)

	return s.page(ctx, filter, page, pagination)
}

func (s *QuoteService) page(
	ctx context.Context,
	filter query.QuoteFilter,
	page query.Page,
	pagination query.Pagination,
) (query.Envelope[domain.Quote], error) {
	quotes, total, err := Parallel2(ctx,
		func(ctx context.Context) ([]domain.Quote, error) { return s.quotes.List(ctx, filter, page) },
		func(ctx context.Context) (int, error) { return s.quotes.Count(ctx, filter) },
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list quotes", slog.Any("error", err))
		return query.Envelope[domain.Quote]{}, err
	}

	return query.BuildEnvelope(quotes, total, pagination), nil
}

func (s *QuoteService) randomFilter(ctx context.Context, p query.Params) (query.QuoteFilter, error) {
	filter, err := parseQuoteFilter(p)
	if err != nil {
		return query.QuoteFilter{}, err
	}

	if raw := p.Get("query"); raw != "" {
		parsed, err := query.ParseQuery(raw)
		if err != nil {
			return query.QuoteFilter{}, err
		}

		if !parsed.IsEmpty() {
			filter.Text = s.textSearch(ctx, parsed)
		}
	}

	return filter, nil
}

func (s *QuoteService) textSearch(ctx context.Context, parsed query.ParsedQuery) *query.TextSearch {
	advanced := true
	if s.flags != nil {
		advanced = s.flags.IsEnabled(ctx, ports.FlagAdvancedQuery, true)
	}

	return &query.TextSearch{Query: parsed, Advanced: advanced}
}

// parseQuoteFilter reads the author, tag and length filters shared by the
// quote list and random endpoints. authorSlug is a deprecated alias of author.
func parseQuoteFilter(p query.Params) (query.QuoteFilter, error) {
	author, err := query.ParseAuthor(p.First("author", "authorSlug"), p.Get("authorId"))
	if err != nil {
		return query.QuoteFilter{}, err
	}

	return query.QuoteFilter{
		Author: author,
		Tags:   query.ParseTags(p.Get("tags")),
		Length: query.ParseLength(p.Get("minLength"), p.Get("maxLength")),
	}, nil
}
