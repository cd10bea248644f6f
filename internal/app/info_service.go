package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/domain/query"
	"github.com/jsamuelsen/quotable-api/internal/ports"
)

// InfoService reports the size of the dataset.
type InfoService struct {
	quotes  ports.QuoteRepository
	authors ports.AuthorRepository
	tags    ports.TagRepository
	cache   ports.Cache
	ttl     int
	version string
	logger  *slog.Logger
}

// InfoServiceConfig contains configuration for the info service.
type InfoServiceConfig struct {
	Quotes  ports.QuoteRepository
	Authors ports.AuthorRepository
	Tags    ports.TagRepository

	// Cache is optional.
	Cache      ports.Cache
	TTLSeconds int

	// Version is reported by Info.
	Version string

	Logger *slog.Logger
}

// NewInfoService creates an info service. Panics if a repository is nil.
func NewInfoService(cfg InfoServiceConfig) *InfoService {
	if cfg.Quotes == nil || cfg.Authors == nil || cfg.Tags == nil {
		panic("app: InfoServiceConfig requires Quotes, Authors and Tags")
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &InfoService{
		quotes:  cfg.Quotes,
		authors: cfg.Authors,
		tags:    cfg.Tags,
		cache:   cfg.Cache,
		ttl:     cfg.TTLSeconds,
		version: cfg.Version,
		logger:  cfg.Logger,
	}
}

// Info returns the collection sizes and the API version.
func (s *InfoService) Info(ctx context.Context) (*domain.Info, error) {
	counts, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Info{Version: s.version, Count: *counts}, nil
}

// Count returns the number of quotes, authors and tags.
func (s *InfoService) Count(ctx context.Context) (*domain.Counts, error) {
	counts, err := readThrough(ctx, s.cache, s.logger, cacheKeyCounts, s.ttl, s.count)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to count collections", slog.Any("error", err))
		return nil, err
	}

	return &counts, nil
}

// Refresh recounts the collections and overwrites the cached counts.
func (s *InfoService) Refresh(ctx context.Context) error {
	return refresh(ctx, s.cache, s.logger, cacheKeyCounts, s.ttl, s.count)
}

func (s *InfoService) count(ctx context.Context) (domain.Counts, error) {
	quotes, authors, tags, err := Parallel3(ctx,
		func(ctx context.Context) (int, error) { return s.quotes.Count(ctx, query.QuoteFilter{}) },
		func(ctx context.Context) (int, error) { return s.authors.Count(ctx, query.AuthorFilterSet{}) },
		s.tags.Count,
	)
	if err != nil {
		return domain.Counts{}, err
	}

	return domain.Counts{Quotes: quotes, Authors: authors, Tags: tags}, nil
}
