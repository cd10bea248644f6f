package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/domain/query"
	"github.com/jsamuelsen/quotable-api/internal/ports"
)

// TagService lists tags. Results are read through the cache when one is set.
type TagService struct {
	tags   ports.TagRepository
	cache  ports.Cache
	ttl    int
	logger *slog.Logger
}

// TagServiceConfig contains configuration for the tag service.
type TagServiceConfig struct {
	Tags ports.TagRepository

	// Cache is optional.
	Cache ports.Cache

	// TTLSeconds is the lifetime of cached tag lists. 0 keeps them until
	// they are refreshed.
	TTLSeconds int

	Logger *slog.Logger
}

// NewTagService creates a tag service. Panics if Tags is nil.
func NewTagService(cfg TagServiceConfig) *TagService {
	if cfg.Tags == nil {
		panic("app: TagServiceConfig.Tags is required")
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &TagService{
		tags:   cfg.Tags,
		cache:  cfg.Cache,
		ttl:    cfg.TTLSeconds,
		logger: cfg.Logger,
	}
}

// List returns every tag in the requested order.
func (s *TagService) List(ctx context.Context, p query.Params) ([]domain.Tag, error) {
	sort := query.NormalizeSort(p, query.TagSort)

	tags, err := readThrough(ctx, s.cache, s.logger, tagsKey(sort), s.ttl, s.loader(sort))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list tags", slog.Any("error", err))
		return nil, err
	}

	return tags, nil
}

// Refresh reloads the cached tag list for every sort order.
func (s *TagService) Refresh(ctx context.Context) error {
	for _, field := range query.TagSort.Fields {
		for _, order := range []query.Order{query.Ascending, query.Descending} {
			sort := query.SortSpec{Field: field.Field, Order: order}
			if err := refresh(ctx, s.cache, s.logger, tagsKey(sort), s.ttl, s.loader(sort)); err != nil {
				return fmt.Errorf("refreshing tags by %s %s: %w", sort.Field, sort.Order, err)
			}
		}
	}

	return nil
}

func (s *TagService) loader(sort query.SortSpec) func(context.Context) ([]domain.Tag, error) {
	return func(ctx context.Context) ([]domain.Tag, error) {
		tags, err := s.tags.List(ctx, sort)
		if tags == nil && err == nil {
			tags = []domain.Tag{}
		}
		return tags, err
	}
}

func tagsKey(sort query.SortSpec) string {
	return fmt.Sprintf(cacheKeyTagsFmt, sort.Field, sort.Order)
}
