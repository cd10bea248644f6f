package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/segmentio/encoding/json"

	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/ports"
)

// Cache keys for read-mostly results.
const (
	cacheKeyCounts  = "quotable:counts"
	cacheKeyTagsFmt = "quotable:tags:%s:%s"
)

// readThrough returns the cached value of key or loads and stores it.
// Cache failures are logged and never fail the read. A nil cache always loads.
func readThrough[T any](
	ctx context.Context,
	cache ports.Cache,
	logger *slog.Logger,
	key string,
	ttlSeconds int,
	load func(context.Context) (T, error),
) (T, error) {
	if cache == nil {
		return load(ctx)
	}

	raw, err := cache.Get(ctx, key)
	switch {
	case err == nil:
		var v T
		if jsonErr := json.Unmarshal(raw, &v); jsonErr == nil {
			return v, nil
		}

		logger.WarnContext(ctx, "discarding undecodable cache entry", slog.String("key", key))
	case !errors.Is(err, domain.ErrNotFound):
		logger.WarnContext(ctx, "cache read failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	store(ctx, cache, logger, key, ttlSeconds, v)

	return v, nil
}

// refresh loads a value and overwrites its cache entry.
func refresh[T any](
	ctx context.Context,
	cache ports.Cache,
	logger *slog.Logger,
	key string,
	ttlSeconds int,
	load func(context.Context) (T, error),
) error {
	v, err := load(ctx)
	if err != nil {
		return err
	}

	if cache != nil {
		store(ctx, cache, logger, key, ttlSeconds, v)
	}

	return nil
}

func store[T any](ctx context.Context, cache ports.Cache, logger *slog.Logger, key string, ttlSeconds int, v T) {
	raw, err := json.Marshal(v)
	if err != nil {
		logger.WarnContext(ctx, "cache encode failed", slog.String("key", key), slog.Any("error", err))
		return
	}

	if err := cache.Set(ctx, key, raw, ttlSeconds); err != nil {
		logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}
