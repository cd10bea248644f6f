package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// into adapts fn to errgroup.Go, storing its result in dst.
func into[T any](ctx context.Context, dst *T, fn func(context.Context) (T, error)) func() error {
	return func() error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}

		*dst = v

		return nil
	}
}

// Parallel2 runs two reads concurrently, typically a page and its total
// count. The first failure cancels the other read and zero values are
// returned with it.
//
//	quotes, total, err := Parallel2(ctx,
//	    func(ctx context.Context) ([]domain.Quote, error) { return repo.List(ctx, filter, page) },
//	    func(ctx context.Context) (int, error) { return repo.Count(ctx, filter) },
//	)
func Parallel2[A, B any](
	ctx context.Context,
	fa func(context.Context) (A, error),
	fb func(context.Context) (B, error),
) (A, B, error) {
	var (
		a A
		b B
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(into(gctx, &a, fa))
	g.Go(into(gctx, &b, fb))

	if err := g.Wait(); err != nil {
		var (
			za A
			zb B
		)

		return za, zb, fmt.Errorf("parallel read: %w", err)
	}

	return a, b, nil
}

// Parallel3 is Parallel2 for three reads.
func Parallel3[A, B, C any](
	ctx context.Context,
	fa func(context.Context) (A, error),
	fb func(context.Context) (B, error),
	fc func(context.Context) (C, error),
) (A, B, C, error) {
	var (
		a A
		b B
		c C
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(into(gctx, &a, fa))
	g.Go(into(gctx, &b, fb))
	g.Go(into(gctx, &c, fc))

	if err := g.Wait(); err != nil {
		var (
			za A
			zb B
			zc C
		)

		return za, zb, zc, fmt.Errorf("parallel read: %w", err)
	}

	return a, b, c, nil
}

// FanOut calls fn for every item with at most workers calls in flight.
// Items not yet started are skipped once a call fails or ctx ends.
func FanOut[T any](ctx context.Context, workers int, items []T, fn func(context.Context, T) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for _, item := range items {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error { return fn(gctx, item) })
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("fan out failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("fan out failed: %w", err)
	}

	return nil
}
