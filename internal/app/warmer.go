package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher reloads one cached read model.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Warmer refreshes cached read models on a cron schedule.
type Warmer struct {
	cron       *cron.Cron
	refreshers []Refresher
	timeout    time.Duration
	logger     *slog.Logger
}

// WarmerConfig contains configuration for the cache warmer.
type WarmerConfig struct {
	// Schedule is a standard five-field cron expression or a descriptor
	// such as "@every 10m".
	Schedule string

	Refreshers []Refresher

	// Timeout bounds a single warm-up run. Defaults to 30s.
	Timeout time.Duration

	Logger *slog.Logger
}

// NewWarmer creates a warmer. The schedule is validated immediately.
func NewWarmer(cfg WarmerConfig) (*Warmer, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	w := &Warmer{
		cron:       cron.New(),
		refreshers: cfg.Refreshers,
		timeout:    cfg.Timeout,
		logger:     cfg.Logger,
	}

	if _, err := w.cron.AddFunc(cfg.Schedule, w.run); err != nil {
		return nil, fmt.Errorf("invalid cache warm schedule %q: %w", cfg.Schedule, err)
	}

	return w, nil
}

// Warm refreshes every read model concurrently.
func (w *Warmer) Warm(ctx context.Context) error {
	return FanOut(ctx, len(w.refreshers), w.refreshers, func(ctx context.Context, r Refresher) error {
		return r.Refresh(ctx)
	})
}

// Start runs an initial warm-up and starts the schedule.
func (w *Warmer) Start() {
	w.run()
	w.cron.Start()
}

// Stop stops the schedule and waits for a running warm-up to finish or ctx
// to end.
func (w *Warmer) Stop(ctx context.Context) {
	select {
	case <-w.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (w *Warmer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	start := time.Now()
	if err := w.Warm(ctx); err != nil {
		w.logger.Warn("cache warm-up failed", slog.Any("error", err))
		return
	}

	w.logger.Debug("cache warmed", slog.Duration("duration", time.Since(start)))
}
