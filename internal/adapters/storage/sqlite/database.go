// Package sqlite implements the quote, author and tag repositories on an
// embedded SQLite database with an FTS5 index for quote search.
package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/jsamuelsen/quotable-api/internal/adapters/storage/sqlite/migrations"
	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/platform/logging"
)

const memoryPath = ":memory:"

// Config holds database settings.
type Config struct {
	// Path is the database file. ":memory:" keeps everything in process.
	Path string

	// BusyTimeout makes SQLite wait on a locked database before failing.
	BusyTimeout time.Duration

	// MaxOpenConns bounds the connection pool. In-memory databases always
	// use a single connection.
	MaxOpenConns int

	// Migrate applies pending migrations on open.
	Migrate bool

	// Debug logs every statement at trace level.
	Debug bool
}

type queryLogHook struct {
	logger *slog.Logger
}

func (*queryLogHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *queryLogHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	h.logger.Log(ctx, logging.LevelTrace, "sql",
		slog.String("query", event.Query),
		slog.Duration("duration", time.Since(event.StartTime)),
	)
}

// Open connects to the database, applies pragmas and, when configured,
// brings the schema up to date.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*bun.DB, error) {
	if cfg.Path == "" {
		cfg.Path = memoryPath
	}

	if logger == nil {
		logger = slog.Default()
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.Path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	switch {
	case cfg.Path == memoryPath:
		sqldb.SetMaxOpenConns(1)
	case cfg.MaxOpenConns > 0:
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if cfg.Debug {
		db.AddQueryHook(&queryLogHook{logger: logger})
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WithStack(err)
	}

	pragmas := []string{"PRAGMA foreign_keys = ON"}
	if cfg.Path != memoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, errors.Wrapf(err, "failed to apply %q", pragma)
		}
	}

	if cfg.BusyTimeout > 0 {
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = ?", cfg.BusyTimeout.Milliseconds()); err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, "failed to set busy_timeout")
		}
	}

	if err := CheckFTS5Support(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.Migrate {
		group, err := migrations.BringUpToDate(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}

		if !group.IsZero() {
			logger.InfoContext(ctx, "database migrated", slog.String("group", group.String()))
		}
	}

	return db, nil
}

// CheckFTS5Support verifies FTS5 is available in the SQLite build.
func CheckFTS5Support(ctx context.Context, db bun.IDB) error {
	if _, err := db.ExecContext(ctx, "CREATE VIRTUAL TABLE IF NOT EXISTS temp._fts5_check USING fts5(probe)"); err != nil {
		return errors.New("FTS5 is not enabled on this SQLite build; quote search requires it")
	}

	_, _ = db.ExecContext(ctx, "DROP TABLE IF EXISTS temp._fts5_check")

	return nil
}

// HealthCheck reports whether the database answers queries.
type HealthCheck struct {
	db *bun.DB
}

// NewHealthCheck creates a health check for db.
func NewHealthCheck(db *bun.DB) *HealthCheck {
	return &HealthCheck{db: db}
}

// Name implements ports.HealthChecker.
func (h *HealthCheck) Name() string {
	return "sqlite"
}

// Check implements ports.HealthChecker.
func (h *HealthCheck) Check(ctx context.Context) error {
	if err := h.db.PingContext(ctx); err != nil {
		return domain.NewUnavailableError("sqlite", err.Error())
	}

	return nil
}

// storageError converts a driver failure into a domain error. sql.ErrNoRows
// becomes a not found error for entity and id; anything else keeps its stack.
func storageError(err error, entity, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError(entity, id)
	}

	return errors.WithStack(err)
}
