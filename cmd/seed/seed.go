package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/jsamuelsen/quotable-api/internal/adapters/clients"
	"github.com/jsamuelsen/quotable-api/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotable-api/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/platform/config"
	"github.com/jsamuelsen/quotable-api/internal/platform/logging"
)

var (
	errNoSource      = errors.New("one of --dir or --url is required")
	errTooManySource = errors.New("--dir and --url cannot be combined")
)

// newCommand builds the seed command. Summaries are written to out.
func newCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "seed",
		Usage:   "Load the quotes dataset into the database",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Directory holding quotes.json and optionally authors.json and tags.json",
			},
			&cli.StringFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Usage:   "Base URL serving the dataset files",
			},
			&cli.BoolFlag{
				Name:  "remote",
				Usage: "Fetch from services.dataset.base_url",
			},
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "Delete existing quotes, authors and tags first",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Database file, overriding database.path",
			},
			&cli.StringFlag{
				Name:    "profile",
				Usage:   "Configuration profile",
				Value:   "local",
				Sources: cli.EnvVars("APP_ENVIRONMENT"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return seed(ctx, cmd, out)
		},
	}
}

func seed(ctx context.Context, cmd *cli.Command, out io.Writer) error {
	cfg, err := config.Load(cmd.String("profile"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if path := cmd.String("db"); path != "" {
		cfg.Database.Path = path
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "quotable-seed",
		Version: cfg.App.Version,
	})

	ds, err := loadDataset(ctx, cmd, cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Database.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sqlite.Open(ctx, sqlite.Config{
		Path:         cfg.Database.Path,
		BusyTimeout:  cfg.Database.BusyTimeout,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		Migrate:      true,
	}, logger)
	if err != nil {
		return fmt.Errorf("opening database %q: %w", cfg.Database.Path, err)
	}
	defer db.Close()

	result, err := sqlite.NewImporter(db, logger).Import(ctx, ds, sqlite.ImportOptions{Reset: cmd.Bool("reset")})
	if err != nil {
		return fmt.Errorf("importing dataset: %w", err)
	}

	_, err = fmt.Fprintf(out, "imported %d quotes, %d authors, %d tags into %s\n",
		result.Quotes, result.Authors, result.Tags, cfg.Database.Path)

	return err
}

func loadDataset(ctx context.Context, cmd *cli.Command, cfg *config.Config, logger *slog.Logger) (domain.Dataset, error) {
	dir := cmd.String("dir")
	remote := cmd.String("url") != "" || cmd.Bool("remote")

	switch {
	case dir != "" && remote:
		return domain.Dataset{}, errTooManySource
	case dir != "":
		return acl.ReadDatasetDir(dir)
	case !remote:
		return domain.Dataset{}, errNoSource
	}

	baseURL := cmd.String("url")
	if baseURL == "" {
		baseURL = cfg.Services.Dataset.BaseURL
	}

	client, err := clients.New(&clients.Config{
		BaseURL:     baseURL,
		ServiceName: cfg.Services.Dataset.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("creating dataset client: %w", err)
	}

	return acl.NewDatasetClient(acl.DatasetClientConfig{Client: client, Logger: logger}).Fetch(ctx)
}
