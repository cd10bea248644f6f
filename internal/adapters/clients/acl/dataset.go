package acl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jsamuelsen/quotable-api/internal/adapters/clients"
	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/platform/logging"
)

// ReadDatasetDir loads a dataset from the JSON files in dir. The quotes file
// is required; the authors and tags files are optional.
func ReadDatasetDir(dir string) (domain.Dataset, error) {
	var ds domain.Dataset

	quotes, err := readFile(dir, QuotesFile, DecodeQuotes, true)
	if err != nil {
		return ds, err
	}

	authors, err := readFile(dir, AuthorsFile, DecodeAuthors, false)
	if err != nil {
		return ds, err
	}

	tags, err := readFile(dir, TagsFile, DecodeTags, false)
	if err != nil {
		return ds, err
	}

	return domain.Dataset{Quotes: quotes, Authors: authors, Tags: tags}, nil
}

func readFile[T any](dir, name string, decode func(io.Reader) ([]T, error), required bool) ([]T, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if errors.Is(err, os.ErrNotExist) && !required {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	return decode(f)
}

// DatasetClientConfig configures a DatasetClient.
type DatasetClientConfig struct {
	// Client must have its BaseURL set to the dataset location.
	Client *clients.Client

	Logger *slog.Logger
}

// DatasetClient fetches dataset files from a remote host.
type DatasetClient struct {
	client *clients.Client
	logger *slog.Logger
}

// NewDatasetClient creates a dataset client. Panics if Client is nil.
func NewDatasetClient(cfg DatasetClientConfig) *DatasetClient {
	if cfg.Client == nil {
		panic("DatasetClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &DatasetClient{client: cfg.Client, logger: logger}
}

// Fetch downloads the dataset. As with ReadDatasetDir, only the quotes file
// must exist.
func (c *DatasetClient) Fetch(ctx context.Context) (domain.Dataset, error) {
	var ds domain.Dataset

	quotes, err := fetchFile(ctx, c, QuotesFile, DecodeQuotes, true)
	if err != nil {
		return ds, err
	}

	authors, err := fetchFile(ctx, c, AuthorsFile, DecodeAuthors, false)
	if err != nil {
		return ds, err
	}

	tags, err := fetchFile(ctx, c, TagsFile, DecodeTags, false)
	if err != nil {
		return ds, err
	}

	c.logger.InfoContext(ctx, "dataset fetched",
		slog.Int("quotes", len(quotes)),
		slog.Int("authors", len(authors)),
		slog.Int("tags", len(tags)),
	)

	return domain.Dataset{Quotes: quotes, Authors: authors, Tags: tags}, nil
}

func fetchFile[T any](ctx context.Context, c *DatasetClient, name string, decode func(io.Reader) ([]T, error), required bool) ([]T, error) {
	c.logger.Log(ctx, logging.LevelTrace, "fetching dataset file", slog.String("file", name))

	resp, err := c.client.Get(ctx, name)
	if err != nil {
		return nil, MapHTTPError(nil, err, c.client.ServiceName(), name)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound && !required {
		c.logger.DebugContext(ctx, "optional dataset file missing", slog.String("file", name))
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, MapHTTPError(resp, nil, c.client.ServiceName(), name)
	}

	items, err := decode(resp.Body)
	if err != nil {
		return nil, domain.NewUnavailableError(c.client.ServiceName(), err.Error())
	}

	return items, nil
}
