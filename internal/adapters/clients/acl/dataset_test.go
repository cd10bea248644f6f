package acl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotable-api/internal/adapters/clients"
	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/platform/config"
)

const (
	quotesJSON  = `[{"_id": "q1", "content": "Stay hungry.", "author": "Steve Jobs", "tags": ["life"]}]`
	authorsJSON = `[{"_id": "a1", "name": "Steve Jobs"}]`
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestReadDatasetDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, QuotesFile, quotesJSON)
	writeFile(t, dir, AuthorsFile, authorsJSON)

	ds, err := ReadDatasetDir(dir)
	require.NoError(t, err)
	assert.Len(t, ds.Quotes, 1)
	assert.Len(t, ds.Authors, 1)
	assert.Empty(t, ds.Tags)
}

func TestReadDatasetDir_QuotesRequired(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, AuthorsFile, authorsJSON)

	_, err := ReadDatasetDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening quotes.json")
}

func newDatasetClient(t *testing.T, handler http.Handler) *DatasetClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := clients.New(&clients.Config{
		BaseURL:     server.URL + "/data",
		ServiceName: "dataset",
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     2,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     20 * time.Millisecond,
			Multiplier:      2,
		},
	})
	require.NoError(t, err)

	return NewDatasetClient(DatasetClientConfig{Client: client})
}

func TestDatasetClient_Fetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/data/quotes.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(quotesJSON))
	})
	mux.HandleFunc("/data/authors.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(authorsJSON))
	})

	ds, err := newDatasetClient(t, mux).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Stay hungry.", ds.Quotes[0].Content)
	assert.Equal(t, "a1", ds.Authors[0].ID)
	assert.Empty(t, ds.Tags)
}

func TestDatasetClient_FetchErrors(t *testing.T) {
	t.Run("missing quotes", func(t *testing.T) {
		_, err := newDatasetClient(t, http.NotFoundHandler()).Fetch(context.Background())
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("server failing", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := newDatasetClient(t, handler).Fetch(context.Background())
		assert.True(t, domain.IsUnavailable(err))
	})

	t.Run("malformed body", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		})

		_, err := newDatasetClient(t, handler).Fetch(context.Background())
		assert.True(t, domain.IsUnavailable(err))
	})
}

func TestNewDatasetClient_RequiresClient(t *testing.T) {
	assert.Panics(t, func() { NewDatasetClient(DatasetClientConfig{}) })
}
