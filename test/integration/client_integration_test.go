//go:build integration

package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotable-api/internal/adapters/clients"
	"github.com/jsamuelsen/quotable-api/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotable-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotable-api/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/quotable-api/internal/domain"
	"github.com/jsamuelsen/quotable-api/internal/platform/config"
)

// testClientConfig returns a minimal config for integration testing.
func testClientConfig(baseURL string) *clients.Config {
	return &clients.Config{
		ServiceName: "dataset",
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			Multiplier:      2.0,
		},
		Logger: discardLogger(),
	}
}

// TestClient_RetryBehavior_TransientFailures verifies that the client
// retries on transient server failures and eventually succeeds.
func TestClient_RetryBehavior_TransientFailures(t *testing.T) {
	var attempts int32

	// Server fails twice, then succeeds
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count := atomic.AddInt32(&attempts, 1)
		if count <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, err := clients.New(testClientConfig(server.URL))
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), "/quotes.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts), "expected 3 attempts (2 failures + 1 success)")
}

// TestClient_NoRetryOnClientErrors verifies 4xx responses are returned as-is.
func TestClient_NoRetryOnClientErrors(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := clients.New(testClientConfig(server.URL))
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), "/tags.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

// TestClient_RetriesExhausted verifies a persistently failing host yields
// ErrMaxRetriesExceeded after the configured attempts.
func TestClient_RetriesExhausted(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := clients.New(testClientConfig(server.URL))
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/quotes.json")
	require.ErrorIs(t, err, clients.ErrMaxRetriesExceeded)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

// TestClient_Timeout_SlowResponse verifies the client times out
// when the server responds slowly.
func TestClient_Timeout_SlowResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testClientConfig(server.URL)
	cfg.Timeout = 50 * time.Millisecond
	cfg.Retry.MaxAttempts = 1

	client, err := clients.New(cfg)
	require.NoError(t, err)

	start := time.Now()
	_, err = client.Get(context.Background(), "/slow")
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Less(t, elapsed, 400*time.Millisecond, "should timeout quickly")
}

// TestClient_ConcurrentRequests verifies one client can be shared across
// goroutines.
func TestClient_ConcurrentRequests(t *testing.T) {
	var totalCalls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&totalCalls, 1)
		time.Sleep(10 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := clients.New(testClientConfig(server.URL))
	require.NoError(t, err)

	const numGoroutines = 10
	var wg sync.WaitGroup
	var successCount int32

	for range numGoroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Get(context.Background(), "/concurrent")
			if err != nil {
				return
			}
			resp.Body.Close()
			atomic.AddInt32(&successCount, 1)
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(numGoroutines), atomic.LoadInt32(&successCount), "all concurrent requests should succeed")
	assert.Equal(t, int32(numGoroutines), atomic.LoadInt32(&totalCalls), "server should receive all calls")
}

// TestClient_HeaderPropagation_Integration verifies that request ID
// and correlation ID headers are propagated correctly.
func TestClient_HeaderPropagation_Integration(t *testing.T) {
	var receivedRequestID, receivedCorrelationID, accept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedRequestID = r.Header.Get(middleware.HeaderRequestID)
		receivedCorrelationID = r.Header.Get(middleware.HeaderCorrelationID)
		accept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := clients.New(testClientConfig(server.URL))
	require.NoError(t, err)

	ctx := context.Background()
	ctx = middleware.ContextWithRequestID(ctx, "req-integration-123")
	ctx = middleware.ContextWithCorrelationID(ctx, "corr-integration-456")

	resp, err := client.Get(ctx, "/headers")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "req-integration-123", receivedRequestID)
	assert.Equal(t, "corr-integration-456", receivedCorrelationID)
	assert.Equal(t, "application/json", accept)
}

// TestClient_ContextCancellation_Integration verifies that requests
// are properly cancelled when the context is cancelled.
func TestClient_ContextCancellation_Integration(t *testing.T) {
	requestStarted := make(chan struct{})
	requestCompleted := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(requestStarted)
		<-r.Context().Done()
		close(requestCompleted)
	}))
	defer server.Close()

	cfg := testClientConfig(server.URL)
	cfg.Timeout = 5 * time.Second

	client, err := clients.New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		<-requestStarted
		cancel()
	}()

	start := time.Now()
	_, err = client.Get(ctx, "/cancel")
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Less(t, elapsed, time.Second, "cancellation should be prompt")

	select {
	case <-requestCompleted:
	case <-time.After(time.Second):
		t.Fatal("server did not receive cancellation")
	}
}

func newDatasetClient(t *testing.T, baseURL string) *acl.DatasetClient {
	t.Helper()

	client, err := clients.New(testClientConfig(baseURL))
	require.NoError(t, err)

	return acl.NewDatasetClient(acl.DatasetClientConfig{Client: client, Logger: discardLogger()})
}

// TestDatasetClient_FetchAndImport serves the fixture dataset over HTTP and
// imports it into a fresh database.
func TestDatasetClient_FetchAndImport(t *testing.T) {
	server := httptest.NewServer(http.StripPrefix("/data", http.FileServer(http.Dir(datasetDir))))
	defer server.Close()

	ctx := context.Background()

	ds, err := newDatasetClient(t, server.URL+"/data").Fetch(ctx)
	require.NoError(t, err)
	assert.Len(t, ds.Quotes, fixtureQuotes)
	assert.Len(t, ds.Authors, fixtureAuthors)
	assert.Len(t, ds.Tags, fixtureTags)

	db := seedDatabase(t)
	result, err := sqlite.NewImporter(db, discardLogger()).Import(ctx, ds, sqlite.ImportOptions{Reset: true})
	require.NoError(t, err)
	assert.Equal(t, sqlite.ImportResult{Quotes: fixtureQuotes, Authors: fixtureAuthors, Tags: fixtureTags}, result)
}

// TestDatasetClient_OptionalFilesMissing verifies only quotes.json is required.
func TestDatasetClient_OptionalFilesMissing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/quotes.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"q1","content":"Know thyself.","author":"Socrates","tags":["wisdom"]}]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	ds, err := newDatasetClient(t, server.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Quotes, 1)
	assert.Empty(t, ds.Authors)
	assert.Empty(t, ds.Tags)
}

// TestDatasetClient_HostUnavailable verifies a failing host maps to an
// unavailable error.
func TestDatasetClient_HostUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newDatasetClient(t, server.URL).Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err), "got %v", err)
}
