// Package clients provides the instrumented HTTP client used to fetch
// datasets from remote hosts.
package clients

import "errors"

// Client errors represent failures in the HTTP client layer. Callers
// translate them to domain errors.
var (
	// ErrMaxRetriesExceeded is returned after all retry attempts have been
	// exhausted. The last attempt's error is wrapped for context.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
