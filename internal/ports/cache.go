package ports

import "context"

// Cache stores serialized read-model snapshots, such as the tag list and the
// collection counts, keyed by a short name. Redis and an in-process LRU
// implement it.
type Cache interface {
	// Get returns domain.ErrNotFound on a miss, including an expired entry.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites key. ttlSeconds <= 0 keeps the entry until evicted.
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error

	// Delete is a no-op for a missing key.
	Delete(ctx context.Context, key string) error
}
