package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jsamuelsen/quotable-api/internal/domain"
)

// DefaultMemorySize is the default entry capacity of a Memory cache.
const DefaultMemorySize = 1024

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a ports.Cache held in process. Entries are evicted least
// recently used first once Size is reached, and expire after their own TTL
// or MaxTTL, whichever is sooner.
type Memory struct {
	entries *lru.LRU[string, memoryEntry]
	now     func() time.Time
}

// NewMemory creates a memory cache. A zero maxTTL lets entries without a TTL
// live until evicted.
func NewMemory(size int, maxTTL time.Duration) *Memory {
	if size <= 0 {
		size = DefaultMemorySize
	}

	return &Memory{
		entries: lru.NewLRU[string, memoryEntry](size, nil, maxTTL),
		now:     time.Now,
	}
}

// Get implements ports.Cache.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	entry, ok := m.entries.Get(key)
	if !ok {
		return nil, domain.NewNotFoundError("cache entry", key)
	}

	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		m.entries.Remove(key)
		return nil, domain.NewNotFoundError("cache entry", key)
	}

	return entry.value, nil
}

// Set implements ports.Cache.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttlSeconds int) error {
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if ttlSeconds > 0 {
		entry.expiresAt = m.now().Add(time.Duration(ttlSeconds) * time.Second)
	}

	m.entries.Add(key, entry)

	return nil
}

// Delete implements ports.Cache.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.entries.Remove(key)
	return nil
}

// Len returns the number of entries held, including expired entries not yet
// evicted.
func (m *Memory) Len() int {
	return m.entries.Len()
}
