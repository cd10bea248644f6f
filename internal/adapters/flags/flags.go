// Package flags implements ports.FeatureFlags on configuration values.
package flags

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// Config serves flags from the `features` configuration section. Flag names
// are matched with underscores read as hyphens, so APP_FEATURES_ADVANCED_QUERY
// sets "advanced-query".
type Config struct {
	mu sync.RWMutex
	k  *koanf.Koanf
}

// New creates a flag source from values.
func New(values map[string]any) (*Config, error) {
	c := &Config{}
	if err := c.Update(values); err != nil {
		return nil, err
	}

	return c, nil
}

// Update replaces every flag value.
func (c *Config) Update(values map[string]any) error {
	normalized := make(map[string]any, len(values))
	for name, v := range values {
		normalized[flagKey(name)] = v
	}

	// Flag names are flat; the delimiter only has to be absent from them.
	k := koanf.New("/")
	if err := k.Load(confmap.Provider(normalized, "/"), nil); err != nil {
		return fmt.Errorf("loading feature flags: %w", err)
	}

	c.mu.Lock()
	c.k = k
	c.mu.Unlock()

	return nil
}

func flagKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}

func (c *Config) lookup(flag string) (*koanf.Koanf, string, bool) {
	c.mu.RLock()
	k := c.k
	c.mu.RUnlock()

	key := flagKey(flag)

	return k, key, k.Exists(key)
}

// IsEnabled implements ports.FeatureFlags. Strings such as "true" or "0"
// are accepted.
func (c *Config) IsEnabled(_ context.Context, flag string, defaultValue bool) bool {
	k, key, ok := c.lookup(flag)
	if !ok {
		return defaultValue
	}

	switch v := k.Get(key).(type) {
	case bool:
		return v
	case string, int, int64, float64:
		return k.Bool(key)
	default:
		return defaultValue
	}
}

// GetInt implements ports.FeatureFlags. Numeric strings are accepted.
func (c *Config) GetInt(_ context.Context, flag string, defaultValue int) int {
	k, key, ok := c.lookup(flag)
	if !ok {
		return defaultValue
	}

	switch v := k.Get(key).(type) {
	case int, int64, float64:
		return k.Int(key)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return defaultValue
		}

		return n
	default:
		return defaultValue
	}
}
