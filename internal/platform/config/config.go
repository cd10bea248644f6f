// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jsamuelsen/quotable-api/internal/domain/query"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 4000

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20 // 1048576 bytes

	// DefaultClientRetryMaxAttempts is the default number of retry attempts.
	DefaultClientRetryMaxAttempts = 3

	// DefaultClientRetryMultiplier is the default exponential backoff multiplier.
	DefaultClientRetryMultiplier = 2.0

	// DefaultClientRetryJitterFactor is the default jitter percentage (±25%).
	DefaultClientRetryJitterFactor = 0.25

	// DefaultTransportMaxIdleConns is the default max idle connections.
	DefaultTransportMaxIdleConns = 100

	// DefaultTransportMaxIdleConnsPerHost is the default max idle connections per host.
	DefaultTransportMaxIdleConnsPerHost = 10

	// DefaultTransportIdleConnTimeout is the default idle connection timeout.
	DefaultTransportIdleConnTimeout = 90 * time.Second

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// DefaultDatabaseMaxOpenConns bounds the SQLite connection pool.
	DefaultDatabaseMaxOpenConns = 4

	// DefaultCacheTTLSeconds is how long cached tag lists and counts live.
	DefaultCacheTTLSeconds = 3600

	// DefaultCacheMemorySize is the entry limit of the in-process cache.
	DefaultCacheMemorySize = 1024

	// DefaultRateLimit is the number of requests a client may make per window.
	DefaultRateLimit = 180

	// DefaultRateLimitMaxClients bounds the tracked client addresses.
	DefaultRateLimitMaxClients = 10000
)

// Cache drivers.
const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
	CacheDriverNone   = "none"
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"        validate:"required"`
	Server    ServerConfig    `koanf:"server"     validate:"required"`
	Log       LogConfig       `koanf:"log"        validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Client    ClientConfig    `koanf:"client"     validate:"required"`
	Services  ServicesConfig  `koanf:"services"   validate:"required"`
	Database  DatabaseConfig  `koanf:"database"   validate:"required"`
	Cache     CacheConfig     `koanf:"cache"      validate:"required"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	API       APIConfig       `koanf:"api"        validate:"required"`
	Features  map[string]any  `koanf:"features"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=100ms"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
	TrustedProxies  []string      `koanf:"trusted_proxies"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// ClientConfig contains HTTP client settings for the dataset fetcher.
type ClientConfig struct {
	Timeout   time.Duration   `koanf:"timeout"   validate:"required,min=100ms"`
	Retry     RetryConfig     `koanf:"retry"     validate:"required"`
	Transport TransportConfig `koanf:"transport" validate:"required"`
}

// RetryConfig contains retry settings for HTTP clients.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// ServicesConfig contains configuration for remote services.
type ServicesConfig struct {
	Dataset ServiceEndpointConfig `koanf:"dataset" validate:"required"`
}

// ServiceEndpointConfig contains configuration for a remote service endpoint.
type ServiceEndpointConfig struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`
	Name    string `koanf:"name"     validate:"required"`
}

// DatabaseConfig contains SQLite storage settings.
type DatabaseConfig struct {
	Path         string        `koanf:"path"           validate:"required"`
	BusyTimeout  time.Duration `koanf:"busy_timeout"   validate:"min=0"`
	MaxOpenConns int           `koanf:"max_open_conns" validate:"min=1,max=64"`
	Migrate      bool          `koanf:"migrate"`
	Debug        bool          `koanf:"debug"`
}

// CacheConfig contains read model cache settings.
type CacheConfig struct {
	Driver       string      `koanf:"driver"        validate:"required,oneof=memory redis none"`
	TTL          int         `koanf:"ttl"           validate:"min=0"`
	MemorySize   int         `koanf:"memory_size"   validate:"min=1"`
	WarmSchedule string      `koanf:"warm_schedule"`
	Redis        RedisConfig `koanf:"redis"`
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	URL          string        `koanf:"url"`
	Password     string        `koanf:"password"`
	DB           int           `koanf:"db"            validate:"min=0,max=15"`
	PoolSize     int           `koanf:"pool_size"     validate:"min=0"`
	MaxRetries   int           `koanf:"max_retries"   validate:"min=0,max=10"`
	DialTimeout  time.Duration `koanf:"dial_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	KeyPrefix    string        `koanf:"key_prefix"`
}

// RateLimitConfig contains per-client request limiting settings.
type RateLimitConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Limit      int           `koanf:"limit"       validate:"required_if=Enabled true,omitempty,min=1"`
	Window     time.Duration `koanf:"window"      validate:"required_if=Enabled true,omitempty,min=1s"`
	MaxClients int           `koanf:"max_clients" validate:"omitempty,min=1"`
}

// APIConfig contains pagination bounds shared by list endpoints.
type APIConfig struct {
	DefaultLimit   int `koanf:"default_limit"    validate:"required,min=1,ltefield=MaxLimit"`
	MaxLimit       int `koanf:"max_limit"        validate:"required,min=1"`
	MaxSkip        int `koanf:"max_skip"         validate:"required,min=0"`
	MaxRandomCount int `koanf:"max_random_count" validate:"required,min=1"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quotable-api",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "15s",
		"server.max_request_size": DefaultMaxRequestSize,
		"server.trusted_proxies":  []string{},

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quotable-api",
		"telemetry.sampling_rate": 1.0,

		"client.timeout":                           "30s",
		"client.retry.max_attempts":                DefaultClientRetryMaxAttempts,
		"client.retry.initial_interval":            "100ms",
		"client.retry.max_interval":                "5s",
		"client.retry.multiplier":                  DefaultClientRetryMultiplier,
		"client.retry.jitter_factor":               DefaultClientRetryJitterFactor,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",

		"services.dataset.base_url": "https://raw.githubusercontent.com/quotable-io/data/master/data",
		"services.dataset.name":     "dataset",

		"database.path":           "./data/quotable.db",
		"database.busy_timeout":   "5s",
		"database.max_open_conns": DefaultDatabaseMaxOpenConns,
		"database.migrate":        true,
		"database.debug":          false,

		"cache.driver":              CacheDriverMemory,
		"cache.ttl":                 DefaultCacheTTLSeconds,
		"cache.memory_size":         DefaultCacheMemorySize,
		"cache.warm_schedule":       "",
		"cache.redis.url":           "redis://localhost:6379/0",
		"cache.redis.pool_size":     10,
		"cache.redis.max_retries":   3,
		"cache.redis.dial_timeout":  "5s",
		"cache.redis.read_timeout":  "3s",
		"cache.redis.write_timeout": "3s",
		"cache.redis.key_prefix":    "quotable:",

		"rate_limit.enabled":     true,
		"rate_limit.limit":       DefaultRateLimit,
		"rate_limit.window":      "1m",
		"rate_limit.max_clients": DefaultRateLimitMaxClients,

		"api.default_limit":    query.DefaultLimit,
		"api.max_limit":        query.MaxLimit,
		"api.max_skip":         query.MaxSkip,
		"api.max_random_count": query.MaxRandomCount,

		"features.advanced-query": true,
	}
}

// Limits returns the pagination bounds as the query package expects them.
func (a APIConfig) Limits() query.Limits {
	return query.Limits{
		DefaultLimit: a.DefaultLimit,
		MaxLimit:     a.MaxLimit,
		MaxSkip:      a.MaxSkip,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix)
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. Load environment variables with APP_ prefix
	err = k.Load(env.Provider("APP_", ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil // File doesn't exist, that's fine
	}

	return k.Load(file.Provider(path), yaml.Parser())
}

// envKey maps APP_SERVER_PORT to server.port. Feature flag names keep their
// words together, so APP_FEATURES_ADVANCED_QUERY maps to
// features.advanced-query.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "APP_"))

	if flag, ok := strings.CutPrefix(key, "features_"); ok {
		return "features." + strings.ReplaceAll(flag, "_", "-")
	}

	return strings.ReplaceAll(key, "_", ".")
}
