// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package config

import "time"

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Realtime  RealtimeConfig  `koanf:"realtime"`
	NATS      NATSConfig      `koanf:"nats"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// DatabaseConfig controls the DuckDB catalog store.
type DatabaseConfig struct {
	// Path to the database file, or ":memory:".
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	// Threads is the DuckDB worker count; 0 means runtime.NumCPU().
	Threads        int  `koanf:"threads"`
	SeedSampleData bool `koanf:"seed_sample_data"`
}

// APIConfig holds request defaults shared by the HTTP handlers.
type APIConfig struct {
	DefaultLimit   int           `koanf:"default_limit"`
	MaxLimit       int           `koanf:"max_limit"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// SecurityConfig holds CORS, rate limiting and the admin token.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	// AdminToken guards the catalog write endpoints. Empty disables them.
	AdminToken string `koanf:"admin_token"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig tunes the recommendation engine and broker snapshots.
type RecommendConfig struct {
	PriceBand             float64       `koanf:"price_band"`
	TrendingWindow        time.Duration `koanf:"trending_window"`
	FavoriteCategories    int           `koanf:"favorite_categories"`
	BundleDiscountPercent int           `koanf:"bundle_discount_percent"`
	SnapshotLimit         int           `koanf:"snapshot_limit"`
	LowStockThreshold     int           `koanf:"low_stock_threshold"`
}

// RealtimeConfig controls product update fan-out.
type RealtimeConfig struct {
	Enabled bool `koanf:"enabled"`
	// Transport is "memory" (single process) or "nats".
	Transport string `koanf:"transport"`
	Topic     string `koanf:"topic"`
	QueueSize int    `koanf:"queue_size"`

	// Per-connection inbound request limit for WebSocket subscribers.
	ClientRateLimit float64 `koanf:"client_rate_limit"`
	ClientBurst     int     `koanf:"client_burst"`

	BreakerFailureThreshold uint32        `koanf:"breaker_failure_threshold"`
	BreakerTimeout          time.Duration `koanf:"breaker_timeout"`
}

// NATSConfig is used when Realtime.Transport is "nats".
type NATSConfig struct {
	URL              string        `koanf:"url"`
	EmbeddedServer   bool          `koanf:"embedded_server"`
	Host             string        `koanf:"host"`
	Port             int           `koanf:"port"`
	MaxReconnects    int           `koanf:"max_reconnects"`
	ReconnectWait    time.Duration `koanf:"reconnect_wait"`
	SubscribersCount int           `koanf:"subscribers_count"`
}

// Load reads configuration from defaults, file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the service runs with ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
