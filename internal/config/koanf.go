// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/classycouture/config.yaml",
	"/etc/classycouture/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8000,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:           "/data/classycouture.duckdb",
			MaxMemory:      "1GB",
			Threads:        0,
			SeedSampleData: false,
		},
		API: APIConfig{
			DefaultLimit:   6,
			MaxLimit:       50,
			RequestTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"http://localhost:3000"},
			RateLimitReqs:   120,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Recommend: RecommendConfig{
			PriceBand:             0.3,
			TrendingWindow:        30 * 24 * time.Hour,
			FavoriteCategories:    3,
			BundleDiscountPercent: 10,
			SnapshotLimit:         8,
			LowStockThreshold:     10,
		},
		Realtime: RealtimeConfig{
			Enabled:                 true,
			Transport:               "memory",
			Topic:                   "product_updates",
			QueueSize:               256,
			ClientRateLimit:         5,
			ClientBurst:             10,
			BreakerFailureThreshold: 5,
			BreakerTimeout:          30 * time.Second,
		},
		NATS: NATSConfig{
			URL:              "nats://127.0.0.1:4222",
			EmbeddedServer:   true,
			Host:             "127.0.0.1",
			Port:             4222,
			MaxReconnects:    -1,
			ReconnectWait:    2 * time.Second,
			SubscribersCount: 1,
		},
	}
}

// LoadWithKoanf builds the layered configuration and validates it.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields turns comma separated strings from the environment into
// string slices. Values that are already slices (YAML) are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"seed_sample_data":  "database.seed_sample_data",

	"api_default_limit":   "api.default_limit",
	"api_max_limit":       "api.max_limit",
	"api_request_timeout": "api.request_timeout",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"admin_token":         "security.admin_token",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"recommend_price_band":          "recommend.price_band",
	"recommend_trending_window":     "recommend.trending_window",
	"recommend_favorite_categories": "recommend.favorite_categories",
	"recommend_bundle_discount":     "recommend.bundle_discount_percent",
	"snapshot_limit":                "recommend.snapshot_limit",
	"low_stock_threshold":           "recommend.low_stock_threshold",

	"realtime_enabled":         "realtime.enabled",
	"realtime_transport":       "realtime.transport",
	"realtime_topic":           "realtime.topic",
	"realtime_queue_size":      "realtime.queue_size",
	"ws_client_rate_limit":     "realtime.client_rate_limit",
	"ws_client_burst":          "realtime.client_burst",
	"publish_breaker_failures": "realtime.breaker_failure_threshold",
	"publish_breaker_timeout":  "realtime.breaker_timeout",

	"nats_url":               "nats.url",
	"nats_embedded":          "nats.embedded_server",
	"nats_host":              "nats.host",
	"nats_port":              "nats.port",
	"nats_max_reconnects":    "nats.max_reconnects",
	"nats_reconnect_wait":    "nats.reconnect_wait",
	"nats_subscribers_count": "nats.subscribers_count",
}

// envTransformFunc maps an environment variable name to a config path.
// Unknown variables map to "" and are ignored.
//
//   - HTTP_PORT -> server.port
//   - DUCKDB_PATH -> database.path
//   - REALTIME_TRANSPORT -> realtime.transport
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Defaults returns the built-in configuration without reading files or the
// environment.
func Defaults() *Config {
	return defaultConfig()
}
