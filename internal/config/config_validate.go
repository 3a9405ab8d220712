// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package config

import (
	"fmt"
	"strings"
)

// Validate checks the loaded configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateRealtime(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultLimit < 1 {
		return fmt.Errorf("API_DEFAULT_LIMIT must be at least 1, got %d", c.API.DefaultLimit)
	}
	if c.API.MaxLimit < c.API.DefaultLimit {
		return fmt.Errorf("API_MAX_LIMIT (%d) must be >= API_DEFAULT_LIMIT (%d)", c.API.MaxLimit, c.API.DefaultLimit)
	}
	if c.API.RequestTimeout <= 0 {
		return fmt.Errorf("API_REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1 when rate limiting is enabled")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
		}
	}
	if c.IsProduction() {
		for _, o := range c.Security.CORSOrigins {
			if o == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain * in production")
			}
		}
		if c.Security.AdminToken != "" && len(c.Security.AdminToken) < 32 {
			return fmt.Errorf("ADMIN_TOKEN must be at least 32 characters in production")
		}
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.PriceBand <= 0 || r.PriceBand >= 1 {
		return fmt.Errorf("RECOMMEND_PRICE_BAND must be in (0, 1), got %v", r.PriceBand)
	}
	if r.TrendingWindow <= 0 {
		return fmt.Errorf("RECOMMEND_TRENDING_WINDOW must be positive")
	}
	if r.FavoriteCategories < 1 {
		return fmt.Errorf("RECOMMEND_FAVORITE_CATEGORIES must be at least 1")
	}
	if r.BundleDiscountPercent < 0 || r.BundleDiscountPercent > 100 {
		return fmt.Errorf("RECOMMEND_BUNDLE_DISCOUNT must be between 0 and 100, got %d", r.BundleDiscountPercent)
	}
	if r.SnapshotLimit < 1 {
		return fmt.Errorf("SNAPSHOT_LIMIT must be at least 1")
	}
	if r.LowStockThreshold < 1 {
		return fmt.Errorf("LOW_STOCK_THRESHOLD must be at least 1")
	}
	return nil
}

func (c *Config) validateRealtime() error {
	if !c.Realtime.Enabled {
		return nil
	}
	switch c.Realtime.Transport {
	case "memory":
	case "nats":
		if c.NATS.URL == "" && !c.NATS.EmbeddedServer {
			return fmt.Errorf("NATS_URL is required when REALTIME_TRANSPORT=nats without an embedded server")
		}
		if c.NATS.SubscribersCount < 1 {
			return fmt.Errorf("NATS_SUBSCRIBERS_COUNT must be at least 1")
		}
	default:
		return fmt.Errorf("REALTIME_TRANSPORT must be memory or nats, got %q", c.Realtime.Transport)
	}
	if strings.TrimSpace(c.Realtime.Topic) == "" {
		return fmt.Errorf("REALTIME_TOPIC is required")
	}
	if c.Realtime.QueueSize < 1 {
		return fmt.Errorf("REALTIME_QUEUE_SIZE must be at least 1")
	}
	if c.Realtime.ClientRateLimit <= 0 || c.Realtime.ClientBurst < 1 {
		return fmt.Errorf("WS_CLIENT_RATE_LIMIT and WS_CLIENT_BURST must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
