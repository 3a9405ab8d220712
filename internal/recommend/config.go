// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/classycouture/internal/config"
)

// Config tunes the recommendation strategies.
type Config struct {
	// PriceBand is the relative width of the similarity price window.
	// 0.3 means [price*0.7, price*1.3].
	PriceBand float64 `json:"price_band"`

	// TrendingWindow is how far back TrendingProducts counts sales.
	TrendingWindow time.Duration `json:"trending_window"`

	// FavoriteCategories is how many of the user's most purchased
	// categories PersonalizedRecommendations draws from.
	FavoriteCategories int `json:"favorite_categories"`

	// BundleDiscountPercent is applied to the combined bundle price.
	BundleDiscountPercent int `json:"bundle_discount_percent"`
}

// DefaultConfig returns the storefront defaults.
func DefaultConfig() *Config {
	return &Config{
		PriceBand:             0.3,
		TrendingWindow:        30 * 24 * time.Hour,
		FavoriteCategories:    3,
		BundleDiscountPercent: 10,
	}
}

// FromAppConfig maps the application's recommend section onto an engine config.
func FromAppConfig(rc *config.RecommendConfig) *Config {
	return &Config{
		PriceBand:             rc.PriceBand,
		TrendingWindow:        rc.TrendingWindow,
		FavoriteCategories:    rc.FavoriteCategories,
		BundleDiscountPercent: rc.BundleDiscountPercent,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.PriceBand < 0 || c.PriceBand >= 1 {
		return fmt.Errorf("price_band must be in [0, 1), got %f", c.PriceBand)
	}
	if c.TrendingWindow <= 0 {
		return fmt.Errorf("trending_window must be positive, got %v", c.TrendingWindow)
	}
	if c.FavoriteCategories < 1 {
		return fmt.Errorf("favorite_categories must be positive, got %d", c.FavoriteCategories)
	}
	if c.BundleDiscountPercent < 0 || c.BundleDiscountPercent > 100 {
		return fmt.Errorf("bundle_discount_percent must be in [0, 100], got %d", c.BundleDiscountPercent)
	}
	return nil
}
