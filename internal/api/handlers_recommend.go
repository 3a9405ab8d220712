// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/classycouture/internal/logging"
	"github.com/tomtom215/classycouture/internal/metrics"
	"github.com/tomtom215/classycouture/internal/models"
)

// Strategy names used in logs and the recommendation metrics.
const (
	StrategySimilar        = "similar"
	StrategyBoughtTogether = "frequently_bought_together"
	StrategyPersonalized   = "personalized"
	StrategyTrending       = "trending"
	StrategyYouMayAlsoLike = "you_may_also_like"
	StrategyBundles        = "bundles"
	StrategyNewArrivals    = "new_arrivals"
	StrategyBestSellers    = "best_sellers"
)

// recommendFunc runs one strategy and returns the client shape and its size.
type recommendFunc func(ctx context.Context, limit int) (data interface{}, n int, err error)

// serveRecommendation runs fn under the API request timeout. A store
// failure is logged and answered with 200, an empty list and
// metadata.degraded so storefront pages still render.
func (h *Handler) serveRecommendation(w http.ResponseWriter, r *http.Request, strategy string, empty interface{}, fn recommendFunc) {
	if h.engine == nil {
		respondError(w, http.StatusServiceUnavailable, CodeServiceUnavailable, "Recommendations are unavailable", nil)
		return
	}

	start := time.Now()
	limit := h.limit(r)

	ctx, cancel := context.WithTimeout(r.Context(), h.config.API.RequestTimeout)
	defer cancel()

	data, n, err := fn(ctx, limit)
	metrics.RecordRecommendation(strategy, time.Since(start), n, err)

	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).
			Str("strategy", strategy).
			Int("limit", limit).
			Msg("Recommendation query failed, returning empty list")

		zero := 0
		respondJSON(w, http.StatusOK, &models.APIResponse{
			Status: "success",
			Data:   empty,
			Metadata: models.Metadata{
				Timestamp:   time.Now().UTC(),
				QueryTimeMS: time.Since(start).Milliseconds(),
				Count:       &zero,
				Degraded:    true,
			},
		})
		return
	}

	respondList(w, data, n, start)
}

func products(list []models.Product, err error) (interface{}, int, error) {
	if err != nil {
		return nil, 0, err
	}
	return models.Records(list), len(list), nil
}

func bundles(list []models.Bundle, err error) (interface{}, int, error) {
	if err != nil {
		return nil, 0, err
	}
	return models.BundleRecords(list), len(list), nil
}

// SimilarProducts handles GET /api/v1/recommendations/similar/{productID}.
func (h *Handler) SimilarProducts(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "productID")
	if !ok {
		return
	}
	h.serveRecommendation(w, r, StrategySimilar, []models.ProductRecord{}, func(ctx context.Context, limit int) (interface{}, int, error) {
		return products(h.engine.SimilarProducts(ctx, productID, limit))
	})
}

// FrequentlyBoughtTogether handles
// GET /api/v1/recommendations/frequently-bought-together/{productID}.
func (h *Handler) FrequentlyBoughtTogether(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "productID")
	if !ok {
		return
	}
	h.serveRecommendation(w, r, StrategyBoughtTogether, []models.ProductRecord{}, func(ctx context.Context, limit int) (interface{}, int, error) {
		return products(h.engine.FrequentlyBoughtTogether(ctx, productID, limit))
	})
}

// PersonalizedRecommendations handles
// GET /api/v1/recommendations/personalized/{userID}.
func (h *Handler) PersonalizedRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	h.serveRecommendation(w, r, StrategyPersonalized, []models.ProductRecord{}, func(ctx context.Context, limit int) (interface{}, int, error) {
		return products(h.engine.PersonalizedRecommendations(ctx, userID, limit))
	})
}

// TrendingProducts handles GET /api/v1/recommendations/trending.
func (h *Handler) TrendingProducts(w http.ResponseWriter, r *http.Request) {
	h.serveRecommendation(w, r, StrategyTrending, []models.ProductRecord{}, func(ctx context.Context, limit int) (interface{}, int, error) {
		return products(h.engine.TrendingProducts(ctx, limit))
	})
}

// YouMayAlsoLike handles
// GET /api/v1/recommendations/you-may-also-like/{userID}/{productID}.
func (h *Handler) YouMayAlsoLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	productID, ok := pathID(w, r, "productID")
	if !ok {
		return
	}
	h.serveRecommendation(w, r, StrategyYouMayAlsoLike, []models.ProductRecord{}, func(ctx context.Context, limit int) (interface{}, int, error) {
		return products(h.engine.YouMayAlsoLike(ctx, userID, productID, limit))
	})
}

// BundleSuggestions handles GET /api/v1/recommendations/bundles/{productID}.
func (h *Handler) BundleSuggestions(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "productID")
	if !ok {
		return
	}
	h.serveRecommendation(w, r, StrategyBundles, []models.BundleRecord{}, func(ctx context.Context, limit int) (interface{}, int, error) {
		return bundles(h.engine.BundleSuggestions(ctx, productID, limit))
	})
}

// NewArrivals handles GET /api/v1/recommendations/new-arrivals.
func (h *Handler) NewArrivals(w http.ResponseWriter, r *http.Request) {
	h.serveRecommendation(w, r, StrategyNewArrivals, []models.ProductRecord{}, func(ctx context.Context, limit int) (interface{}, int, error) {
		return products(h.engine.NewArrivals(ctx, limit))
	})
}

// BestSellers handles GET /api/v1/recommendations/best-sellers.
func (h *Handler) BestSellers(w http.ResponseWriter, r *http.Request) {
	h.serveRecommendation(w, r, StrategyBestSellers, []models.ProductRecord{}, func(ctx context.Context, limit int) (interface{}, int, error) {
		return products(h.engine.BestSellers(ctx, limit))
	})
}
