// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/classycouture/internal/models"
)

// maxReviewsPerPage caps ?limit on the review listing.
const maxReviewsPerPage = 100

// Products handles GET /api/v1/products.
//
// Query parameters: category (comma separated ids), featured, new_arrival,
// on_sale, in_stock (booleans), sort (recommended|top_rated|newest),
// limit and offset.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()

	filter := models.ProductFilter{
		CategoryIDs: parseCommaSeparatedIDs(q.Get("category")),
		Featured:    getBoolParam(r, "featured"),
		NewArrival:  getBoolParam(r, "new_arrival"),
		OnSale:      getBoolParam(r, "on_sale"),
		Order:       parseProductOrder(q.Get("sort")),
		Limit:       h.limit(r),
		Offset:      getIntParam(r, "offset", 0),
	}
	if inStock := getBoolParam(r, "in_stock"); inStock != nil && *inStock {
		filter.InStockOnly = true
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	list, err := h.db.FindProducts(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeQueryError, "Failed to load products", err)
		return
	}
	respondList(w, models.Records(list), len(list), start)
}

func parseProductOrder(s string) models.ProductOrder {
	switch s {
	case "top_rated":
		return models.OrderTopRated
	case "newest":
		return models.OrderNewest
	default:
		return models.OrderRecommended
	}
}

// Product handles GET /api/v1/products/{id}.
func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.db.GetProduct(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeQueryError, "Failed to load product", err)
		return
	}
	if p == nil {
		respondNotFound(w, "Product")
		return
	}
	respondSuccess(w, http.StatusOK, p.Detail(), start, nil)
}

// Categories handles GET /api/v1/categories. ?collections=true limits the
// list to top-level collections.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	collectionsOnly := false
	if c := getBoolParam(r, "collections"); c != nil {
		collectionsOnly = *c
	}

	categories, err := h.db.ListCategories(r.Context(), collectionsOnly)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeQueryError, "Failed to load categories", err)
		return
	}
	respondList(w, categories, len(categories), start)
}

// Reviews handles GET /api/v1/products/{id}/reviews, newest first.
func (h *Handler) Reviews(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	limit := getIntParam(r, "limit", 10)
	if limit < 1 || limit > maxReviewsPerPage {
		limit = maxReviewsPerPage
	}

	p, err := h.db.GetProduct(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeQueryError, "Failed to load product", err)
		return
	}
	if p == nil {
		respondNotFound(w, "Product")
		return
	}

	reviews, err := h.db.ListReviews(r.Context(), id, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeQueryError, "Failed to load reviews", err)
		return
	}
	respondList(w, reviews, len(reviews), start)
}

// SubmitReview handles POST /api/v1/products/{id}/reviews.
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req ReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	review, err := h.db.AddReview(r.Context(), &models.Review{
		ProductID:    id,
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Text:         req.Text,
		Rating:       req.Rating,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeQueryError, "Failed to save review", err)
		return
	}
	if review == nil {
		respondNotFound(w, "Product")
		return
	}
	respondSuccess(w, http.StatusCreated, review, start, nil)
}
