// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/classycouture/internal/database"
	"github.com/tomtom215/classycouture/internal/middleware"
	"github.com/tomtom215/classycouture/internal/models"
)

// recentSamples is how many raw samples the performance endpoint returns.
const recentSamples = 50

// CreateProduct handles POST /api/v1/admin/products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p, err := h.db.CreateProduct(r.Context(), req.Product(0))
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeQueryError, "Failed to create product", err)
		return
	}
	respondSuccess(w, http.StatusCreated, p.Detail(), start, nil)
}

// UpdateProduct handles PUT /api/v1/admin/products/{id}.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p, err := h.db.UpdateProduct(r.Context(), req.Product(id))
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeQueryError, "Failed to update product", err)
		return
	}
	if p == nil {
		respondNotFound(w, "Product")
		return
	}
	respondSuccess(w, http.StatusOK, p.Detail(), start, nil)
}

// DeleteProduct handles DELETE /api/v1/admin/products/{id}.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.db.DeleteProduct(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeQueryError, "Failed to delete product", err)
		return
	}
	if !deleted {
		respondNotFound(w, "Product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetPrice handles PUT /api/v1/admin/products/{id}/price and announces a
// price_change event when the price actually moved.
func (h *Handler) SetPrice(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req PriceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	newPrice := decimal.NewFromFloat(req.Price).Round(2)
	oldPrice, p, err := h.db.SetProductPrice(r.Context(), id, newPrice)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeQueryError, "Failed to update price", err)
		return
	}
	if p == nil {
		respondNotFound(w, "Product")
		return
	}
	if h.notifier != nil && !oldPrice.Equal(newPrice) {
		h.notifier.PriceChanged(p, oldPrice, newPrice)
	}
	respondSuccess(w, http.StatusOK, p.Detail(), start, nil)
}

// SetStock handles PUT /api/v1/admin/products/{id}/stock and announces a
// stock_update event when the level changed.
func (h *Handler) SetStock(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req StockRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	oldStock, p, err := h.db.SetProductStock(r.Context(), id, req.Inventory)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeQueryError, "Failed to update stock", err)
		return
	}
	if p == nil {
		respondNotFound(w, "Product")
		return
	}
	if h.notifier != nil && oldStock != req.Inventory {
		h.notifier.StockChanged(p, oldStock, req.Inventory)
	}
	respondSuccess(w, http.StatusOK, p.Detail(), start, nil)
}

// CreateCategory handles POST /api/v1/admin/categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req CategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	c, err := h.db.CreateCategory(r.Context(), req.Category())
	switch {
	case database.IsConstraintViolation(err):
		respondError(w, http.StatusConflict, CodeConflict, "Category slug already exists", nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, CodeQueryError, "Failed to create category", err)
		return
	}
	respondSuccess(w, http.StatusCreated, c, start, nil)
}

// CreateUser handles POST /api/v1/admin/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req UserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, err := h.db.CreateUser(r.Context(), req.Username, req.Email)
	switch {
	case database.IsConstraintViolation(err):
		respondError(w, http.StatusConflict, CodeConflict, "Username already exists", nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, CodeQueryError, "Failed to create user", err)
		return
	}
	respondSuccess(w, http.StatusCreated, u, start, nil)
}

// CreateOrder handles POST /api/v1/admin/orders.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req OrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var createdAt time.Time
	if req.CreatedAt != nil {
		createdAt = *req.CreatedAt
	}
	order, err := h.db.CreateOrder(r.Context(), req.UserID, models.OrderStatus(req.Status), req.Lines(), createdAt)
	if err != nil {
		respondOrderError(w, err, "Failed to create order")
		return
	}
	respondSuccess(w, http.StatusCreated, newOrderResponse(order), start, nil)
}

// GetOrder handles GET /api/v1/admin/orders/{id}.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.db.GetOrder(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeQueryError, "Failed to load order", err)
		return
	}
	if order == nil {
		respondNotFound(w, "Order")
		return
	}
	respondSuccess(w, http.StatusOK, newOrderResponse(order), start, nil)
}

// UpdateOrderStatus handles PUT /api/v1/admin/orders/{id}/status.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req OrderStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.db.UpdateOrderStatus(r.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		respondOrderError(w, err, "Failed to update order")
		return
	}
	if order == nil {
		respondNotFound(w, "Order")
		return
	}
	respondSuccess(w, http.StatusOK, newOrderResponse(order), start, nil)
}

// CancelOrder handles POST /api/v1/admin/orders/{id}/cancel. Only pending
// orders can be cancelled.
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.db.CancelOrder(r.Context(), id)
	if err != nil {
		respondOrderError(w, err, "Failed to cancel order")
		return
	}
	if order == nil {
		respondNotFound(w, "Order")
		return
	}
	respondSuccess(w, http.StatusOK, newOrderResponse(order), start, nil)
}

// respondOrderError maps store order errors to client errors.
func respondOrderError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, database.ErrUnknownUser):
		respondError(w, http.StatusBadRequest, CodeValidation, "Unknown user", nil)
	case errors.Is(err, database.ErrUnknownProduct):
		respondError(w, http.StatusBadRequest, CodeValidation, err.Error(), nil)
	case errors.Is(err, database.ErrInvalidStatus):
		respondError(w, http.StatusBadRequest, CodeValidation, "Invalid order status", nil)
	case errors.Is(err, database.ErrOrderNotCancellable):
		respondError(w, http.StatusConflict, CodeConflict, "Only pending orders can be cancelled", nil)
	default:
		respondError(w, http.StatusInternalServerError, CodeQueryError, fallback, err)
	}
}

// performanceReport is the body of GET /api/v1/admin/performance.
type performanceReport struct {
	Routes []middleware.RouteStats    `json:"routes"`
	Recent []middleware.RequestSample `json:"recent"`
}

// Performance handles GET /api/v1/admin/performance.
func (h *Handler) Performance(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()
	respondSuccess(w, http.StatusOK, performanceReport{
		Routes: h.perfMon.Stats(),
		Recent: h.perfMon.Recent(recentSamples),
	}, start, nil)
}
