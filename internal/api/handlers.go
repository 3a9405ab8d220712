// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"

	"github.com/tomtom215/classycouture/internal/config"
	"github.com/tomtom215/classycouture/internal/database"
	"github.com/tomtom215/classycouture/internal/logging"
	"github.com/tomtom215/classycouture/internal/middleware"
	"github.com/tomtom215/classycouture/internal/models"
	"github.com/tomtom215/classycouture/internal/recommend"
	ws "github.com/tomtom215/classycouture/internal/websocket"
)

// ChangeNotifier announces explicit price and stock changes. The store
// reports created/updated/deleted itself through its change listener.
type ChangeNotifier interface {
	PriceChanged(p *models.Product, oldPrice, newPrice decimal.Decimal)
	StockChanged(p *models.Product, oldStock, newStock int)
}

// Handler contains dependencies for the API handlers.
//
// Handler methods are split across files:
//   - handlers_catalog.go: products, categories, reviews
//   - handlers_recommend.go: the eight recommendation surfaces
//   - handlers_newsletter.go: newsletter subscribe/unsubscribe
//   - handlers_admin.go: catalog and order mutations
//   - handlers_health.go: liveness and readiness
//   - handlers_websocket.go: subscription upgrade
type Handler struct {
	db        *database.DB
	engine    *recommend.Engine
	notifier  ChangeNotifier
	wsHub     *ws.Hub
	config    *config.Config
	perfMon   *middleware.PerformanceMonitor
	startTime time.Time
}

// NewHandler creates the API handler. notifier and wsHub may be nil when
// real-time updates are disabled.
func NewHandler(db *database.DB, engine *recommend.Engine, notifier ChangeNotifier, wsHub *ws.Hub, cfg *config.Config) *Handler {
	if cfg == nil {
		cfg = config.Defaults()
	}
	return &Handler{
		db:        db,
		engine:    engine,
		notifier:  notifier,
		wsHub:     wsHub,
		config:    cfg,
		perfMon:   middleware.NewPerformanceMonitor(1000),
		startTime: time.Now(),
	}
}

// PerformanceMonitor returns the latency window fed by the router.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

// limit reads ?limit=. Missing, unparseable or non-positive values use
// api.default_limit; larger values are clamped to api.max_limit.
func (h *Handler) limit(r *http.Request) int {
	limit := getIntParam(r, "limit", h.config.API.DefaultLimit)
	if limit < 1 {
		limit = h.config.API.DefaultLimit
	}
	if limit > h.config.API.MaxLimit {
		limit = h.config.API.MaxLimit
	}
	return limit
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin accepts origins from security.cors_origins. Browsers
// always send Origin, so a missing header is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	for _, allowed := range h.config.Security.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
