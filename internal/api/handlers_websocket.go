// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/classycouture/internal/logging"
	ws "github.com/tomtom215/classycouture/internal/websocket"
)

// registerTimeout bounds the wait for the hub loop to accept a client.
const registerTimeout = 5 * time.Second

// WebSocket upgrades GET /api/v1/ws into a product update subscription.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		respondError(w, http.StatusServiceUnavailable, CodeServiceUnavailable, "Real-time updates are disabled", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written the HTTP error.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	select {
	case h.wsHub.Register <- client:
		client.Start()
	case <-time.After(registerTimeout):
		logging.Ctx(r.Context()).Warn().Uint64("client_id", client.ID()).Msg("WebSocket hub not accepting clients")
		_ = conn.Close()
	}
}
