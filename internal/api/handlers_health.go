// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/classycouture/internal/models"
)

// readyTimeout bounds the database ping of the readiness probe.
const readyTimeout = 2 * time.Second

// HealthLive returns 200 while the process is serving, regardless of
// dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	}, start, nil)
}

// HealthReady returns 200 when the catalog store answers a ping, 503
// otherwise. The subscriber count is informational.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()
	dbConnected := h.db != nil && h.db.Ping(ctx) == nil

	subscribers := 0
	if h.wsHub != nil {
		subscribers = h.wsHub.GetClientCount()
	}

	health := models.HealthStatus{
		Status:            "ready",
		DatabaseConnected: dbConnected,
		Subscribers:       subscribers,
		Uptime:            time.Since(h.startTime).Round(time.Second).String(),
	}

	status := http.StatusOK
	if !dbConnected {
		health.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}
	respondSuccess(w, status, health, start, nil)
}
