// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/classycouture/internal/metrics"
)

// unmatchedRoute labels requests no chi route matched, so random paths do
// not create new series.
const unmatchedRoute = "unmatched"

// PrometheusMetrics records api_requests_total, api_request_duration_seconds
// and api_active_requests. The endpoint label is the chi route pattern
// (/api/v1/products/{id}), not the raw path.
func PrometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		start := time.Now()
		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)

		metrics.RecordAPIRequest(
			r.Method,
			RoutePattern(r),
			strconv.Itoa(rec.statusCode),
			time.Since(start),
		)
	})
}

// RoutePattern returns the matched chi route pattern for r, or "unmatched".
// It is only complete after the router has finished routing, so call it
// after next.ServeHTTP.
func RoutePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}
