// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

/*
Package middleware provides the HTTP middleware used by the chi router.

Components:

  - RequestID: assigns X-Request-ID and a correlation id for logging.Ctx
  - PrometheusMetrics: api_requests_total, api_request_duration_seconds and
    api_active_requests, labelled by chi route pattern
  - PerformanceMonitor: sliding window of latencies served on
    GET /api/v1/admin/performance
  - AdminToken: static bearer token guard for /api/v1/admin routes

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perf.Middleware)

	r.Route("/api/v1/admin", func(r chi.Router) {
	    r.Use(middleware.AdminToken(cfg.Security.AdminToken))
	    ...
	})

Route labels are read after the inner handler returns, when chi has
finished matching. Requests no route matched are labelled "unmatched" so
scanners cannot grow the series count.

The status recorder shared by PrometheusMetrics and PerformanceMonitor
implements http.Hijacker and http.Flusher, so the WebSocket endpoint can
sit behind the same stack.

Thread Safety:

All middleware is safe for concurrent use. PerformanceMonitor guards its
window with a sync.RWMutex.
*/
package middleware
