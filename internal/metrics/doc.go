// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

// Package metrics declares the service's Prometheus collectors.
//
// Collectors are registered with the default registry through promauto and
// exposed on /metrics by the API router. Callers use the Record* helpers
// rather than touching the vectors directly so label sets stay consistent.
//
// Families:
//
//   - duckdb_*: catalog store query latency and errors
//   - api_*: HTTP request counts, latency and in-flight requests
//   - recommendation_*: per-strategy latency, outcomes and result sizes
//   - websocket_*: subscriber connections and message delivery
//   - product_events_*: change notifier emission, drops and publish results
//   - circuit_breaker_*: publish breaker state
package metrics
