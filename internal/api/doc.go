// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

/*
Package api provides the HTTP REST API layer for ClassyCouture.

Key Components:

  - Router: chi route table and middleware stack
  - Handler: request handlers for the catalog, recommendations, newsletter,
    admin mutations, health and the WebSocket upgrade
  - Response formatting: models.APIResponse envelope with metadata
  - Validation: go-playground/validator request structs (requests.go)

Endpoints:

1. Health (/api/v1/health/): live, ready

2. Catalog (/api/v1/):
  - GET products, products/{id}, products/{id}/reviews, categories
  - POST products/{id}/reviews
  - POST newsletter/subscribe, newsletter/unsubscribe

3. Recommendations (/api/v1/recommendations/):
  - similar/{productID}, frequently-bought-together/{productID},
    bundles/{productID}
  - personalized/{userID}, you-may-also-like/{userID}/{productID}
  - trending, new-arrivals, best-sellers

All take ?limit= (default api.default_limit, clamped to api.max_limit).
A failing recommendation query still answers 200 with an empty list and
metadata.degraded set.

4. Admin (/api/v1/admin/): product, price, stock, category, user and order
mutations plus request latency stats. Mounted only when
security.admin_token is configured; requests need
"Authorization: Bearer <token>".

5. WebSocket (/api/v1/ws): live product updates, see package websocket.

Prometheus metrics are served on /metrics.

Error Responses:

	{
	  "status": "error",
	  "error": {"code": "VALIDATION_ERROR", "message": "...", "details": {...}},
	  "metadata": {"timestamp": "..."}
	}

Codes: VALIDATION_ERROR, INVALID_JSON, INVALID_ID, NOT_FOUND, CONFLICT,
QUERY_ERROR, RATE_LIMITED, SERVICE_UNAVAILABLE, UNAUTHORIZED.
*/
package api
