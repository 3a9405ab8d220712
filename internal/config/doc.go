// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

// Package config loads the service configuration with koanf.
//
// Values are layered, later layers winning:
//
//  1. Defaults from defaultConfig()
//  2. A YAML file (CONFIG_PATH, or config.yaml / config.yml in the working
//     directory, or /etc/classycouture/config.yaml)
//  3. Environment variables, mapped explicitly by envTransformFunc
//
// Comma separated environment values (CORS_ORIGINS) are split into slices
// before unmarshalling. Load validates the result before returning it.
//
// Commonly used variables:
//
//	HTTP_PORT, HTTP_HOST, ENVIRONMENT
//	DUCKDB_PATH, DUCKDB_MAX_MEMORY, SEED_SAMPLE_DATA
//	CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, ADMIN_TOKEN
//	LOG_LEVEL, LOG_FORMAT
//	REALTIME_TRANSPORT (memory|nats), NATS_URL, NATS_EMBEDDED
package config
