// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

/*
Package main is the entry point for the ClassyCouture server.

ClassyCouture serves a clothing store's product catalog, product
recommendations and live product updates over HTTP and WebSocket.

# Application Architecture

	RootSupervisor ("classycouture")
	├── BrokerSupervisor ("broker-layer")
	│   └── Embedded NATS server (REALTIME_TRANSPORT=nats, NATS_EMBEDDED=true)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocket hub
	│   ├── Product change notifier (realtime enabled)
	│   └── Product update relay (realtime enabled)
	└── APISupervisor ("api-layer")
	    └── HTTP server

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog
 3. Database: DuckDB, schema created on open, optional sample data
 4. Recommendation engine
 5. WebSocket hub
 6. Event transport: in-process topic or NATS, behind a circuit breaker
 7. Change notifier, registered as the database's change listener
 8. Chi router and HTTP server
 9. Supervisor tree

# Configuration

	HTTP_PORT=8000
	DUCKDB_PATH=/data/classycouture.duckdb
	SEED_SAMPLE_DATA=true
	LOG_LEVEL=info
	LOG_FORMAT=json
	CORS_ORIGINS=https://shop.example.com
	ADMIN_TOKEN=<32+ chars>        # admin routes are not mounted without it
	REALTIME_ENABLED=true
	REALTIME_TRANSPORT=memory      # memory or nats
	NATS_URL=nats://127.0.0.1:4222
	NATS_EMBEDDED=false

# Build Tags

The NATS transport and the embedded server need the nats tag:

	go build -tags nats ./cmd/server

Without it, REALTIME_TRANSPORT=nats fails at startup.

# Signal Handling

SIGINT and SIGTERM cancel the root context. Every layer of the supervisor
tree is stopped; the HTTP server drains requests for up to HTTP_TIMEOUT and
the embedded broker shuts down. The event transport and the database are
closed after the tree returns.
*/
package main
