// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

/*
Package supervisor runs the long-lived parts of the server under a
suture v4 supervision tree.

	classycouture (root)
	├── broker-layer     embedded NATS server (nats build, embedded_server)
	├── messaging-layer  websocket hub, change notifier, topic relay
	└── api-layer        HTTP server

Every service implements suture.Service (Serve(ctx) error plus String for
log lines). A service that returns an error or panics is restarted with
backoff; FailureThreshold failures within the decay window put its layer
into FailureBackoff.

Supervisor events (restarts, backoff, panics) are logged through
sutureslog, which writes to the slog adapter over zerolog
(logging.NewSlogLogger).

Shutdown: canceling the context passed to Serve stops all layers. Each
service gets ShutdownTimeout to return; UnstoppedServiceReport lists any
that did not.
*/
package supervisor
