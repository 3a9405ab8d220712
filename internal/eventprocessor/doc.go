// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

// Package eventprocessor turns catalog mutations into product change events
// and carries them to the WebSocket broker over a Watermill topic.
//
// # Data Flow
//
//	┌──────────────┐  listener   ┌──────────┐  bounded   ┌────────────┐
//	│ Catalog Store│ ──────────► │ Notifier │ ─ queue ─► │ dispatcher │
//	│  (mutations) │  callbacks  │  (Emit)  │            │  (Serve)   │
//	└──────────────┘             └──────────┘            └─────┬──────┘
//	                                                           │ Publish
//	                                                           ▼
//	                                              ┌─────────────────────────┐
//	                                              │ topic "product_updates" │
//	                                              │ gochannel | NATS core   │
//	                                              └────────────┬────────────┘
//	                                                           │ Subscribe
//	                                                           ▼
//	                                                      ┌─────────┐
//	                                                      │  Relay  │ ──► websocket.Hub
//	                                                      └─────────┘
//
// # Delivery Guarantees
//
// Delivery is at-most-once and best-effort. Emit never blocks: when the
// queue is full, or no transport is configured, the event is dropped and
// counted. Publish failures are logged and counted by the dispatcher and
// never reach the code that mutated the catalog. There is no replay; a
// subscriber that connects later sees only the broker's connect snapshot.
//
// # Transports
//
// The in-memory topic (NewMemoryTopic) is the default and is what tests
// use. Building with -tags nats adds a core NATS publisher and subscriber
// through watermill-nats, plus an optional embedded NATS server, so several
// storefront instances can share one product update stream. Without the
// tag those constructors return ErrNATSNotEnabled.
//
// A BreakerPublisher can wrap either transport so a failing broker trips a
// circuit instead of costing every event a connection timeout.
package eventprocessor
