// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

/*
Package websocket is the subscription broker for live product updates.

A Hub keeps the set of connected subscribers and fans product change events
out to all of them. Each Client owns one gorilla/websocket connection with a
read pump and a write pump.

	relay ──BroadcastProductUpdate──▶ Hub ──▶ Client 1
	                                      ├─▶ Client 2
	                                      └─▶ Client N

Protocol (JSON text frames, {"type", "data", "message"}):

Server to client:
  - new_arrivals: pushed on connect and on get_new_arrivals
  - featured_products: reply to get_featured
  - product_update: data is the encoded product change event
  - pong: reply to ping
  - error: message explains what was wrong; the connection stays open

Client to server: get_new_arrivals, get_featured, ping. Anything else,
invalid JSON, or a request over the per-connection rate limit gets an error
reply.

Snapshots filter on the new-arrival or featured flag only, newest first,
capped at HubConfig.SnapshotLimit (8 by default).

Delivery is at-most-once. The broadcast queue and each client queue are
bounded; a full queue drops the message and counts it in
websocket_messages_dropped_total. A subscriber that connects after an event
never sees it.

Thread safety: Hub methods are safe for concurrent use. The client map is
only mutated by the RunWithContext goroutine.
*/
package websocket
