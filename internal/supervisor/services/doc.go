// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

/*
Package services adapts components whose lifecycle is not already
Serve(ctx) error to suture.Service.

HTTPServerService wraps *http.Server: ListenAndServe runs in a goroutine and
context cancellation triggers Shutdown with a drain timeout.

BrokerService wraps the embedded NATS server, which starts in its
constructor; the service only owns its shutdown.

The websocket hub, the change notifier and the topic relay implement
suture.Service themselves and are added to the tree directly.
*/
package services
