// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

// Package logging wraps zerolog as the single logging backend for the
// storefront service.
//
// The package keeps one global zerolog.Logger that is configured once at
// startup from the logging section of the service configuration:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//
// Request-scoped logging picks up the request and correlation IDs that the
// HTTP middleware stores on the context:
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("recommendation query failed")
//
// Two adapters let libraries that expect other logger interfaces write
// through zerolog:
//
//   - SlogHandler implements slog.Handler (used by sutureslog in the
//     supervisor tree).
//   - WatermillLogger implements watermill.LoggerAdapter (used by the
//     product update topic publishers and subscribers).
//
// Always terminate event chains with Msg or Send, otherwise nothing is
// written.
package logging
