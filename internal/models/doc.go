// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

// Package models defines the storefront's catalog entities and the record
// shapes exposed over HTTP, WebSocket and the product update topic.
//
// Monetary amounts are decimal.Decimal inside the service. The exported
// record types (ProductRecord, BundleRecord) carry float64 values rounded to
// cents so clients receive plain JSON numbers.
package models
