// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

// Package database implements the catalog store on DuckDB.
//
// The store holds categories, products, reviews, users, orders, order items
// and newsletter subscriptions. It serves three kinds of callers:
//
//   - the recommendation engine, through point lookups, filtered product
//     queries and the co-purchase / sales aggregates in aggregates.go
//   - the subscription broker, through the new arrival and featured
//     snapshots in snapshots.go
//   - the HTTP handlers, for catalog reads and the admin write surface
//
// Product ratings are never stored. Every product read joins the review
// aggregate and reports ROUND(AVG(rating), 1), or 0 with no reviews.
//
// Product mutations notify a ProductChangeListener after the write succeeds.
// The listener is expected to enqueue and return; a listener that panics or
// blocks is a bug in the listener, not a reason to fail the write.
//
// Lookups of a missing row return a nil result and a nil error.
package database
