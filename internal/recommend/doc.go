// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

// Package recommend computes ranked product lists for the storefront.
//
// # Strategies
//
//   - SimilarProducts: same category, price within a band around the source
//     product, in stock, featured first then rating then newest.
//   - FrequentlyBoughtTogether: products sharing orders with the source,
//     ranked by the number of shared orders. Falls back to SimilarProducts
//     when the product has never been bought with anything else.
//   - PersonalizedRecommendations: unpurchased products from the user's
//     favorite categories, padded with trending products.
//   - TrendingProducts: completed-order sales over a trailing window, padded
//     with featured products.
//   - YouMayAlsoLike: similar and personalized lists interleaved.
//   - BundleSuggestions: the source product paired with each frequently
//     bought companion at a fixed bundle discount.
//   - NewArrivals and BestSellers.
//
// # Failure Model
//
// A missing product or user is never an error: the strategy returns an
// empty list or its documented fallback. Errors are returned only when the
// Catalog itself fails, and callers are expected to degrade to an empty
// list rather than fail the page.
//
// # Thread Safety
//
// The Engine holds no mutable state after construction. All methods are
// safe for concurrent use; consistency between reads is whatever the
// Catalog provides.
//
// # Usage
//
//	engine, err := recommend.NewEngine(db, recommend.DefaultConfig(), logging.Logger())
//	if err != nil {
//	    return err
//	}
//	products, err := engine.SimilarProducts(ctx, productID, 6)
package recommend
