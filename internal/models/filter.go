// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package models

import "github.com/shopspring/decimal"

// ProductOrder selects the sort applied by a product query. Every order
// ends with product id ascending so results are deterministic.
type ProductOrder int

const (
	// OrderRecommended sorts featured first, then rating, then newest.
	OrderRecommended ProductOrder = iota
	// OrderTopRated sorts by rating, then newest.
	OrderTopRated
	// OrderNewest sorts by creation time, newest first.
	OrderNewest
)

// ProductFilter describes a catalog query. Zero values mean "no constraint";
// a zero Limit means no limit.
type ProductFilter struct {
	CategoryIDs []int64
	IDs         []int64
	ExcludeIDs  []int64
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	InStockOnly bool
	Featured    *bool
	NewArrival  *bool
	OnSale      *bool
	Order       ProductOrder
	Limit       int
	Offset      int
}

// ProductCount pairs a product with an aggregate count (co-purchases, sales).
type ProductCount struct {
	ProductID int64
	Count     int
}

// CategoryCount pairs a category with an aggregate count.
type CategoryCount struct {
	CategoryID int64
	Count      int
}

// Bool returns a pointer to b, for optional filter fields.
func Bool(b bool) *bool {
	return &b
}
