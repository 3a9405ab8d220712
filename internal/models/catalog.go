// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products. Top-level categories flagged IsCollection are
// shown as collections on the storefront.
type Category struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	ParentID     *int64    `json:"parent_id,omitempty"`
	IsCollection bool      `json:"is_collection"`
	DisplayOrder int       `json:"display_order"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsTopLevelCollection reports whether the category is listed as a collection.
func (c *Category) IsTopLevelCollection() bool {
	return c.ParentID == nil && c.IsCollection
}

// Product is a sellable catalog item. Rating and ReviewCount are aggregates
// computed by the store from reviews, never stored on the product row.
type Product struct {
	ID              int64
	Name            string
	Description     string
	Price           decimal.Decimal
	ImageURL        string
	CategoryID      int64 // 0 when uncategorised
	CategoryName    string
	Featured        bool
	Inventory       int
	SKU             string
	OnSale          bool
	DiscountPercent int
	NewArrival      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Rating is the mean review rating rounded to one decimal, 0 with no reviews.
	Rating      float64
	ReviewCount int
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Inventory > 0
}

// DiscountedPrice is the price after the sale discount, rounded to cents.
// Products that are not on sale, or have no discount, return Price.
func (p *Product) DiscountedPrice() decimal.Decimal {
	if !p.OnSale || p.DiscountPercent <= 0 {
		return p.Price
	}
	off := p.Price.Mul(decimal.NewFromInt(int64(p.DiscountPercent))).Div(decimal.NewFromInt(100))
	return p.Price.Sub(off).Round(2)
}

// Review is a customer rating of a product.
type Review struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	CustomerName string    `json:"customer_name"`
	Email        string    `json:"-"`
	Text         string    `json:"text"`
	Rating       int       `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
}

// User is a storefront customer identity. Authentication lives elsewhere.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
