// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRecord is the product shape sent to storefront clients.
type ProductRecord struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	DiscountedPrice float64   `json:"discounted_price"`
	ImageURL        string    `json:"image_url"`
	Rating          float64   `json:"rating"`
	ReviewCount     int       `json:"review_count"`
	Featured        bool      `json:"featured"`
	InStock         bool      `json:"in_stock"`
	CategoryID      int64     `json:"category_id,omitempty"`
	CategoryName    string    `json:"category_name"`
	OnSale          bool      `json:"on_sale"`
	DiscountPercent int       `json:"discount_percent"`
	NewArrival      bool      `json:"new_arrival"`
	CreatedAt       time.Time `json:"created_at"`
}

// ProductDetail extends ProductRecord with fields shown on the product page.
type ProductDetail struct {
	ProductRecord
	Description string `json:"description"`
	Inventory   int    `json:"inventory"`
	SKU         string `json:"sku,omitempty"`
}

// Money converts an amount to a float64 rounded to cents.
func Money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Record converts p to its client shape.
func (p *Product) Record() ProductRecord {
	return ProductRecord{
		ID:              p.ID,
		Name:            p.Name,
		Price:           Money(p.Price),
		DiscountedPrice: Money(p.DiscountedPrice()),
		ImageURL:        p.ImageURL,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		Featured:        p.Featured,
		InStock:         p.InStock(),
		CategoryID:      p.CategoryID,
		CategoryName:    p.CategoryName,
		OnSale:          p.OnSale,
		DiscountPercent: p.DiscountPercent,
		NewArrival:      p.NewArrival,
		CreatedAt:       p.CreatedAt,
	}
}

// Detail converts p to its product page shape.
func (p *Product) Detail() ProductDetail {
	return ProductDetail{
		ProductRecord: p.Record(),
		Description:   p.Description,
		Inventory:     p.Inventory,
		SKU:           p.SKU,
	}
}

// Records converts a slice of products, never returning nil.
func Records(products []Product) []ProductRecord {
	out := make([]ProductRecord, 0, len(products))
	for i := range products {
		out = append(out, products[i].Record())
	}
	return out
}

// Bundle pairs a product with a companion at a discounted combined price.
type Bundle struct {
	Main            Product
	Companion       Product
	BundlePrice     decimal.Decimal
	DiscountedPrice decimal.Decimal
	Savings         decimal.Decimal
	DiscountPercent int
}

// BundleItem is the compact product shape inside a bundle record.
type BundleItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
}

// BundleRecord is the bundle shape sent to clients.
type BundleRecord struct {
	MainProduct      BundleItem `json:"main_product"`
	CompanionProduct BundleItem `json:"companion_product"`
	BundlePrice      float64    `json:"bundle_price"`
	DiscountedPrice  float64    `json:"discounted_price"`
	Savings          float64    `json:"savings"`
	DiscountPercent  int        `json:"discount_percent"`
}

func bundleItem(p *Product) BundleItem {
	return BundleItem{ID: p.ID, Name: p.Name, Price: Money(p.Price), ImageURL: p.ImageURL}
}

// Record converts b to its client shape.
func (b *Bundle) Record() BundleRecord {
	return BundleRecord{
		MainProduct:      bundleItem(&b.Main),
		CompanionProduct: bundleItem(&b.Companion),
		BundlePrice:      Money(b.BundlePrice),
		DiscountedPrice:  Money(b.DiscountedPrice),
		Savings:          Money(b.Savings),
		DiscountPercent:  b.DiscountPercent,
	}
}

// BundleRecords converts a slice of bundles, never returning nil.
func BundleRecords(bundles []Bundle) []BundleRecord {
	out := make([]BundleRecord, 0, len(bundles))
	for i := range bundles {
		out = append(out, bundles[i].Record())
	}
	return out
}
