// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package database

import (
	"context"

	"github.com/tomtom215/classycouture/internal/models"
)

// The broker snapshots filter on the merchandising flag only. Out of stock
// products are included, unlike the recommendation lists.

// NewArrivalsSnapshot returns up to limit products flagged as new arrivals,
// newest first.
func (db *DB) NewArrivalsSnapshot(ctx context.Context, limit int) ([]models.ProductRecord, error) {
	products, err := db.FindProducts(ctx, models.ProductFilter{
		NewArrival: models.Bool(true),
		Order:      models.OrderNewest,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	return models.Records(products), nil
}

// FeaturedSnapshot returns up to limit featured products, newest first.
func (db *DB) FeaturedSnapshot(ctx context.Context, limit int) ([]models.ProductRecord, error) {
	products, err := db.FindProducts(ctx, models.ProductFilter{
		Featured: models.Bool(true),
		Order:    models.OrderNewest,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}
	return models.Records(products), nil
}
