// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package recommend

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/classycouture/internal/models"
)

var errCatalogDown = errors.New("catalog unavailable")

type fakeOrder struct {
	userID    int64
	status    models.OrderStatus
	createdAt time.Time
	products  []int64
}

// fakeCatalog is an in-memory Catalog with the same ordering rules as the
// DuckDB store.
type fakeCatalog struct {
	products map[int64]models.Product
	users    map[int64]bool
	orders   []fakeOrder
	nextID   int64
	err      error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: make(map[int64]models.Product),
		users:    make(map[int64]bool),
	}
}

type productOpt func(*models.Product)

func featured(p *models.Product)   { p.Featured = true }
func outOfStock(p *models.Product) { p.Inventory = 0 }

func rated(r float64) productOpt {
	return func(p *models.Product) { p.Rating = r }
}

func age(d time.Duration) productOpt {
	return func(p *models.Product) { p.CreatedAt = testNow.Add(-d) }
}

func (f *fakeCatalog) add(name string, categoryID int64, price string, opts ...productOpt) models.Product {
	f.nextID++
	p := models.Product{
		ID:         f.nextID,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		CategoryID: categoryID,
		Inventory:  5,
		CreatedAt:  testNow.Add(-time.Duration(f.nextID) * time.Hour),
	}
	for _, opt := range opts {
		opt(&p)
	}
	f.products[p.ID] = p
	return p
}

func (f *fakeCatalog) order(userID int64, status models.OrderStatus, ago time.Duration, productIDs ...int64) {
	f.users[userID] = true
	f.orders = append(f.orders, fakeOrder{
		userID:    userID,
		status:    status,
		createdAt: testNow.Add(-ago),
		products:  productIDs,
	})
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (f *fakeCatalog) FindProducts(_ context.Context, flt models.ProductFilter) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Product, 0)
	for _, p := range f.products {
		switch {
		case len(flt.CategoryIDs) > 0 && !contains(flt.CategoryIDs, p.CategoryID):
		case len(flt.IDs) > 0 && !contains(flt.IDs, p.ID):
		case contains(flt.ExcludeIDs, p.ID):
		case flt.MinPrice != nil && p.Price.LessThan(*flt.MinPrice):
		case flt.MaxPrice != nil && p.Price.GreaterThan(*flt.MaxPrice):
		case flt.InStockOnly && !p.InStock():
		case flt.Featured != nil && p.Featured != *flt.Featured:
		case flt.NewArrival != nil && p.NewArrival != *flt.NewArrival:
		case flt.OnSale != nil && p.OnSale != *flt.OnSale:
		default:
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if flt.Order == models.OrderRecommended && a.Featured != b.Featured {
			return a.Featured
		}
		if flt.Order != models.OrderNewest && a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	if flt.Offset > 0 {
		if flt.Offset >= len(out) {
			return []models.Product{}, nil
		}
		out = out[flt.Offset:]
	}
	if flt.Limit > 0 && len(out) > flt.Limit {
		out = out[:flt.Limit]
	}
	return out, nil
}

func sortCounts(m map[int64]int) []models.ProductCount {
	counts := make([]models.ProductCount, 0, len(m))
	for id, n := range m {
		counts = append(counts, models.ProductCount{ProductID: id, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].ProductID < counts[j].ProductID
	})
	return counts
}

func (f *fakeCatalog) CoPurchaseCounts(_ context.Context, productID int64) ([]models.ProductCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	m := make(map[int64]int)
	for _, o := range f.orders {
		if !contains(o.products, productID) {
			continue
		}
		shared := make(map[int64]bool)
		for _, id := range o.products {
			if id != productID {
				shared[id] = true
			}
		}
		for id := range shared {
			m[id]++
		}
	}
	return sortCounts(m), nil
}

func (f *fakeCatalog) SalesCounts(_ context.Context, since *time.Time, statuses []models.OrderStatus) ([]models.ProductCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	m := make(map[int64]int)
	for _, o := range f.orders {
		ok := false
		for _, s := range statuses {
			if o.status == s {
				ok = true
			}
		}
		if !ok || (since != nil && o.createdAt.Before(*since)) {
			continue
		}
		for _, id := range o.products {
			m[id]++
		}
	}
	return sortCounts(m), nil
}

func (f *fakeCatalog) UserExists(_ context.Context, userID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.users[userID], nil
}

func (f *fakeCatalog) PurchasedProductIDs(_ context.Context, userID int64) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	set := make(map[int64]bool)
	for _, o := range f.orders {
		if o.userID != userID {
			continue
		}
		for _, id := range o.products {
			set[id] = true
		}
	}
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeCatalog) PurchaseCategoryCounts(_ context.Context, userID int64) ([]models.CategoryCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	m := make(map[int64]int)
	counted := make(map[int64]bool)
	for _, o := range f.orders {
		if o.userID != userID {
			continue
		}
		for _, id := range o.products {
			if p, ok := f.products[id]; ok && p.CategoryID != 0 && !counted[id] {
				counted[id] = true
				m[p.CategoryID]++
			}
		}
	}
	byProduct := sortCounts(m)
	counts := make([]models.CategoryCount, 0, len(byProduct))
	for _, c := range byProduct {
		counts = append(counts, models.CategoryCount{CategoryID: c.ProductID, Count: c.Count})
	}
	return counts, nil
}
