// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/classycouture/internal/logging"
	"github.com/tomtom215/classycouture/internal/models"
)

type seedProduct struct {
	name        string
	description string
	price       string
	image       string
	category    string
	featured    bool
	newArrival  bool
	inventory   int
	ageDays     int
}

var seedCategories = []models.Category{
	{Name: "Women", IsCollection: true, DisplayOrder: 1, ImageURL: "https://images.unsplash.com/photo-1567777869896-9c5b0d22c3fe?w=400&h=400&fit=crop"},
	{Name: "Men", IsCollection: true, DisplayOrder: 2, ImageURL: "https://images.unsplash.com/photo-1614707267537-b85faf00021b?w=400&h=400&fit=crop"},
	{Name: "Accessories", IsCollection: true, DisplayOrder: 3, ImageURL: "https://images.unsplash.com/photo-1515886657613-9f3515b0c78f?w=400&h=400&fit=crop"},
	{Name: "Shoes", IsCollection: true, DisplayOrder: 4, ImageURL: "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400&h=400&fit=crop"},
}

var seedProducts = []seedProduct{
	{"Classic Black Blazer", "Elegant and timeless black blazer perfect for any occasion", "129.99",
		"https://images.unsplash.com/photo-1591047990973-2c43eb69fcee?w=400&h=500&fit=crop", "Women", true, false, 25, 60},
	{"White Silk Blouse", "Luxurious white silk blouse with premium finish", "89.99",
		"https://images.unsplash.com/photo-1551028719-00167b16ebc5?w=400&h=500&fit=crop", "Women", true, true, 18, 5},
	{"Navy Blue Dress", "Sophisticated navy blue dress for elegant evenings", "149.99",
		"https://images.unsplash.com/photo-1595777707802-c2265d4c6596?w=400&h=500&fit=crop", "Women", true, true, 12, 3},
	{"Premium Denim Jeans", "High-quality denim jeans with comfortable fit", "79.99",
		"https://images.unsplash.com/photo-1542272604-787c62d465d1?w=400&h=500&fit=crop", "Women", true, false, 40, 45},
	{"Charcoal Suit", "Professional charcoal suit perfect for business", "299.99",
		"https://images.unsplash.com/photo-1591047990973-2c43eb69fcee?w=400&h=500&fit=crop", "Men", true, false, 8, 90},
	{"Oxford Button-Down Shirt", "Classic oxford button-down shirt in white", "59.99",
		"https://images.unsplash.com/photo-1596455160519-b21d5bb269fe?w=400&h=500&fit=crop", "Men", true, true, 30, 2},
	{"Leather Dress Shoes", "Premium leather dress shoes for formal occasions", "159.99",
		"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400&h=500&fit=crop", "Shoes", true, false, 15, 30},
	{"Sneaker Collection", "Modern and comfortable sneakers for everyday wear", "99.99",
		"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400&h=500&fit=crop", "Shoes", true, true, 22, 7},
	{"Silk Scarf", "Elegant silk scarf with beautiful patterns", "49.99",
		"https://images.unsplash.com/photo-1515886657613-9f3515b0c78f?w=400&h=500&fit=crop", "Accessories", false, false, 0, 120},
	{"Designer Handbag", "Sophisticated leather handbag for daily use", "189.99",
		"https://images.unsplash.com/photo-1548036328-c9fa89d128fa?w=400&h=500&fit=crop", "Accessories", true, false, 6, 20},
}

var seedReviews = []struct {
	product, customer, email, text string
	rating                         int
}{
	{"Classic Black Blazer", "Sarah Johnson", "sarah@example.com", "Excellent quality blazer! Fits perfectly and looks very professional. Highly recommended!", 5},
	{"Classic Black Blazer", "Emma Wilson", "emma@example.com", "Great blazer, very versatile. Perfect for work and casual outings.", 4},
	{"White Silk Blouse", "Michael Chen", "michael@example.com", "Premium quality silk. The material feels luxurious and the fit is impeccable.", 5},
	{"Navy Blue Dress", "Jessica Brown", "jessica@example.com", "Absolutely stunning dress! Wore it to an evening event and received many compliments.", 5},
	{"Charcoal Suit", "David Martinez", "david@example.com", "Professional suit with perfect tailoring. Great value for money.", 4},
	{"Leather Dress Shoes", "Robert Taylor", "robert@example.com", "Comfortable and stylish. These shoes are perfect for business meetings.", 4},
}

var seedUsers = []struct{ username, email string }{
	{"sarah", "sarah@example.com"},
	{"david", "david@example.com"},
	{"guest", "guest@example.com"},
}

// seedOrders are (user index, status, age in days, product names).
var seedOrders = []struct {
	user     int
	status   models.OrderStatus
	ageDays  int
	products []string
}{
	{0, models.OrderDelivered, 40, []string{"Classic Black Blazer", "White Silk Blouse"}},
	{0, models.OrderShipped, 10, []string{"Navy Blue Dress", "Leather Dress Shoes"}},
	{0, models.OrderProcessing, 2, []string{"Classic Black Blazer", "Premium Denim Jeans"}},
	{1, models.OrderDelivered, 12, []string{"Charcoal Suit", "Oxford Button-Down Shirt", "Leather Dress Shoes"}},
	{1, models.OrderDelivered, 6, []string{"Charcoal Suit", "Leather Dress Shoes"}},
	{1, models.OrderPending, 1, []string{"Sneaker Collection"}},
}

// SeedSampleData loads the demo catalog, customers and order history into an
// empty store. It reports false without changes when products already exist.
func (db *DB) SeedSampleData(ctx context.Context) (bool, error) {
	n, err := db.CountProducts(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	now := db.now()

	categoryIDs := make(map[string]int64, len(seedCategories))
	for i := range seedCategories {
		c, err := db.CreateCategory(ctx, &seedCategories[i])
		if err != nil {
			return false, err
		}
		categoryIDs[c.Name] = c.ID
	}

	// Seeding must not broadcast: nobody is subscribed yet and the events
	// would only fill the notifier queue.
	listener := db.changeListener()
	db.SetChangeListener(nil)
	defer db.SetChangeListener(listener)

	productIDs := make(map[string]int64, len(seedProducts))
	for i, sp := range seedProducts {
		p, err := db.CreateProduct(ctx, &models.Product{
			Name:        sp.name,
			Description: sp.description,
			Price:       decimal.RequireFromString(sp.price),
			ImageURL:    sp.image,
			CategoryID:  categoryIDs[sp.category],
			Featured:    sp.featured,
			NewArrival:  sp.newArrival,
			Inventory:   sp.inventory,
			SKU:         fmt.Sprintf("CC-%04d", i+1),
			CreatedAt:   now.Add(-time.Duration(sp.ageDays) * 24 * time.Hour),
		})
		if err != nil {
			return false, err
		}
		productIDs[p.Name] = p.ID
	}

	for _, r := range seedReviews {
		if _, err := db.AddReview(ctx, &models.Review{
			ProductID:    productIDs[r.product],
			CustomerName: r.customer,
			Email:        r.email,
			Text:         r.text,
			Rating:       r.rating,
		}); err != nil {
			return false, err
		}
	}

	userIDs := make([]int64, 0, len(seedUsers))
	for _, u := range seedUsers {
		created, err := db.CreateUser(ctx, u.username, u.email)
		if err != nil {
			return false, err
		}
		userIDs = append(userIDs, created.ID)
	}

	for _, o := range seedOrders {
		lines := make([]models.OrderLine, 0, len(o.products))
		for _, name := range o.products {
			lines = append(lines, models.OrderLine{ProductID: productIDs[name], Quantity: 1})
		}
		createdAt := now.Add(-time.Duration(o.ageDays) * 24 * time.Hour)
		if _, err := db.CreateOrder(ctx, userIDs[o.user], o.status, lines, createdAt); err != nil {
			return false, err
		}
	}

	logging.Info().
		Int("categories", len(seedCategories)).
		Int("products", len(seedProducts)).
		Int("orders", len(seedOrders)).
		Msg("Seeded sample catalog")
	return true, nil
}
