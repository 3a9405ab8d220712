// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/classycouture/internal/models"
)

func TestListCategories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	women, err := db.CreateCategory(ctx, &models.Category{Name: "Women", IsCollection: true, DisplayOrder: 2})
	if err != nil {
		t.Fatal(err)
	}
	if women.Slug != "women" {
		t.Errorf("slug = %q, want women", women.Slug)
	}
	if _, err := db.CreateCategory(ctx, &models.Category{Name: "Evening Wear", ParentID: &women.ID, IsCollection: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := db.CreateCategory(ctx, &models.Category{Name: "Clearance", DisplayOrder: 1}); err != nil {
		t.Fatal(err)
	}

	all, err := db.ListCategories(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].Name != "Evening Wear" || all[1].Name != "Clearance" {
		t.Errorf("all categories order = %+v", all)
	}
	if all[0].ParentID == nil || *all[0].ParentID != women.ID {
		t.Errorf("nested category parent = %v", all[0].ParentID)
	}

	collections, err := db.ListCategories(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(collections) != 1 || collections[0].ID != women.ID {
		t.Errorf("collections = %+v, want only Women", collections)
	}
}

func TestListReviewsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	cat := mustCategory(t, db, "Women")
	p := mustProduct(t, db, "Dress", "149.99", cat)

	for _, name := range []string{"first", "second", "third"} {
		if _, err := db.AddReview(ctx, &models.Review{ProductID: p.ID, CustomerName: name, Text: "ok", Rating: 4}); err != nil {
			t.Fatal(err)
		}
	}

	reviews, err := db.ListReviews(ctx, p.ID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(reviews) != 2 || reviews[0].CustomerName != "third" || reviews[1].CustomerName != "second" {
		t.Errorf("reviews = %+v", reviews)
	}
}

func TestNewsletterSubscribe(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	sub, created, err := db.Subscribe(ctx, " Shopper@Example.com ")
	if err != nil || !created {
		t.Fatalf("first Subscribe = %v, %v", created, err)
	}
	if sub.Email != "shopper@example.com" {
		t.Errorf("email = %q, want normalized", sub.Email)
	}

	if _, _, err := db.Subscribe(ctx, "shopper@example.com"); !errors.Is(err, ErrAlreadySubscribed) {
		t.Errorf("duplicate err = %v, want ErrAlreadySubscribed", err)
	}

	found, err := db.Unsubscribe(ctx, "shopper@example.com")
	if err != nil || !found {
		t.Fatalf("Unsubscribe = %v, %v", found, err)
	}

	again, created, err := db.Subscribe(ctx, "shopper@example.com")
	if err != nil {
		t.Fatalf("reactivate err = %v", err)
	}
	if created || !again.IsActive || again.ID != sub.ID {
		t.Errorf("reactivation = %+v created=%v, want same row reactivated", again, created)
	}
}

func TestSnapshotsFilterOnFlagOnly(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	cat := mustCategory(t, db, "Shoes")

	soldOut := mustProduct(t, db, "Sold out sneaker", "99.99", cat, withNewArrival(), withStock(0))
	fresh := mustProduct(t, db, "Fresh loafer", "129.99", cat, withNewArrival(), withFeatured())
	mustProduct(t, db, "Old boot", "89.99", cat)

	arrivals, err := db.NewArrivalsSnapshot(ctx, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(arrivals) != 2 {
		t.Fatalf("arrivals = %+v, want 2 including out of stock", arrivals)
	}
	ids := map[int64]bool{arrivals[0].ID: true, arrivals[1].ID: true}
	if !ids[soldOut.ID] || !ids[fresh.ID] {
		t.Errorf("arrivals ids = %v", ids)
	}

	featured, err := db.FeaturedSnapshot(ctx, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(featured) != 1 || featured[0].ID != fresh.ID || featured[0].CategoryName != "Shoes" {
		t.Errorf("featured = %+v", featured)
	}
}

func TestSeedSampleDataOnce(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	rec := &recordingListener{}
	db.SetChangeListener(rec)

	seeded, err := db.SeedSampleData(ctx)
	if err != nil || !seeded {
		t.Fatalf("SeedSampleData = %v, %v", seeded, err)
	}
	n, err := db.CountProducts(ctx)
	if err != nil || n != len(seedProducts) {
		t.Fatalf("CountProducts = %d, %v", n, err)
	}
	if len(rec.created) != 0 {
		t.Errorf("seeding notified %d creations, want 0", len(rec.created))
	}

	seeded, err = db.SeedSampleData(ctx)
	if err != nil || seeded {
		t.Errorf("second SeedSampleData = %v, %v; want false, nil", seeded, err)
	}

	blazers, err := db.FindProducts(ctx, models.ProductFilter{IDs: []int64{1}})
	if err != nil || len(blazers) != 1 {
		t.Fatalf("blazer lookup = %v, %v", blazers, err)
	}
	if blazers[0].Rating != 4.5 || blazers[0].ReviewCount != 2 {
		t.Errorf("blazer rating = %v/%d, want 4.5/2", blazers[0].Rating, blazers[0].ReviewCount)
	}
}
