// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tomtom215/classycouture/internal/models"
)

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name and joins its alphanumeric runs with dashes.
func Slugify(name string) string {
	return strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// CreateCategory inserts c. An empty slug is derived from the name.
func (db *DB) CreateCategory(ctx context.Context, c *models.Category) (created *models.Category, err error) {
	defer observe("INSERT", "categories", time.Now(), &err)

	out := *c
	if out.Slug == "" {
		out.Slug = Slugify(out.Name)
	}
	out.CreatedAt = db.now()

	var parent interface{}
	if out.ParentID != nil {
		parent = *out.ParentID
	}
	err = db.conn.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug, description, parent_id, is_collection, display_order, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		out.Name, out.Slug, out.Description, parent, out.IsCollection, out.DisplayOrder, out.ImageURL, out.CreatedAt,
	).Scan(&out.ID)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &out, nil
}

// ListCategories returns categories ordered by display order then name.
// With collectionsOnly, only top-level collections are returned.
func (db *DB) ListCategories(ctx context.Context, collectionsOnly bool) (categories []models.Category, err error) {
	defer observe("SELECT", "categories", time.Now(), &err)

	query := `SELECT id, name, slug, description, parent_id, is_collection, display_order, image_url, created_at
		FROM categories`
	if collectionsOnly {
		query += ` WHERE parent_id IS NULL AND is_collection`
	}
	query += ` ORDER BY display_order, name, id`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer closeWithLog(rows, "rows")

	categories = make([]models.Category, 0)
	for rows.Next() {
		var (
			c      models.Category
			parent sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &parent, &c.IsCollection,
			&c.DisplayOrder, &c.ImageURL, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if parent.Valid {
			id := parent.Int64
			c.ParentID = &id
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// AddReview stores a review for r.ProductID. It returns nil if the product
// does not exist.
func (db *DB) AddReview(ctx context.Context, r *models.Review) (*models.Review, error) {
	p, err := db.GetProduct(ctx, r.ProductID)
	if err != nil || p == nil {
		return nil, err
	}

	start := time.Now()
	out := *r
	out.CreatedAt = db.now()
	err = db.conn.QueryRowContext(ctx, `
		INSERT INTO reviews (product_id, customer_name, email, review_text, rating, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		out.ProductID, out.CustomerName, out.Email, out.Text, out.Rating, out.CreatedAt,
	).Scan(&out.ID)
	observe("INSERT", "reviews", start, &err)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}
	return &out, nil
}

// ListReviews returns up to limit reviews of a product, newest first. A
// non-positive limit returns all reviews.
func (db *DB) ListReviews(ctx context.Context, productID int64, limit int) (reviews []models.Review, err error) {
	defer observe("SELECT", "reviews", time.Now(), &err)

	query := `SELECT id, product_id, customer_name, email, review_text, rating, created_at
		FROM reviews WHERE product_id = ?
		ORDER BY created_at DESC, id DESC`
	args := []interface{}{productID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews of product %d: %w", productID, err)
	}
	defer closeWithLog(rows, "rows")

	reviews = make([]models.Review, 0)
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.ProductID, &r.CustomerName, &r.Email, &r.Text, &r.Rating, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// CreateUser inserts a customer identity.
func (db *DB) CreateUser(ctx context.Context, username, email string) (u *models.User, err error) {
	defer observe("INSERT", "users", time.Now(), &err)

	u = &models.User{Username: username, Email: email, CreatedAt: db.now()}
	err = db.conn.QueryRowContext(ctx,
		`INSERT INTO users (username, email, created_at) VALUES (?, ?, ?) RETURNING id`,
		u.Username, u.Email, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		return nil, fmt.Errorf("insert user %q: %w", username, err)
	}
	return u, nil
}
