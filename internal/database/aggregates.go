// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/classycouture/internal/models"
)

// CoPurchaseCounts returns, for every other product that shares an order
// with productID, the number of distinct orders they share. Results are
// ordered by count descending, then product id ascending. Deleted products
// are not reported.
func (db *DB) CoPurchaseCounts(ctx context.Context, productID int64) (counts []models.ProductCount, err error) {
	defer observe("SELECT", "order_items", time.Now(), &err)

	rows, err := db.conn.QueryContext(ctx, `
		SELECT oi.product_id, COUNT(DISTINCT oi.order_id) AS frequency
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id IN (SELECT order_id FROM order_items WHERE product_id = ?)
		  AND oi.product_id <> ?
		GROUP BY oi.product_id
		ORDER BY frequency DESC, oi.product_id ASC`,
		productID, productID)
	if err != nil {
		return nil, fmt.Errorf("co-purchase counts for %d: %w", productID, err)
	}
	return scanProductCounts(rows)
}

// SalesCounts counts order items per product over orders whose status is in
// statuses, optionally restricted to orders created at or after since.
// Results are ordered by count descending, then product id ascending.
func (db *DB) SalesCounts(ctx context.Context, since *time.Time, statuses []models.OrderStatus) (counts []models.ProductCount, err error) {
	defer observe("SELECT", "order_items", time.Now(), &err)

	if len(statuses) == 0 {
		return []models.ProductCount{}, nil
	}

	query := `
		SELECT oi.product_id, COUNT(*) AS sales
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.status IN (` + placeholders(len(statuses)) + `)`
	args := make([]interface{}, 0, len(statuses)+1)
	for _, s := range statuses {
		args = append(args, string(s))
	}
	if since != nil {
		query += ` AND o.created_at >= ?`
		args = append(args, since.UTC())
	}
	query += `
		GROUP BY oi.product_id
		ORDER BY sales DESC, oi.product_id ASC`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales counts: %w", err)
	}
	return scanProductCounts(rows)
}

func scanProductCounts(rows *sql.Rows) ([]models.ProductCount, error) {
	defer closeWithLog(rows, "rows")

	counts := make([]models.ProductCount, 0)
	for rows.Next() {
		var c models.ProductCount
		if err := rows.Scan(&c.ProductID, &c.Count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// UserExists reports whether a user with the id exists.
func (db *DB) UserExists(ctx context.Context, userID int64) (exists bool, err error) {
	defer observe("SELECT", "users", time.Now(), &err)
	err = db.conn.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("user exists %d: %w", userID, err)
	}
	return exists, nil
}

// PurchasedProductIDs returns the distinct products the user has ever
// ordered, in ascending id order. Orders of every status count.
func (db *DB) PurchasedProductIDs(ctx context.Context, userID int64) (ids []int64, err error) {
	defer observe("SELECT", "order_items", time.Now(), &err)

	rows, err := db.conn.QueryContext(ctx, `
		SELECT DISTINCT oi.product_id
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.user_id = ?
		ORDER BY oi.product_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("purchased products of user %d: %w", userID, err)
	}
	defer closeWithLog(rows, "rows")

	ids = make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PurchaseCategoryCounts counts the distinct products the user has bought
// per category; buying one product again does not raise its category. Results are ordered by count descending, then category
// id ascending. Uncategorised and deleted products are skipped.
func (db *DB) PurchaseCategoryCounts(ctx context.Context, userID int64) (counts []models.CategoryCount, err error) {
	defer observe("SELECT", "order_items", time.Now(), &err)

	rows, err := db.conn.QueryContext(ctx, `
		SELECT p.category_id, COUNT(DISTINCT oi.product_id) AS purchases
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.user_id = ? AND p.category_id IS NOT NULL
		GROUP BY p.category_id
		ORDER BY purchases DESC, p.category_id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("category counts of user %d: %w", userID, err)
	}
	defer closeWithLog(rows, "rows")

	counts = make([]models.CategoryCount, 0)
	for rows.Next() {
		var c models.CategoryCount
		if err := rows.Scan(&c.CategoryID, &c.Count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
