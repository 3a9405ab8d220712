// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/classycouture/internal/models"
)

// productSelect reads a product together with its category name and review
// aggregate. Prices are cast to text so they scan into decimal.Decimal exactly.
const productSelect = `
SELECT p.id, p.name, p.description, CAST(p.price AS VARCHAR), p.image_url,
       COALESCE(p.category_id, 0), COALESCE(c.name, ''),
       p.featured, p.inventory, p.sku, p.on_sale, p.discount_percent, p.new_arrival,
       p.created_at, p.updated_at,
       COALESCE(r.rating, 0) AS rating, COALESCE(r.review_count, 0) AS review_count
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
LEFT JOIN (
    SELECT product_id, ROUND(AVG(rating), 1) AS rating, COUNT(*) AS review_count
    FROM reviews
    GROUP BY product_id
) r ON r.product_id = p.id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(s rowScanner) (*models.Product, error) {
	var p models.Product
	err := s.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.CategoryID, &p.CategoryName,
		&p.Featured, &p.Inventory, &p.SKU, &p.OnSale, &p.DiscountPercent, &p.NewArrival,
		&p.CreatedAt, &p.UpdatedAt,
		&p.Rating, &p.ReviewCount,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProduct returns the product with the given id, or nil if there is none.
func (db *DB) GetProduct(ctx context.Context, id int64) (p *models.Product, err error) {
	defer observe("SELECT", "products", time.Now(), &err)

	row := db.conn.QueryRowContext(ctx, productSelect+` WHERE p.id = ?`, id)
	p, err = scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// FindProducts returns the products matching f. An empty f.IDs slice means
// "any id"; callers that need "no ids" must not call FindProducts.
func (db *DB) FindProducts(ctx context.Context, f models.ProductFilter) (products []models.Product, err error) {
	defer observe("SELECT", "products", time.Now(), &err)

	query, args := buildProductQuery(f)
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer closeWithLog(rows, "rows")

	products = make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// CountProducts returns the number of products in the catalog.
func (db *DB) CountProducts(ctx context.Context) (n int, err error) {
	defer observe("SELECT", "products", time.Now(), &err)
	err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

func buildProductQuery(f models.ProductFilter) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)

	if len(f.CategoryIDs) > 0 {
		where = append(where, "p.category_id IN ("+placeholders(len(f.CategoryIDs))+")")
		args = appendIDs(args, f.CategoryIDs)
	}
	if len(f.IDs) > 0 {
		where = append(where, "p.id IN ("+placeholders(len(f.IDs))+")")
		args = appendIDs(args, f.IDs)
	}
	if len(f.ExcludeIDs) > 0 {
		where = append(where, "p.id NOT IN ("+placeholders(len(f.ExcludeIDs))+")")
		args = appendIDs(args, f.ExcludeIDs)
	}
	if f.MinPrice != nil {
		where = append(where, "p.price >= CAST(? AS DECIMAL(18, 4))")
		args = append(args, f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		where = append(where, "p.price <= CAST(? AS DECIMAL(18, 4))")
		args = append(args, f.MaxPrice.String())
	}
	if f.InStockOnly {
		where = append(where, "p.inventory > 0")
	}
	if f.Featured != nil {
		where = append(where, "p.featured = ?")
		args = append(args, *f.Featured)
	}
	if f.NewArrival != nil {
		where = append(where, "p.new_arrival = ?")
		args = append(args, *f.NewArrival)
	}
	if f.OnSale != nil {
		where = append(where, "p.on_sale = ?")
		args = append(args, *f.OnSale)
	}

	var b strings.Builder
	b.WriteString(productSelect)
	if len(where) > 0 {
		b.WriteString("\nWHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString("\nORDER BY ")
	b.WriteString(orderClause(f.Order))
	if f.Limit > 0 {
		b.WriteString("\nLIMIT ?")
		args = append(args, f.Limit)
	}
	if f.Offset > 0 {
		b.WriteString("\nOFFSET ?")
		args = append(args, f.Offset)
	}
	return b.String(), args
}

func orderClause(o models.ProductOrder) string {
	switch o {
	case models.OrderTopRated:
		return "rating DESC, p.created_at DESC, p.id ASC"
	case models.OrderNewest:
		return "p.created_at DESC, p.id ASC"
	default:
		return "p.featured DESC, rating DESC, p.created_at DESC, p.id ASC"
	}
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func appendIDs(args []interface{}, ids []int64) []interface{} {
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}
