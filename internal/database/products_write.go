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
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/classycouture/internal/models"
)

func nullableID(id int64) interface{} {
	if id <= 0 {
		return nil
	}
	return id
}

// CreateProduct inserts p and returns the stored product. CreatedAt is set
// to now when zero.
func (db *DB) CreateProduct(ctx context.Context, p *models.Product) (created *models.Product, err error) {
	start := time.Now()
	now := db.now()
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	var id int64
	err = db.conn.QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, image_url, category_id, featured, inventory,
		                      sku, on_sale, discount_percent, new_arrival, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		p.Name, p.Description, p.Price.InexactFloat64(), p.ImageURL, nullableID(p.CategoryID), p.Featured, p.Inventory,
		p.SKU, p.OnSale, p.DiscountPercent, p.NewArrival, createdAt, now,
	).Scan(&id)
	observe("INSERT", "products", start, &err)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	created, err = db.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if l := db.changeListener(); l != nil && created != nil {
		l.ProductCreated(created)
	}
	return created, nil
}

// UpdateProduct overwrites the editable fields of product p.ID. It returns
// nil if the product does not exist.
func (db *DB) UpdateProduct(ctx context.Context, p *models.Product) (updated *models.Product, err error) {
	start := time.Now()
	res, err := db.conn.ExecContext(ctx, `
		UPDATE products
		SET name = ?, description = ?, price = ?, image_url = ?, category_id = ?, featured = ?,
		    inventory = ?, sku = ?, on_sale = ?, discount_percent = ?, new_arrival = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, p.Price.InexactFloat64(), p.ImageURL, nullableID(p.CategoryID), p.Featured,
		p.Inventory, p.SKU, p.OnSale, p.DiscountPercent, p.NewArrival, db.now(), p.ID,
	)
	observe("UPDATE", "products", start, &err)
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", p.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return db.reloadAndNotify(ctx, p.ID)
}

// SetProductPrice changes the price of a product and returns the previous
// price with the updated product. The product is nil if it does not exist.
// The caller decides whether to announce the change as a price change.
func (db *DB) SetProductPrice(ctx context.Context, id int64, price decimal.Decimal) (old decimal.Decimal, updated *models.Product, err error) {
	current, err := db.GetProduct(ctx, id)
	if err != nil || current == nil {
		return decimal.Zero, nil, err
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx, `UPDATE products SET price = ?, updated_at = ? WHERE id = ?`,
		price.InexactFloat64(), db.now(), id)
	observe("UPDATE", "products", start, &err)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("set price of product %d: %w", id, err)
	}

	updated, err = db.reloadAndNotify(ctx, id)
	return current.Price, updated, err
}

// SetProductStock changes the inventory of a product and returns the previous
// level with the updated product. The product is nil if it does not exist.
func (db *DB) SetProductStock(ctx context.Context, id int64, inventory int) (old int, updated *models.Product, err error) {
	current, err := db.GetProduct(ctx, id)
	if err != nil || current == nil {
		return 0, nil, err
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx, `UPDATE products SET inventory = ?, updated_at = ? WHERE id = ?`,
		inventory, db.now(), id)
	observe("UPDATE", "products", start, &err)
	if err != nil {
		return 0, nil, fmt.Errorf("set stock of product %d: %w", id, err)
	}

	updated, err = db.reloadAndNotify(ctx, id)
	return current.Inventory, updated, err
}

func (db *DB) reloadAndNotify(ctx context.Context, id int64) (*models.Product, error) {
	p, err := db.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if l := db.changeListener(); l != nil && p != nil {
		l.ProductUpdated(p)
	}
	return p, nil
}

// DeleteProduct removes a product and its reviews. Order items keep their
// captured price and simply stop matching any product. It reports whether
// the product existed.
func (db *DB) DeleteProduct(ctx context.Context, id int64) (deleted bool, err error) {
	defer observe("DELETE", "products", time.Now(), &err)

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin delete: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var name string
	err = tx.QueryRowContext(ctx, `SELECT name FROM products WHERE id = ?`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		_ = tx.Rollback()
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup product %d: %w", id, err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM reviews WHERE product_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete reviews of product %d: %w", id, err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("delete product %d: %w", id, err)
	}
	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete: %w", err)
	}

	if l := db.changeListener(); l != nil {
		l.ProductDeleted(id, name)
	}
	return true, nil
}
