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

// CreateOrder records an order for userID. Each line captures the product's
// current price. A zero createdAt means now; seeding and tests pass explicit
// times to build order history.
func (db *DB) CreateOrder(ctx context.Context, userID int64, status models.OrderStatus, lines []models.OrderLine, createdAt time.Time) (order *models.Order, err error) {
	defer observe("INSERT", "orders", time.Now(), &err)

	if status == "" {
		status = models.OrderPending
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if createdAt.IsZero() {
		createdAt = db.now()
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin order: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var exists bool
	if err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)`, userID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("lookup user %d: %w", userID, err)
	}
	if !exists {
		err = ErrUnknownUser
		return nil, err
	}

	order = &models.Order{UserID: userID, Status: status, CreatedAt: createdAt.UTC(), UpdatedAt: createdAt.UTC()}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, status, created_at, updated_at) VALUES (?, ?, ?, ?) RETURNING id`,
		order.UserID, string(order.Status), order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for _, line := range lines {
		var price decimal.Decimal
		err = tx.QueryRowContext(ctx, `SELECT CAST(price AS VARCHAR) FROM products WHERE id = ?`, line.ProductID).Scan(&price)
		if errors.Is(err, sql.ErrNoRows) {
			err = fmt.Errorf("%w: %d", ErrUnknownProduct, line.ProductID)
			return nil, err
		}
		if err != nil {
			return nil, fmt.Errorf("lookup price of product %d: %w", line.ProductID, err)
		}

		item := models.OrderItem{OrderID: order.ID, ProductID: line.ProductID, Quantity: line.Quantity, Price: price}
		err = tx.QueryRowContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?) RETURNING id`,
			item.OrderID, item.ProductID, item.Quantity, price.InexactFloat64(),
		).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}
	return order, nil
}

// GetOrder returns an order with its items, or nil.
func (db *DB) GetOrder(ctx context.Context, id int64) (order *models.Order, err error) {
	defer observe("SELECT", "orders", time.Now(), &err)

	order = &models.Order{}
	var status string
	err = db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, status, created_at, updated_at FROM orders WHERE id = ?`, id,
	).Scan(&order.ID, &order.UserID, &status, &order.CreatedAt, &order.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	order.Status = models.OrderStatus(status)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, order_id, product_id, quantity, CAST(price AS VARCHAR) FROM order_items WHERE order_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get items of order %d: %w", id, err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var it models.OrderItem
		if err = rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		order.Items = append(order.Items, it)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus sets the status of an order. It returns the updated
// order, or nil if there is none.
func (db *DB) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	start := time.Now()
	res, err := db.conn.ExecContext(ctx, `UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), db.now(), id)
	observe("UPDATE", "orders", start, &err)
	if err != nil {
		return nil, fmt.Errorf("update status of order %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return db.GetOrder(ctx, id)
}

// CancelOrder cancels a pending order. Orders in any other status fail with
// ErrOrderNotCancellable. It returns nil if the order does not exist.
func (db *DB) CancelOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, err := db.GetOrder(ctx, id)
	if err != nil || order == nil {
		return nil, err
	}
	if order.Status != models.OrderPending {
		return nil, ErrOrderNotCancellable
	}
	return db.UpdateOrderStatus(ctx, id, models.OrderCancelled)
}
