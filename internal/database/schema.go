// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package database

import (
	"context"
	"fmt"
)

// Foreign keys are enforced in Go rather than declared: DuckDB rejects
// deletes of rows that are referenced, and order items must outlive the
// products they captured a price for.
var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS seq_categories START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_products START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_reviews START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_users START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_orders START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_order_items START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_newsletter START 1`,

	`CREATE TABLE IF NOT EXISTS categories (
		id            BIGINT PRIMARY KEY DEFAULT nextval('seq_categories'),
		name          VARCHAR NOT NULL,
		slug          VARCHAR NOT NULL,
		description   VARCHAR NOT NULL DEFAULT '',
		parent_id     BIGINT,
		is_collection BOOLEAN NOT NULL DEFAULT false,
		display_order INTEGER NOT NULL DEFAULT 0,
		image_url     VARCHAR NOT NULL DEFAULT '',
		created_at    TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		id               BIGINT PRIMARY KEY DEFAULT nextval('seq_products'),
		name             VARCHAR NOT NULL,
		description      VARCHAR NOT NULL DEFAULT '',
		price            DECIMAL(10, 2) NOT NULL,
		image_url        VARCHAR NOT NULL DEFAULT '',
		category_id      BIGINT,
		featured         BOOLEAN NOT NULL DEFAULT false,
		inventory        INTEGER NOT NULL DEFAULT 0,
		sku              VARCHAR NOT NULL DEFAULT '',
		on_sale          BOOLEAN NOT NULL DEFAULT false,
		discount_percent INTEGER NOT NULL DEFAULT 0,
		new_arrival      BOOLEAN NOT NULL DEFAULT false,
		created_at       TIMESTAMP NOT NULL,
		updated_at       TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id            BIGINT PRIMARY KEY DEFAULT nextval('seq_reviews'),
		product_id    BIGINT NOT NULL,
		customer_name VARCHAR NOT NULL,
		email         VARCHAR NOT NULL DEFAULT '',
		review_text   VARCHAR NOT NULL,
		rating        INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		created_at    TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id         BIGINT PRIMARY KEY DEFAULT nextval('seq_users'),
		username   VARCHAR NOT NULL UNIQUE,
		email      VARCHAR NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id         BIGINT PRIMARY KEY DEFAULT nextval('seq_orders'),
		user_id    BIGINT NOT NULL,
		status     VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS order_items (
		id         BIGINT PRIMARY KEY DEFAULT nextval('seq_order_items'),
		order_id   BIGINT NOT NULL,
		product_id BIGINT NOT NULL,
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		price      DECIMAL(10, 2) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS newsletter_subscriptions (
		id            BIGINT PRIMARY KEY DEFAULT nextval('seq_newsletter'),
		email         VARCHAR NOT NULL UNIQUE,
		is_active     BOOLEAN NOT NULL DEFAULT true,
		subscribed_at TIMESTAMP NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id)`,
}

func (db *DB) createSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
