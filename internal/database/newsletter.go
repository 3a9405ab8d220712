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

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Subscribe adds email to the newsletter. An inactive subscription is
// reactivated. An active one fails with ErrAlreadySubscribed. The boolean
// reports whether a new row was created.
func (db *DB) Subscribe(ctx context.Context, email string) (sub *models.NewsletterSubscription, created bool, err error) {
	defer observe("UPSERT", "newsletter_subscriptions", time.Now(), &err)

	email = normalizeEmail(email)
	existing, err := db.getSubscription(ctx, email)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		if existing.IsActive {
			return existing, false, ErrAlreadySubscribed
		}
		if _, err = db.conn.ExecContext(ctx,
			`UPDATE newsletter_subscriptions SET is_active = true WHERE id = ?`, existing.ID); err != nil {
			return nil, false, fmt.Errorf("reactivate subscription: %w", err)
		}
		existing.IsActive = true
		return existing, false, nil
	}

	sub = &models.NewsletterSubscription{Email: email, IsActive: true, SubscribedAt: db.now()}
	err = db.conn.QueryRowContext(ctx,
		`INSERT INTO newsletter_subscriptions (email, is_active, subscribed_at) VALUES (?, true, ?) RETURNING id`,
		sub.Email, sub.SubscribedAt,
	).Scan(&sub.ID)
	if err != nil {
		return nil, false, fmt.Errorf("insert subscription: %w", err)
	}
	return sub, true, nil
}

// Unsubscribe deactivates an active subscription and reports whether one existed.
func (db *DB) Unsubscribe(ctx context.Context, email string) (found bool, err error) {
	defer observe("UPDATE", "newsletter_subscriptions", time.Now(), &err)

	res, err := db.conn.ExecContext(ctx,
		`UPDATE newsletter_subscriptions SET is_active = false WHERE email = ? AND is_active`, normalizeEmail(email))
	if err != nil {
		return false, fmt.Errorf("unsubscribe: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (db *DB) getSubscription(ctx context.Context, email string) (*models.NewsletterSubscription, error) {
	var s models.NewsletterSubscription
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, email, is_active, subscribed_at FROM newsletter_subscriptions WHERE email = ?`, email,
	).Scan(&s.ID, &s.Email, &s.IsActive, &s.SubscribedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup subscription: %w", err)
	}
	return &s, nil
}
