// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package models

import "time"

// NewsletterSubscription is a mailing list entry. Unsubscribed addresses are
// kept with IsActive false and reactivated on the next subscribe.
type NewsletterSubscription struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"is_active"`
	SubscribedAt time.Time `json:"subscribed_at"`
}
