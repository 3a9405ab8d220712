// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/classycouture/internal/database"
)

// NewsletterSubscribe handles POST /api/v1/newsletter/subscribe. A new
// address gets 201, a reactivated one 200.
func (h *Handler) NewsletterSubscribe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req NewsletterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sub, created, err := h.db.Subscribe(r.Context(), req.Email)
	switch {
	case errors.Is(err, database.ErrAlreadySubscribed):
		respondError(w, http.StatusConflict, CodeConflict, "Email is already subscribed", nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, CodeQueryError, "Failed to subscribe", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondSuccess(w, status, sub, start, nil)
}

// NewsletterUnsubscribe handles POST /api/v1/newsletter/unsubscribe.
func (h *Handler) NewsletterUnsubscribe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req NewsletterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	found, err := h.db.Unsubscribe(r.Context(), req.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeQueryError, "Failed to unsubscribe", err)
		return
	}
	if !found {
		respondNotFound(w, "Subscription")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]bool{"unsubscribed": true}, start, nil)
}
