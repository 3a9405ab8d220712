// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

// Package validation validates HTTP request bodies with
// go-playground/validator v10.
//
// A single validator instance is shared; it caches struct metadata and is
// safe for concurrent use. Error field names are taken from json tags so
// messages match the request body the client sent.
//
// Catalog tags registered on top of the built-ins:
//
//	slug          lowercase words joined by single hyphens ("summer-edit")
//	order_status  pending, processing, shipped, delivered or cancelled
//	price         float >= 0 with at most two decimals
//
// Example:
//
//	type createReviewRequest struct {
//	    CustomerName string `json:"customer_name" validate:"required,max=100"`
//	    Rating       int    `json:"rating" validate:"min=1,max=5"`
//	    Email        string `json:"email" validate:"omitempty,email"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondAPIError(w, http.StatusBadRequest, verr.ToAPIError())
//	    return
//	}
//
// ToAPIError yields a models.APIError with code VALIDATION_ERROR. One
// failure carries field, tag and value in details; several are listed
// under details.fields.
package validation
