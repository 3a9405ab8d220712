// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package models

import "time"

// APIResponse is the envelope for every JSON response.
//
//	{"status":"success","data":[...],"metadata":{"timestamp":"...","count":6}}
//	{"status":"error","data":null,"metadata":{...},"error":{"code":"NOT_FOUND","message":"..."}}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how the response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Count       *int      `json:"count,omitempty"`
	// Degraded is set when a recommendation query failed and an empty list
	// was returned in its place.
	Degraded bool `json:"degraded,omitempty"`
}

// APIError is the machine readable part of an error response.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status            string `json:"status"`
	DatabaseConnected bool   `json:"database_connected"`
	Subscribers       int    `json:"subscribers"`
	Uptime            string `json:"uptime"`
}
