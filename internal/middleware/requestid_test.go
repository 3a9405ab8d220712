// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/classycouture/internal/logging"
)

func TestRequestID_GeneratesNewID(t *testing.T) {
	var capturedID, correlationID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedID = GetRequestID(r.Context())
		correlationID = logging.CorrelationIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	responseID := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("Response X-Request-ID is not a valid UUID: %v", err)
	}
	if capturedID != responseID {
		t.Errorf("Context ID (%s) doesn't match response header ID (%s)", capturedID, responseID)
	}
	if len(correlationID) != 8 {
		t.Errorf("Expected 8 character correlation ID, got %q", correlationID)
	}
}

func TestRequestID_UpstreamHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		preserve bool
	}{
		{"proxy uuid", uuid.New().String(), true},
		{"opaque id", "existing-request-id-12345", true},
		{"too long", strings.Repeat("a", maxRequestIDLength+1), false},
		{"contains space", "abc def", false},
		{"contains newline", "abc\ndef", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var capturedID string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				capturedID = GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header[RequestIDHeader] = []string{tt.header}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if tt.preserve && got != tt.header {
				t.Errorf("Expected X-Request-ID %q to be preserved, got %q", tt.header, got)
			}
			if !tt.preserve {
				if got == tt.header {
					t.Error("Expected invalid upstream ID to be replaced")
				}
				if _, err := uuid.Parse(got); err != nil {
					t.Errorf("Replacement ID is not a UUID: %v", err)
				}
			}
			if capturedID != got {
				t.Errorf("Context ID %q doesn't match header %q", capturedID, got)
			}
		})
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		id := rec.Header().Get(RequestIDHeader)
		if seen[id] {
			t.Fatalf("Duplicate request ID %s", id)
		}
		seen[id] = true
	}
}

func TestGetRequestID_WithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := GetRequestID(req.Context()); id != "" {
		t.Errorf("Expected empty request ID, got %q", id)
	}
}
