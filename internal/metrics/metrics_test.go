// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType string
	}{
		{"success", nil, ""},
		{"timeout", fmt.Errorf("query: %w", context.DeadlineExceeded), "timeout"},
		{"constraint", errors.New("Constraint Error: duplicate key"), "constraint"},
		{"unknown", errors.New("boom"), "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := "products_" + tt.name
			RecordDBQuery("SELECT", table, 3*time.Millisecond, tt.err)

			if tt.wantType == "" {
				return
			}
			got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", table, tt.wantType))
			if got != 1 {
				t.Errorf("error counter for %s = %v, want 1", tt.wantType, got)
			}
		})
	}
}

func TestRecordRecommendationOutcomes(t *testing.T) {
	RecordRecommendation("test_similar", time.Millisecond, 4, nil)
	RecordRecommendation("test_similar", time.Millisecond, 0, nil)
	RecordRecommendation("test_similar", time.Millisecond, 0, errors.New("store down"))

	for _, outcome := range []string{"ok", "empty", "degraded"} {
		if got := testutil.ToFloat64(RecommendationRequests.WithLabelValues("test_similar", outcome)); got != 1 {
			t.Errorf("outcome %s = %v, want 1", outcome, got)
		}
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 1 {
		t.Errorf("active request delta = %v, want 1", got)
	}
}

func TestRecordProductEventPublish(t *testing.T) {
	okBefore := testutil.ToFloat64(ProductEventsPublished.WithLabelValues("ok"))
	errBefore := testutil.ToFloat64(ProductEventsPublished.WithLabelValues("error"))

	RecordProductEventPublish(nil)
	RecordProductEventPublish(errors.New("nats: no servers available"))

	if got := testutil.ToFloat64(ProductEventsPublished.WithLabelValues("ok")) - okBefore; got != 1 {
		t.Errorf("ok delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ProductEventsPublished.WithLabelValues("error")) - errBefore; got != 1 {
		t.Errorf("error delta = %v, want 1", got)
	}
}

func TestSetCircuitBreakerState(t *testing.T) {
	SetCircuitBreakerState("test-breaker", 2)

	var m dto.Metric
	if err := CircuitBreakerState.WithLabelValues("test-breaker").Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := m.GetGauge().GetValue(); got != 2 {
		t.Errorf("gauge = %v, want 2", got)
	}
}

func TestRecordAPIRequestHistogram(t *testing.T) {
	RecordAPIRequest("GET", "/api/v1/test-histogram", "200", 20*time.Millisecond)

	var m dto.Metric
	obs, ok := APIRequestDuration.WithLabelValues("GET", "/api/v1/test-histogram").(interface{ Write(*dto.Metric) error })
	if !ok {
		t.Fatal("observer does not implement Write")
	}
	if err := obs.Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := m.GetHistogram().GetSampleCount(); got != 1 {
		t.Errorf("sample count = %d, want 1", got)
	}
}
