// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package metrics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog store
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of catalog store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of catalog store query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// HTTP API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Recommendations
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time to compute a recommendation list",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"strategy"},
	)

	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Recommendation requests by strategy and outcome (ok, empty, degraded)",
		},
		[]string{"strategy", "outcome"},
	)

	RecommendationResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_result_size",
			Help:    "Number of items returned per recommendation request",
			Buckets: []float64{0, 1, 2, 4, 6, 8, 12, 20, 50},
		},
		[]string{"strategy"},
	)

	// Subscription broker
	WSConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections_active",
			Help: "Number of connected WebSocket subscribers",
		},
	)

	WSMessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Messages queued to WebSocket subscribers by message type",
		},
		[]string{"type"},
	)

	WSMessagesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_messages_dropped_total",
			Help: "Messages not delivered to a subscriber by reason",
		},
		[]string{"reason"},
	)

	// Change notifier
	ProductEventsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_events_emitted_total",
			Help: "Product change events accepted by the notifier queue",
		},
		[]string{"type"},
	)

	ProductEventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_events_dropped_total",
			Help: "Product change events discarded before publishing",
		},
		[]string{"reason"},
	)

	ProductEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_events_published_total",
			Help: "Product change publish attempts by result",
		},
		[]string{"result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordDBQuery records the latency of a store query and, if err is set, an
// error classified into a small set of error types.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, classifyDBError(err)).Inc()
	}
}

func classifyDBError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "constraint"):
		return "constraint"
	case strings.Contains(msg, "conflict"):
		return "conflict"
	case strings.Contains(msg, "connection"):
		return "connection"
	default:
		return "other"
	}
}

// RecordAPIRequest records an HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one recommendation request. A non-nil err
// marks the request degraded.
func RecordRecommendation(strategy string, duration time.Duration, results int, err error) {
	RecommendationDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	RecommendationResultSize.WithLabelValues(strategy).Observe(float64(results))

	outcome := "ok"
	switch {
	case err != nil:
		outcome = "degraded"
	case results == 0:
		outcome = "empty"
	}
	RecommendationRequests.WithLabelValues(strategy, outcome).Inc()
}

// RecordProductEvent counts an event accepted by the notifier.
func RecordProductEvent(eventType string) {
	ProductEventsEmitted.WithLabelValues(eventType).Inc()
}

// RecordProductEventDropped counts an event discarded before publishing.
func RecordProductEventDropped(reason string) {
	ProductEventsDropped.WithLabelValues(reason).Inc()
}

// RecordProductEventPublish counts a publish attempt.
func RecordProductEventPublish(err error) {
	if err != nil {
		ProductEventsPublished.WithLabelValues("error").Inc()
		return
	}
	ProductEventsPublished.WithLabelValues("ok").Inc()
}

// RecordWSMessage counts a message queued to a subscriber.
func RecordWSMessage(msgType string) {
	WSMessagesSent.WithLabelValues(msgType).Inc()
}

// RecordWSDrop counts a message a subscriber did not receive.
func RecordWSDrop(reason string) {
	WSMessagesDropped.WithLabelValues(reason).Inc()
}

// SetWSConnections publishes the number of connected subscribers.
func SetWSConnections(n int) {
	WSConnectionsActive.Set(float64(n))
}

// SetCircuitBreakerState publishes the numeric breaker state.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
