// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/classycouture/internal/logging"
)

// DefaultSlowRequestThreshold is the latency above which a request is
// logged as slow.
const DefaultSlowRequestThreshold = time.Second

// RequestSample is one observed request.
type RequestSample struct {
	Route      string    `json:"route"`
	Method     string    `json:"method"`
	DurationMS int64     `json:"duration_ms"`
	StatusCode int       `json:"status_code"`
	Timestamp  time.Time `json:"timestamp"`
}

// RouteStats aggregates the samples in the window for one method and route.
type RouteStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int64   `json:"request_count"`
	ErrorCount   int64   `json:"error_count"`
	AvgMS        float64 `json:"avg_ms"`
	P50MS        int64   `json:"p50_ms"`
	P95MS        int64   `json:"p95_ms"`
	P99MS        int64   `json:"p99_ms"`
	MinMS        int64   `json:"min_ms"`
	MaxMS        int64   `json:"max_ms"`
}

// PerformanceMonitor keeps a sliding window of recent request latencies,
// keyed by chi route pattern. It backs the admin performance endpoint.
type PerformanceMonitor struct {
	mu            sync.RWMutex
	samples       []RequestSample
	maxSamples    int
	slowThreshold time.Duration
}

// NewPerformanceMonitor creates a monitor holding up to maxSamples samples.
func NewPerformanceMonitor(maxSamples int) *PerformanceMonitor {
	if maxSamples <= 0 {
		maxSamples = 1000
	}
	return &PerformanceMonitor{
		samples:       make([]RequestSample, 0, maxSamples),
		maxSamples:    maxSamples,
		slowThreshold: DefaultSlowRequestThreshold,
	}
}

// SetSlowThreshold changes the slow request log threshold.
func (pm *PerformanceMonitor) SetSlowThreshold(d time.Duration) {
	pm.mu.Lock()
	pm.slowThreshold = d
	pm.mu.Unlock()
}

// Record adds a sample, evicting the oldest once the window is full.
func (pm *PerformanceMonitor) Record(sample RequestSample) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.samples = append(pm.samples, sample)
	if len(pm.samples) > pm.maxSamples {
		pm.samples = pm.samples[len(pm.samples)-pm.maxSamples:]
	}
}

// Stats returns per-endpoint statistics, busiest first. Ties are ordered by
// endpoint name.
func (pm *PerformanceMonitor) Stats() []RouteStats {
	pm.mu.RLock()
	durations := make(map[string][]int64)
	errCounts := make(map[string]int64)
	for _, s := range pm.samples {
		key := s.Method + " " + s.Route
		durations[key] = append(durations[key], s.DurationMS)
		if s.StatusCode >= http.StatusInternalServerError {
			errCounts[key]++
		}
	}
	pm.mu.RUnlock()

	stats := make([]RouteStats, 0, len(durations))
	for endpoint, values := range durations {
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

		var sum int64
		for _, d := range values {
			sum += d
		}
		stats = append(stats, RouteStats{
			Endpoint:     endpoint,
			RequestCount: int64(len(values)),
			ErrorCount:   errCounts[endpoint],
			AvgMS:        float64(sum) / float64(len(values)),
			P50MS:        percentile(values, 0.50),
			P95MS:        percentile(values, 0.95),
			P99MS:        percentile(values, 0.99),
			MinMS:        values[0],
			MaxMS:        values[len(values)-1],
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RequestCount != stats[j].RequestCount {
			return stats[i].RequestCount > stats[j].RequestCount
		}
		return stats[i].Endpoint < stats[j].Endpoint
	})
	return stats
}

// Recent returns up to n of the newest samples, oldest first.
func (pm *PerformanceMonitor) Recent(n int) []RequestSample {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	if n > len(pm.samples) {
		n = len(pm.samples)
	}
	if n < 0 {
		n = 0
	}
	recent := make([]RequestSample, n)
	copy(recent, pm.samples[len(pm.samples)-n:])
	return recent
}

// Middleware records every request passing through it.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := RoutePattern(r)
		pm.Record(RequestSample{
			Route:      route,
			Method:     r.Method,
			DurationMS: elapsed.Milliseconds(),
			StatusCode: rec.statusCode,
			Timestamp:  start,
		})

		pm.mu.RLock()
		threshold := pm.slowThreshold
		pm.mu.RUnlock()
		if threshold > 0 && elapsed > threshold {
			logging.Ctx(r.Context()).Warn().
				Str("method", r.Method).
				Str("route", route).
				Int64("duration_ms", elapsed.Milliseconds()).
				Msg("Slow request detected")
		}
	})
}

// percentile picks the nearest-rank value from a sorted slice.
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted)-1) * p)
	return sorted[index]
}
