// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/tomtom215/classycouture/internal/config"
	"github.com/tomtom215/classycouture/internal/database"
	"github.com/tomtom215/classycouture/internal/logging"
	"github.com/tomtom215/classycouture/internal/models"
	"github.com/tomtom215/classycouture/internal/recommend"
)

func init() {
	logging.Init(logging.Config{Level: "error", Output: io.Discard})
}

const testAdminToken = "test-admin-token-0123456789abcdef"

// testDBSemaphore keeps one DuckDB instance alive at a time.
var testDBSemaphore = make(chan struct{}, 1)

// recordingNotifier captures explicit price and stock announcements.
type recordingNotifier struct {
	mu     sync.Mutex
	prices []string
	stocks []int
}

func (n *recordingNotifier) PriceChanged(_ *models.Product, oldPrice, newPrice decimal.Decimal) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.prices = append(n.prices, oldPrice.StringFixed(2)+"->"+newPrice.StringFixed(2))
}

func (n *recordingNotifier) StockChanged(_ *models.Product, _, newStock int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stocks = append(n.stocks, newStock)
}

type testServer struct {
	db       *database.DB
	handler  *Handler
	router   http.Handler
	notifier *recordingNotifier
}

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Security.AdminToken = testAdminToken
	cfg.Security.RateLimitDisabled = true
	cfg.Security.CORSOrigins = []string{"http://shop.test"}
	return cfg
}

// setupTestServer opens an in-memory store loaded with the sample catalog
// and routes requests through the full middleware stack.
func setupTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB", Threads: 2})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.SeedSampleData(context.Background()); err != nil {
		t.Fatalf("SeedSampleData() error = %v", err)
	}

	engine, err := recommend.NewEngine(db, recommend.FromAppConfig(&cfg.Recommend), logging.WithComponent("recommend"))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	notifier := &recordingNotifier{}
	h := NewHandler(db, engine, notifier, nil, cfg)
	return &testServer{db: db, handler: h, router: NewRouter(h).SetupChi(), notifier: notifier}
}

// envelope is an APIResponse with the data left raw.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w, env
}

func (s *testServer) admin(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return s.do(t, method, path, body, "Authorization", "Bearer "+testAdminToken)
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}

func recordIDs(t *testing.T, env envelope) []int64 {
	t.Helper()
	var records []models.ProductRecord
	decodeData(t, env, &records)
	ids := make([]int64, len(records))
	for i := range records {
		ids[i] = records[i].ID
	}
	return ids
}

func TestNewHandler(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, nil)
	if h.config == nil || h.config.API.DefaultLimit != 6 {
		t.Errorf("nil config did not fall back to defaults: %+v", h.config)
	}
	if h.PerformanceMonitor() == nil {
		t.Error("performance monitor not initialized")
	}
	if h.startTime.IsZero() {
		t.Error("start time not set")
	}
}

func TestHandlerLimit(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, config.Defaults())

	tests := []struct {
		query string
		want  int
	}{
		{"", 6},
		{"?limit=3", 3},
		{"?limit=abc", 6},
		{"?limit=0", 6},
		{"?limit=-4", 6},
		{"?limit=50", 50},
		{"?limit=500", 50},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/x"+tt.query, nil)
			if got := h.limit(r); got != tt.want {
				t.Errorf("limit(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestCheckWebSocketOrigin(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		want    bool
	}{
		{"no origin header is rejected", []string{"http://shop.test"}, "", false},
		{"wildcard allows any", []string{"*"}, "http://example.com", true},
		{"exact match", []string{"http://shop.test"}, "http://shop.test", true},
		{"second entry matches", []string{"http://a.test", "http://shop.test"}, "http://shop.test", true},
		{"unknown origin", []string{"http://shop.test"}, "http://evil.test", false},
		{"scheme must match", []string{"http://shop.test"}, "https://shop.test", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			cfg.Security.CORSOrigins = tt.origins
			h := NewHandler(nil, nil, nil, nil, cfg)

			r := httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := h.checkWebSocketOrigin(r); got != tt.want {
				t.Errorf("checkWebSocketOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWebSocketWithoutHub(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, config.Defaults())
	w := httptest.NewRecorder()
	h.WebSocket(w, httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}
