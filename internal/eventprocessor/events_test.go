// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package eventprocessor

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/tomtom215/classycouture/internal/logging"
	"github.com/tomtom215/classycouture/internal/models"
)

func init() {
	logging.Init(logging.Config{Level: "error", Format: "json", Output: io.Discard})
}

func testProduct() *models.Product {
	return &models.Product{
		ID:              7,
		Name:            "Silk Evening Dress",
		Price:           decimal.RequireFromString("199.99"),
		ImageURL:        "https://img.example/dress.jpg",
		CategoryID:      2,
		CategoryName:    "Evening Wear",
		Featured:        true,
		Inventory:       4,
		OnSale:          true,
		DiscountPercent: 20,
		NewArrival:      true,
		CreatedAt:       time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
		Rating:          4.5,
		ReviewCount:     2,
	}
}

func decodeMap(t *testing.T, e *ProductChangeEvent) map[string]interface{} {
	t.Helper()
	data, err := SerializeEvent(e)
	if err != nil {
		t.Fatalf("SerializeEvent() error = %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return m
}

func TestEventTypeWireNames(t *testing.T) {
	// Subscribers match on these strings; they must not drift.
	tests := []struct {
		eventType EventType
		want      string
	}{
		{EventProductCreated, "product_created"},
		{EventProductUpdated, "product_updated"},
		{EventProductDeleted, "product_deleted"},
		{EventPriceChange, "price_change"},
		{EventStockUpdate, "stock_update"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if string(tt.eventType) != tt.want {
				t.Errorf("wire name = %q, want %q", tt.eventType, tt.want)
			}
			if !tt.eventType.Valid() {
				t.Errorf("%q not valid", tt.eventType)
			}
		})
	}
	for _, bare := range []EventType{"created", "updated", "deleted", ""} {
		if bare.Valid() {
			t.Errorf("%q should not be a valid event type", bare)
		}
	}
}

func TestSnapshotEvents(t *testing.T) {
	p := testProduct()

	tests := []struct {
		name  string
		event *ProductChangeEvent
		want  EventType
	}{
		{"created", NewProductCreatedEvent(p), EventProductCreated},
		{"updated", NewProductUpdatedEvent(p), EventProductUpdated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.event
			if e.Type != tt.want {
				t.Errorf("Type = %s, want %s", e.Type, tt.want)
			}
			if e.EventID == "" {
				t.Error("EventID is empty")
			}
			if e.Product == nil || e.Product.ID != p.ID || e.Product.DiscountedPrice != 159.99 {
				t.Errorf("Product snapshot = %+v", e.Product)
			}
			if e.ProductFlags == nil || !e.IsNewArrival || !e.IsFeatured || !e.IsOnSale {
				t.Errorf("flags = %+v", e.ProductFlags)
			}

			m := decodeMap(t, e)
			for _, key := range []string{"type", "event_id", "product_id", "product_name", "product", "is_new_arrival", "is_featured", "is_on_sale"} {
				if _, ok := m[key]; !ok {
					t.Errorf("missing key %q", key)
				}
			}
			for _, key := range []string{"old_price", "old_stock"} {
				if _, ok := m[key]; ok {
					t.Errorf("unexpected key %q", key)
				}
			}
		})
	}
}

func TestProductDeletedEvent(t *testing.T) {
	e := NewProductDeletedEvent(42, "Retired Scarf")
	if e.Type != EventProductDeleted || e.ProductID != 42 || e.ProductName != "Retired Scarf" {
		t.Errorf("event = %+v", e)
	}

	m := decodeMap(t, e)
	if _, ok := m["product"]; ok {
		t.Error("deleted event carries a product snapshot")
	}
	if _, ok := m["is_featured"]; ok {
		t.Error("deleted event carries flags")
	}
	if m["product_id"].(float64) != 42 {
		t.Errorf("product_id = %v", m["product_id"])
	}
}

func TestPriceChangeEvent(t *testing.T) {
	p := testProduct()
	d := decimal.RequireFromString

	tests := []struct {
		name         string
		old, new     string
		wantOK       bool
		wantDropped  bool
		wantDiscount float64
	}{
		{"drop", "100.00", "80.00", true, true, 20},
		{"fractional drop", "59.99", "49.99", true, true, 16.67},
		{"increase", "80.00", "100.00", true, false, 0},
		{"unchanged", "100.00", "100.00", false, false, 0},
		{"unchanged scale", "100", "100.00", false, false, 0},
		{"zero price unchanged", "0", "0", false, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := NewPriceChangeEvent(p, d(tt.old), d(tt.new))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				if e != nil {
					t.Error("no-op returned an event")
				}
				return
			}
			if e.Type != EventPriceChange {
				t.Errorf("Type = %s", e.Type)
			}
			if e.PriceDropped != tt.wantDropped {
				t.Errorf("PriceDropped = %v, want %v", e.PriceDropped, tt.wantDropped)
			}
			if e.DiscountPercent != tt.wantDiscount {
				t.Errorf("DiscountPercent = %v, want %v", e.DiscountPercent, tt.wantDiscount)
			}
			if e.OldPrice != models.Money(d(tt.old)) || e.NewPrice != models.Money(d(tt.new)) {
				t.Errorf("prices = %v -> %v", e.OldPrice, e.NewPrice)
			}
			if e.Product != nil {
				t.Error("price change should not carry a snapshot")
			}
		})
	}
}

func TestStockUpdateEvent(t *testing.T) {
	p := testProduct()

	tests := []struct {
		name                            string
		old, new, threshold             int
		wantOK                          bool
		restocked, lowStock, outOfStock bool
	}{
		{"sold out", 5, 0, 10, true, false, false, true},
		{"restocked low", 0, 5, 10, true, true, true, false},
		{"restocked healthy", 3, 12, 10, true, true, false, false},
		{"sold some", 20, 15, 10, true, false, false, false},
		{"drops to low", 12, 9, 10, true, false, true, false},
		{"at threshold is not low", 12, 10, 10, true, false, false, false},
		{"custom threshold", 50, 20, 25, true, false, true, false},
		{"default threshold", 50, 9, 0, true, false, true, false},
		{"unchanged", 7, 7, 10, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := NewStockUpdateEvent(p, tt.old, tt.new, tt.threshold)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if e.OldStock != tt.old || e.NewStock != tt.new {
				t.Errorf("stock = %d -> %d", e.OldStock, e.NewStock)
			}
			if e.Restocked != tt.restocked || e.LowStock != tt.lowStock || e.OutOfStock != tt.outOfStock {
				t.Errorf("flags = %+v", e.StockChange)
			}
		})
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	e, _ := NewStockUpdateEvent(testProduct(), 3, 0, 10)
	data, err := SerializeEvent(e)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DeserializeEvent(data)
	if err != nil {
		t.Fatalf("DeserializeEvent() error = %v", err)
	}
	if got.EventID != e.EventID || got.Type != EventStockUpdate || got.StockChange == nil || !got.OutOfStock {
		t.Errorf("round trip = %+v", got)
	}
}

func TestDeserializeRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"unknown type", `{"event_id":"x","type":"exploded","product_id":1}`},
		{"missing id", `{"type":"product_created","product_id":1}`},
		{"zero product", `{"event_id":"x","type":"product_created","product_id":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DeserializeEvent([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := DeserializeEvent([]byte(`{"event_id":"x","type":"nope","product_id":1}`)); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("error = %v, want ErrInvalidEvent", err)
	}
}

func TestNewEventMessage(t *testing.T) {
	e := NewProductCreatedEvent(testProduct())
	msg, err := NewEventMessage(e)
	if err != nil {
		t.Fatal(err)
	}
	if msg.UUID != e.EventID {
		t.Errorf("UUID = %s, want %s", msg.UUID, e.EventID)
	}
	if msg.Metadata.Get(MetadataEventType) != string(EventProductCreated) {
		t.Errorf("event_type metadata = %q", msg.Metadata.Get(MetadataEventType))
	}
	if msg.Metadata.Get(MetadataProductID) != "7" {
		t.Errorf("product_id metadata = %q", msg.Metadata.Get(MetadataProductID))
	}

	if _, err := NewEventMessage(&ProductChangeEvent{}); err == nil {
		t.Error("expected error for invalid event")
	}
}
