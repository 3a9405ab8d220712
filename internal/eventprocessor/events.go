// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package eventprocessor

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tomtom215/classycouture/internal/models"
)

// EventType identifies the kind of product change.
type EventType string

const (
	EventProductCreated EventType = "product_created"
	EventProductUpdated EventType = "product_updated"
	EventProductDeleted EventType = "product_deleted"
	EventPriceChange    EventType = "price_change"
	EventStockUpdate    EventType = "stock_update"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventProductCreated, EventProductUpdated, EventProductDeleted, EventPriceChange, EventStockUpdate:
		return true
	}
	return false
}

// DefaultLowStockThreshold is the stock level below which a positive stock
// count is reported as low.
const DefaultLowStockThreshold = 10

// ProductChangeEvent describes one product mutation. The embedded variant
// structs are flattened into the JSON object and only the one matching
// Type is set.
type ProductChangeEvent struct {
	EventID     string    `json:"event_id"`
	Type        EventType `json:"type"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	OccurredAt  time.Time `json:"occurred_at"`

	// Product is the display snapshot; absent for deletions.
	Product *models.ProductRecord `json:"product,omitempty"`

	*ProductFlags
	*PriceChange
	*StockChange
}

// ProductFlags are the merchandising flags carried by created and updated events.
type ProductFlags struct {
	IsNewArrival bool `json:"is_new_arrival"`
	IsFeatured   bool `json:"is_featured"`
	IsOnSale     bool `json:"is_on_sale"`
}

// PriceChange carries the before and after price of a price_change event.
// DiscountPercent is the relative drop, or 0 when the price went up.
type PriceChange struct {
	OldPrice        float64 `json:"old_price"`
	NewPrice        float64 `json:"new_price"`
	PriceDropped    bool    `json:"price_dropped"`
	DiscountPercent float64 `json:"discount_percent"`
}

// StockChange carries the before and after inventory of a stock_update event.
type StockChange struct {
	OldStock   int  `json:"old_stock"`
	NewStock   int  `json:"new_stock"`
	Restocked  bool `json:"restocked"`
	LowStock   bool `json:"low_stock"`
	OutOfStock bool `json:"out_of_stock"`
}

func newEvent(t EventType, id int64, name string) *ProductChangeEvent {
	return &ProductChangeEvent{
		EventID:     uuid.New().String(),
		Type:        t,
		ProductID:   id,
		ProductName: name,
		OccurredAt:  time.Now().UTC(),
	}
}

func snapshotEvent(t EventType, p *models.Product) *ProductChangeEvent {
	e := newEvent(t, p.ID, p.Name)
	rec := p.Record()
	e.Product = &rec
	e.ProductFlags = &ProductFlags{
		IsNewArrival: p.NewArrival,
		IsFeatured:   p.Featured,
		IsOnSale:     p.OnSale,
	}
	return e
}

// NewProductCreatedEvent builds a product_created event with a full snapshot.
func NewProductCreatedEvent(p *models.Product) *ProductChangeEvent {
	return snapshotEvent(EventProductCreated, p)
}

// NewProductUpdatedEvent builds a product_updated event with a full snapshot.
func NewProductUpdatedEvent(p *models.Product) *ProductChangeEvent {
	return snapshotEvent(EventProductUpdated, p)
}

// NewProductDeletedEvent builds a product_deleted event. Only the identity
// survives a deletion.
func NewProductDeletedEvent(id int64, name string) *ProductChangeEvent {
	return newEvent(EventProductDeleted, id, name)
}

// NewPriceChangeEvent builds a price_change event. It returns false, and no
// event, when the price did not change.
func NewPriceChangeEvent(p *models.Product, oldPrice, newPrice decimal.Decimal) (*ProductChangeEvent, bool) {
	if oldPrice.Equal(newPrice) {
		return nil, false
	}

	dropped := newPrice.LessThan(oldPrice)
	discount := decimal.Zero
	if dropped && oldPrice.IsPositive() {
		discount = oldPrice.Sub(newPrice).Div(oldPrice).Mul(decimal.NewFromInt(100)).Round(2)
	}

	e := newEvent(EventPriceChange, p.ID, p.Name)
	e.PriceChange = &PriceChange{
		OldPrice:        models.Money(oldPrice),
		NewPrice:        models.Money(newPrice),
		PriceDropped:    dropped,
		DiscountPercent: discount.InexactFloat64(),
	}
	return e, true
}

// NewStockUpdateEvent builds a stock_update event. It returns false, and no
// event, when the stock did not change. A non-positive lowStockThreshold
// uses DefaultLowStockThreshold.
func NewStockUpdateEvent(p *models.Product, oldStock, newStock, lowStockThreshold int) (*ProductChangeEvent, bool) {
	if oldStock == newStock {
		return nil, false
	}
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}

	e := newEvent(EventStockUpdate, p.ID, p.Name)
	e.StockChange = &StockChange{
		OldStock:   oldStock,
		NewStock:   newStock,
		Restocked:  newStock > oldStock,
		LowStock:   newStock > 0 && newStock < lowStockThreshold,
		OutOfStock: newStock == 0,
	}
	return e, true
}

// Validate checks the fields every event must carry.
func (e *ProductChangeEvent) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("%w: event_id is required", ErrInvalidEvent)
	}
	if !e.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}
	if e.ProductID <= 0 {
		return fmt.Errorf("%w: product_id must be positive", ErrInvalidEvent)
	}
	return nil
}
