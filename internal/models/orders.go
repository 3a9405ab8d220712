// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// CompletedStatuses are the statuses that count as a sale for trending and
// best seller rankings.
func CompletedStatuses() []OrderStatus {
	return []OrderStatus{OrderProcessing, OrderShipped, OrderDelivered}
}

// Order is a customer purchase.
type Order struct {
	ID        int64
	UserID    int64
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []OrderItem
}

// Total sums the line totals of the order.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Total())
	}
	return total
}

// OrderItem is one line of an order. Price is the unit price captured when
// the order was placed, so later catalog price changes do not alter it.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
}

// Total is Price x Quantity.
func (i *OrderItem) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderLine is the input for one item when recording an order.
type OrderLine struct {
	ProductID int64
	Quantity  int
}
