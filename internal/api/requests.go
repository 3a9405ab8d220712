// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/classycouture/internal/models"
)

// ReviewRequest is the body of POST /api/v1/products/{id}/reviews.
type ReviewRequest struct {
	CustomerName string `json:"customer_name" validate:"required,max=100"`
	Email        string `json:"email" validate:"omitempty,email,max=254"`
	Text         string `json:"text" validate:"required,max=2000"`
	Rating       int    `json:"rating" validate:"min=1,max=5"`
}

// NewsletterRequest is the body of the newsletter endpoints.
type NewsletterRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

// ProductRequest is the body of admin product create and update.
type ProductRequest struct {
	Name            string  `json:"name" validate:"required,max=200"`
	Description     string  `json:"description" validate:"max=5000"`
	Price           float64 `json:"price" validate:"price"`
	ImageURL        string  `json:"image_url" validate:"omitempty,url,max=500"`
	CategoryID      int64   `json:"category_id" validate:"min=0"`
	Featured        bool    `json:"featured"`
	Inventory       int     `json:"inventory" validate:"min=0"`
	SKU             string  `json:"sku" validate:"max=64"`
	OnSale          bool    `json:"on_sale"`
	DiscountPercent int     `json:"discount_percent" validate:"min=0,max=100"`
	NewArrival      bool    `json:"new_arrival"`
}

// Product converts the request into a product with the given id.
func (req *ProductRequest) Product(id int64) *models.Product {
	return &models.Product{
		ID:              id,
		Name:            req.Name,
		Description:     req.Description,
		Price:           decimal.NewFromFloat(req.Price).Round(2),
		ImageURL:        req.ImageURL,
		CategoryID:      req.CategoryID,
		Featured:        req.Featured,
		Inventory:       req.Inventory,
		SKU:             req.SKU,
		OnSale:          req.OnSale,
		DiscountPercent: req.DiscountPercent,
		NewArrival:      req.NewArrival,
	}
}

// PriceRequest is the body of PUT /api/v1/admin/products/{id}/price.
type PriceRequest struct {
	Price float64 `json:"price" validate:"price"`
}

// StockRequest is the body of PUT /api/v1/admin/products/{id}/stock.
type StockRequest struct {
	Inventory int `json:"inventory" validate:"min=0"`
}

// CategoryRequest is the body of POST /api/v1/admin/categories.
type CategoryRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Slug         string `json:"slug" validate:"omitempty,slug,max=100"`
	Description  string `json:"description" validate:"max=1000"`
	ParentID     *int64 `json:"parent_id" validate:"omitempty,gt=0"`
	IsCollection bool   `json:"is_collection"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
	ImageURL     string `json:"image_url" validate:"omitempty,url,max=500"`
}

// Category converts the request into a category.
func (req *CategoryRequest) Category() *models.Category {
	return &models.Category{
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		ParentID:     req.ParentID,
		IsCollection: req.IsCollection,
		DisplayOrder: req.DisplayOrder,
		ImageURL:     req.ImageURL,
	}
}

// UserRequest is the body of POST /api/v1/admin/users.
type UserRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// OrderLineRequest is one item of an order.
type OrderLineRequest struct {
	ProductID int64 `json:"product_id" validate:"gt=0"`
	Quantity  int   `json:"quantity" validate:"gte=1,lte=1000"`
}

// OrderRequest is the body of POST /api/v1/admin/orders. CreatedAt lets
// importers record historical orders; it defaults to now.
type OrderRequest struct {
	UserID    int64              `json:"user_id" validate:"gt=0"`
	Status    string             `json:"status" validate:"omitempty,order_status"`
	Items     []OrderLineRequest `json:"items" validate:"required,min=1,max=100,dive"`
	CreatedAt *time.Time         `json:"created_at"`
}

// Lines converts the request items into store order lines.
func (req *OrderRequest) Lines() []models.OrderLine {
	lines := make([]models.OrderLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = models.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return lines
}

// OrderStatusRequest is the body of PUT /api/v1/admin/orders/{id}/status.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,order_status"`
}

// OrderItemResponse is one line of an order in responses.
type OrderItemResponse struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}

// OrderResponse is the order shape returned by the admin endpoints.
type OrderResponse struct {
	ID        int64               `json:"id"`
	UserID    int64               `json:"user_id"`
	Status    models.OrderStatus  `json:"status"`
	Total     float64             `json:"total"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func newOrderResponse(o *models.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items[i] = OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     models.Money(item.Price),
			Total:     models.Money(item.Total()),
		}
	}
	return OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    o.Status,
		Total:     models.Money(o.Total()),
		Items:     items,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
