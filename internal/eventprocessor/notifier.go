// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package eventprocessor

import (
	"context"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tomtom215/classycouture/internal/logging"
	"github.com/tomtom215/classycouture/internal/metrics"
	"github.com/tomtom215/classycouture/internal/models"
)

// Drop reasons recorded by product_events_dropped_total.
const (
	DropReasonNoTransport = "no_transport"
	DropReasonQueueFull   = "queue_full"
	DropReasonEncode      = "encode"
)

// Notifier receives catalog mutations, builds product change events and
// hands them to a dispatcher goroutine (Serve) that publishes them on the
// topic. It implements database.ProductChangeListener.
//
// Nothing on the mutation side ever blocks or fails because of delivery:
// Emit is a non-blocking enqueue and every failure after that point is
// logged and counted.
type Notifier struct {
	publisher message.Publisher
	cfg       NotifierConfig
	queue     chan *ProductChangeEvent
	logger    zerolog.Logger

	emitted atomic.Int64
	dropped atomic.Int64
}

// NewNotifier creates a notifier publishing to publisher. A nil publisher
// is allowed: every event is then discarded at Emit.
func NewNotifier(publisher message.Publisher, cfg NotifierConfig) (*Notifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Notifier{
		publisher: publisher,
		cfg:       cfg,
		queue:     make(chan *ProductChangeEvent, cfg.QueueSize),
		logger:    logging.WithComponent("notifier"),
	}, nil
}

// ProductCreated emits a product_created event.
func (n *Notifier) ProductCreated(p *models.Product) {
	n.Emit(NewProductCreatedEvent(p))
}

// ProductUpdated emits a product_updated event.
func (n *Notifier) ProductUpdated(p *models.Product) {
	n.Emit(NewProductUpdatedEvent(p))
}

// ProductDeleted emits a product_deleted event.
func (n *Notifier) ProductDeleted(id int64, name string) {
	n.Emit(NewProductDeletedEvent(id, name))
}

// PriceChanged emits a price_change event unless the price is unchanged.
func (n *Notifier) PriceChanged(p *models.Product, oldPrice, newPrice decimal.Decimal) {
	if e, ok := NewPriceChangeEvent(p, oldPrice, newPrice); ok {
		n.Emit(e)
	}
}

// StockChanged emits a stock_update event unless the stock is unchanged.
func (n *Notifier) StockChanged(p *models.Product, oldStock, newStock int) {
	if e, ok := NewStockUpdateEvent(p, oldStock, newStock, n.cfg.LowStockThreshold); ok {
		n.Emit(e)
	}
}

// Emit enqueues event for the dispatcher without blocking. It reports
// whether the event was queued.
func (n *Notifier) Emit(event *ProductChangeEvent) bool {
	metrics.RecordProductEvent(string(event.Type))

	if n.publisher == nil {
		n.drop(event, DropReasonNoTransport)
		return false
	}

	select {
	case n.queue <- event:
		n.emitted.Add(1)
		return true
	default:
		n.drop(event, DropReasonQueueFull)
		return false
	}
}

func (n *Notifier) drop(event *ProductChangeEvent, reason string) {
	n.dropped.Add(1)
	metrics.RecordProductEventDropped(reason)

	ev := n.logger.Warn()
	if reason == DropReasonNoTransport {
		ev = n.logger.Debug()
	}
	ev.Str("event_type", string(event.Type)).
		Int64("product_id", event.ProductID).
		Str("reason", reason).
		Msg("Product change event dropped")
}

// Serve runs the dispatcher until ctx is canceled. It implements
// suture.Service.
func (n *Notifier) Serve(ctx context.Context) error {
	n.logger.Info().Str("topic", n.cfg.Topic).Msg("Product change dispatcher started")
	for {
		select {
		case <-ctx.Done():
			n.logger.Info().Int("pending", len(n.queue)).Msg("Product change dispatcher stopped")
			return ctx.Err()
		case event := <-n.queue:
			n.publish(event)
		}
	}
}

func (n *Notifier) publish(event *ProductChangeEvent) {
	msg, err := NewEventMessage(event)
	if err != nil {
		n.dropped.Add(1)
		metrics.RecordProductEventDropped(DropReasonEncode)
		n.logger.Error().Err(err).Str("event_id", event.EventID).Msg("Failed to encode product change event")
		return
	}

	err = n.publisher.Publish(n.cfg.Topic, msg)
	metrics.RecordProductEventPublish(err)
	if err != nil {
		n.logger.Warn().Err(err).
			Str("event_type", string(event.Type)).
			Int64("product_id", event.ProductID).
			Msg("Failed to publish product change event")
		return
	}

	n.logger.Debug().
		Str("event_type", string(event.Type)).
		Int64("product_id", event.ProductID).
		Str("product_name", event.ProductName).
		Msg("Product change event published")
}

// Stats returns the number of events queued and dropped so far.
func (n *Notifier) Stats() (emitted, dropped int64) {
	return n.emitted.Load(), n.dropped.Load()
}

// String implements fmt.Stringer for supervisor logging.
func (n *Notifier) String() string {
	return "product-change-notifier"
}
