// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package eventprocessor

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/classycouture/internal/logging"
)

// Broadcaster fans a product change out to live subscribers. payload is the
// encoded ProductChangeEvent.
type Broadcaster interface {
	BroadcastProductUpdate(payload []byte)
}

// Relay consumes the product update topic and forwards each event to a
// Broadcaster. Every message is acked: delivery to subscribers is
// best-effort, so there is nothing to redeliver.
type Relay struct {
	subscriber  message.Subscriber
	topic       string
	broadcaster Broadcaster
	logger      zerolog.Logger

	ready     chan struct{}
	readyOnce sync.Once
}

// NewRelay creates a relay from topic on subscriber to broadcaster.
func NewRelay(subscriber message.Subscriber, topic string, broadcaster Broadcaster) *Relay {
	return &Relay{
		subscriber:  subscriber,
		topic:       topic,
		broadcaster: broadcaster,
		logger:      logging.WithComponent("relay"),
		ready:       make(chan struct{}),
	}
}

// Ready is closed once the first subscription is established.
func (r *Relay) Ready() <-chan struct{} {
	return r.ready
}

// Serve subscribes and forwards messages until ctx is canceled or the
// subscription closes. It implements suture.Service.
func (r *Relay) Serve(ctx context.Context) error {
	messages, err := r.subscriber.Subscribe(ctx, r.topic)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", r.topic, err)
	}
	r.readyOnce.Do(func() { close(r.ready) })
	r.logger.Info().Str("topic", r.topic).Msg("Product update relay subscribed")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("subscription to %s closed", r.topic)
			}
			r.handle(msg)
		}
	}
}

func (r *Relay) handle(msg *message.Message) {
	defer msg.Ack()

	event, err := DeserializeEvent(msg.Payload)
	if err != nil {
		r.logger.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping undecodable product update")
		return
	}

	r.broadcaster.BroadcastProductUpdate(msg.Payload)
	r.logger.Debug().
		Str("event_type", string(event.Type)).
		Int64("product_id", event.ProductID).
		Msg("Product update relayed")
}

// String implements fmt.Stringer for supervisor logging.
func (r *Relay) String() string {
	return "product-update-relay"
}
