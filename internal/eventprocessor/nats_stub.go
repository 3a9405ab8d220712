// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

//go:build !nats

package eventprocessor

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// NewNATSPublisher returns ErrNATSNotEnabled. Build with -tags nats for
// the NATS transport.
func NewNATSPublisher(cfg NATSConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return nil, ErrNATSNotEnabled
}

// NewNATSSubscriber returns ErrNATSNotEnabled. Build with -tags nats for
// the NATS transport.
func NewNATSSubscriber(cfg NATSConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	return nil, ErrNATSNotEnabled
}
