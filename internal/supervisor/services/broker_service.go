// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/classycouture/internal/logging"
)

// ErrBrokerNotRunning is returned when the supervised broker was never
// started or has already stopped.
var ErrBrokerNotRunning = errors.New("embedded broker is not running")

// Broker is an in-process message broker that starts in its constructor,
// such as eventprocessor.EmbeddedServer.
type Broker interface {
	Shutdown(ctx context.Context) error
	IsRunning() bool
}

// BrokerService ties an already started broker to the supervision tree so
// it is shut down with the rest of the process.
type BrokerService struct {
	broker          Broker
	shutdownTimeout time.Duration
}

// NewBrokerService wraps broker.
func NewBrokerService(broker Broker, shutdownTimeout time.Duration) *BrokerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}
	return &BrokerService{broker: broker, shutdownTimeout: shutdownTimeout}
}

// Serve implements suture.Service. A broker that is not running cannot be
// restarted from here, so Serve tells suture not to retry.
func (b *BrokerService) Serve(ctx context.Context) error {
	if !b.broker.IsRunning() {
		return fmt.Errorf("%w: %w", ErrBrokerNotRunning, suture.ErrDoNotRestart)
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), b.shutdownTimeout)
	defer cancel()
	if err := b.broker.Shutdown(shutdownCtx); err != nil {
		logging.Warn().Err(err).Msg("Embedded broker shutdown failed")
	}
	return ctx.Err()
}

// String implements fmt.Stringer for supervisor logging.
func (b *BrokerService) String() string {
	return "embedded-broker"
}
