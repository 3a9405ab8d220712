// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/classycouture/internal/config"
	"github.com/tomtom215/classycouture/internal/eventprocessor"
	"github.com/tomtom215/classycouture/internal/logging"
)

// EventComponents is the transport carrying product change events from the
// notifier to the relay.
type EventComponents struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
	Topic      string

	// Server is the embedded NATS server, nil unless one was started.
	Server *eventprocessor.EmbeddedServer

	breaker *eventprocessor.BreakerPublisher
	closers []func() error
}

// InitEvents builds the configured transport. It returns nil when realtime
// updates are disabled. The NATS transport needs a binary built with
// -tags nats.
func InitEvents(cfg *config.Config) (*EventComponents, error) {
	if !cfg.Realtime.Enabled {
		logging.Info().Msg("Realtime product updates disabled (REALTIME_ENABLED=false)")
		return nil, nil
	}

	settings := eventprocessor.SettingsFromConfig(cfg)
	components := &EventComponents{Topic: settings.Notifier.Topic}

	var (
		publisher message.Publisher
		err       error
	)
	switch cfg.Realtime.Transport {
	case "nats":
		publisher, err = components.initNATS(cfg, &settings)
		if err != nil {
			components.Close()
			components.shutdownServer()
			if errors.Is(err, eventprocessor.ErrNATSNotEnabled) {
				return nil, fmt.Errorf("REALTIME_TRANSPORT=nats requires a build with -tags nats: %w", err)
			}
			return nil, err
		}
	default:
		topic := eventprocessor.NewMemoryTopic(settings.Notifier.QueueSize)
		components.Subscriber = topic
		publisher = topic
		logging.Info().Str("topic", components.Topic).Msg("Using in-process event transport")
	}

	components.breaker = eventprocessor.NewBreakerPublisher(publisher, settings.Breaker)
	components.Publisher = components.breaker
	// Closing the breaker closes the wrapped publisher; for the memory
	// transport that is also the subscriber.
	components.closers = append(components.closers, components.breaker.Close)
	return components, nil
}

func (c *EventComponents) initNATS(cfg *config.Config, settings *eventprocessor.Settings) (message.Publisher, error) {
	natsCfg := settings.NATS
	if cfg.NATS.EmbeddedServer {
		server, err := eventprocessor.NewEmbeddedServer(&settings.Server)
		if err != nil {
			return nil, fmt.Errorf("start embedded NATS server: %w", err)
		}
		c.Server = server
		natsCfg.URL = server.ClientURL()
		logging.Info().Str("url", natsCfg.URL).Msg("Embedded NATS server started")
	} else {
		logging.Info().Str("url", natsCfg.URL).Msg("Using external NATS server")
	}

	wmLogger := logging.NewWatermillLogger()
	publisher, err := eventprocessor.NewNATSPublisher(natsCfg, wmLogger)
	if err != nil {
		return nil, err
	}

	subscriber, err := eventprocessor.NewNATSSubscriber(natsCfg, wmLogger)
	if err != nil {
		_ = publisher.Close()
		return nil, err
	}
	c.Subscriber = subscriber
	c.closers = append(c.closers, subscriber.Close)
	return publisher, nil
}

func (c *EventComponents) shutdownServer() {
	if c.Server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Server.Shutdown(ctx); err != nil {
		logging.Warn().Err(err).Msg("Error stopping embedded NATS server")
	}
}

// BreakerState reports the publish circuit breaker state for logging.
func (c *EventComponents) BreakerState() string {
	if c == nil || c.breaker == nil {
		return "none"
	}
	return c.breaker.State().String()
}

// Close releases the publisher and subscriber in reverse order of
// creation. The embedded server is owned by the supervisor tree. Close is
// safe on a nil receiver.
func (c *EventComponents) Close() {
	if c == nil {
		return
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			logging.Warn().Err(err).Msg("Error closing event transport")
		}
	}
	c.closers = nil
}
