// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package eventprocessor

import (
	"fmt"
	"time"

	"github.com/tomtom215/classycouture/internal/config"
)

// DefaultTopic is the topic product change events are published on.
const DefaultTopic = "product_updates"

// NotifierConfig configures the change notifier and its dispatcher.
type NotifierConfig struct {
	Topic string

	// QueueSize bounds the events waiting for the dispatcher. Emit drops
	// events once it is full.
	QueueSize int

	// LowStockThreshold marks stock_update events with low_stock when the
	// new stock is positive and below it.
	LowStockThreshold int
}

// DefaultNotifierConfig returns the notifier defaults.
func DefaultNotifierConfig() NotifierConfig {
	return NotifierConfig{
		Topic:             DefaultTopic,
		QueueSize:         256,
		LowStockThreshold: DefaultLowStockThreshold,
	}
}

// Validate checks the notifier configuration.
func (c NotifierConfig) Validate() error {
	if c.Topic == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidConfig)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("%w: queue size must be positive, got %d", ErrInvalidConfig, c.QueueSize)
	}
	if c.LowStockThreshold < 1 {
		return fmt.Errorf("%w: low stock threshold must be positive, got %d", ErrInvalidConfig, c.LowStockThreshold)
	}
	return nil
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	Name             string
	MaxRequests      uint32        // Allowed in half-open state
	Interval         time.Duration // Reset interval for counts
	Timeout          time.Duration // Time to stay open
	FailureThreshold uint32        // Consecutive failures before opening
}

// DefaultCircuitBreakerConfig returns production defaults.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// NATSConfig configures the core NATS publisher and subscriber.
type NATSConfig struct {
	URL             string
	MaxReconnects   int
	ReconnectWait   time.Duration
	ReconnectBuffer int

	// SubscribersCount is the number of goroutines consuming the topic.
	// Values above 1 can reorder events for a single product.
	SubscribersCount int

	AckWaitTimeout time.Duration
	CloseTimeout   time.Duration
}

// DefaultNATSConfig returns production defaults for the NATS transport.
func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:              "nats://127.0.0.1:4222",
		MaxReconnects:    -1,
		ReconnectWait:    2 * time.Second,
		ReconnectBuffer:  8 * 1024 * 1024,
		SubscribersCount: 1,
		AckWaitTimeout:   30 * time.Second,
		CloseTimeout:     30 * time.Second,
	}
}

// ServerConfig configures the embedded NATS server.
type ServerConfig struct {
	Host       string
	Port       int
	MaxPayload int32
}

// DefaultServerConfig returns the embedded server defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:       "127.0.0.1",
		Port:       4222,
		MaxPayload: 1024 * 1024,
	}
}

// Settings is the event pipeline configuration derived from the
// application configuration.
type Settings struct {
	Notifier NotifierConfig
	Breaker  CircuitBreakerConfig
	NATS     NATSConfig
	Server   ServerConfig
}

// SettingsFromConfig maps the realtime, recommend and nats sections of the
// application configuration onto the event pipeline.
func SettingsFromConfig(cfg *config.Config) Settings {
	s := Settings{
		Notifier: DefaultNotifierConfig(),
		Breaker:  DefaultCircuitBreakerConfig("product-events"),
		NATS:     DefaultNATSConfig(),
		Server:   DefaultServerConfig(),
	}

	s.Notifier.Topic = cfg.Realtime.Topic
	s.Notifier.QueueSize = cfg.Realtime.QueueSize
	s.Notifier.LowStockThreshold = cfg.Recommend.LowStockThreshold

	s.Breaker.FailureThreshold = cfg.Realtime.BreakerFailureThreshold
	s.Breaker.Timeout = cfg.Realtime.BreakerTimeout

	s.NATS.URL = cfg.NATS.URL
	s.NATS.MaxReconnects = cfg.NATS.MaxReconnects
	s.NATS.ReconnectWait = cfg.NATS.ReconnectWait
	s.NATS.SubscribersCount = cfg.NATS.SubscribersCount

	s.Server.Host = cfg.NATS.Host
	s.Server.Port = cfg.NATS.Port
	return s
}
