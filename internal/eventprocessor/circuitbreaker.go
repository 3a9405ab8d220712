// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package eventprocessor

import (
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/classycouture/internal/logging"
	"github.com/tomtom215/classycouture/internal/metrics"
)

// NewCircuitBreaker creates a circuit breaker that opens after
// FailureThreshold consecutive failures. State changes are logged and
// exported as the circuit_breaker_state metric.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *gobreaker.CircuitBreaker[interface{}] {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	}

	metrics.SetCircuitBreakerState(cfg.Name, int(gobreaker.StateClosed))
	return gobreaker.NewCircuitBreaker[interface{}](settings)
}

// CircuitBreakerState converts gobreaker.State to a string for monitoring.
func CircuitBreakerState(cb *gobreaker.CircuitBreaker[interface{}]) string {
	return cb.State().String()
}

// BreakerPublisher is a message.Publisher that routes every publish through
// a circuit breaker. While the breaker is open, Publish fails immediately
// with gobreaker.ErrOpenState.
type BreakerPublisher struct {
	next message.Publisher
	cb   *gobreaker.CircuitBreaker[interface{}]

	mu     sync.RWMutex
	closed bool
}

// NewBreakerPublisher wraps next with a circuit breaker built from cfg.
func NewBreakerPublisher(next message.Publisher, cfg CircuitBreakerConfig) *BreakerPublisher {
	return &BreakerPublisher{
		next: next,
		cb:   NewCircuitBreaker(cfg),
	}
}

// Publish implements message.Publisher.
func (p *BreakerPublisher) Publish(topic string, msgs ...*message.Message) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	_, err := p.cb.Execute(func() (interface{}, error) {
		return nil, p.next.Publish(topic, msgs...)
	})
	return err
}

// State returns the breaker state.
func (p *BreakerPublisher) State() gobreaker.State {
	return p.cb.State()
}

// Close closes the wrapped publisher. Further publishes fail with
// ErrPublisherClosed.
func (p *BreakerPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.next.Close()
}
