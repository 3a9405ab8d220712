// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package eventprocessor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/tomtom215/classycouture/internal/metrics"
)

// recordingPublisher captures published messages and can be made to fail.
type recordingPublisher struct {
	mu       sync.Mutex
	messages []*message.Message
	topics   []string
	err      error
	calls    int
	notify   chan struct{}
	closed   bool
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{notify: make(chan struct{}, 64)}
}

func (p *recordingPublisher) Publish(topic string, msgs ...*message.Message) error {
	p.mu.Lock()
	p.calls++
	err := p.err
	if err == nil {
		p.topics = append(p.topics, topic)
		p.messages = append(p.messages, msgs...)
	}
	p.mu.Unlock()

	select {
	case p.notify <- struct{}{}:
	default:
	}
	return err
}

func (p *recordingPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *recordingPublisher) snapshot() ([]*message.Message, []string, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*message.Message(nil), p.messages...), append([]string(nil), p.topics...), p.calls
}

func (p *recordingPublisher) waitCalls(t *testing.T, n int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if _, _, calls := p.snapshot(); calls >= n {
			return
		}
		select {
		case <-p.notify:
		case <-deadline:
			t.Fatalf("timed out waiting for %d publish calls", n)
		}
	}
}

func startNotifier(t *testing.T, n *Notifier) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- n.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("dispatcher did not stop")
		}
	})
}

func TestNewNotifierValidatesConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NotifierConfig)
	}{
		{"empty topic", func(c *NotifierConfig) { c.Topic = "" }},
		{"zero queue", func(c *NotifierConfig) { c.QueueSize = 0 }},
		{"zero threshold", func(c *NotifierConfig) { c.LowStockThreshold = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultNotifierConfig()
			tt.mutate(&cfg)
			if _, err := NewNotifier(nil, cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestNotifierPublishesListenerEvents(t *testing.T) {
	pub := newRecordingPublisher()
	n, err := NewNotifier(pub, DefaultNotifierConfig())
	if err != nil {
		t.Fatal(err)
	}
	startNotifier(t, n)

	p := testProduct()
	n.ProductCreated(p)
	n.ProductUpdated(p)
	n.ProductDeleted(p.ID, p.Name)
	pub.waitCalls(t, 3)

	msgs, topics, _ := pub.snapshot()
	want := []EventType{EventProductCreated, EventProductUpdated, EventProductDeleted}
	if len(msgs) != len(want) {
		t.Fatalf("published %d messages, want %d", len(msgs), len(want))
	}
	for i, w := range want {
		if topics[i] != DefaultTopic {
			t.Errorf("topic[%d] = %q", i, topics[i])
		}
		event, err := DeserializeEvent(msgs[i].Payload)
		if err != nil {
			t.Fatalf("message %d: %v", i, err)
		}
		if event.Type != w {
			t.Errorf("event[%d] = %s, want %s", i, event.Type, w)
		}
		if msgs[i].Metadata.Get(MetadataEventType) != string(w) {
			t.Errorf("metadata[%d] = %q", i, msgs[i].Metadata.Get(MetadataEventType))
		}
	}

	emitted, dropped := n.Stats()
	if emitted != 3 || dropped != 0 {
		t.Errorf("Stats() = %d, %d; want 3, 0", emitted, dropped)
	}
}

func TestNotifierExplicitChanges(t *testing.T) {
	pub := newRecordingPublisher()
	cfg := DefaultNotifierConfig()
	cfg.LowStockThreshold = 5
	n, err := NewNotifier(pub, cfg)
	if err != nil {
		t.Fatal(err)
	}
	startNotifier(t, n)

	p := testProduct()
	n.PriceChanged(p, decimal.RequireFromString("10.00"), decimal.RequireFromString("10.00"))
	n.StockChanged(p, 4, 4)
	n.PriceChanged(p, decimal.RequireFromString("250.00"), decimal.RequireFromString("199.99"))
	n.StockChanged(p, 10, 6)
	pub.waitCalls(t, 2)

	msgs, _, _ := pub.snapshot()
	if len(msgs) != 2 {
		t.Fatalf("published %d messages, want 2 (no-ops must not emit)", len(msgs))
	}

	price, err := DeserializeEvent(msgs[0].Payload)
	if err != nil {
		t.Fatal(err)
	}
	if price.Type != EventPriceChange || !price.PriceDropped || price.NewPrice != 199.99 {
		t.Errorf("price event = %+v", price.PriceChange)
	}

	stock, err := DeserializeEvent(msgs[1].Payload)
	if err != nil {
		t.Fatal(err)
	}
	// 6 is not below the configured threshold of 5.
	if stock.Type != EventStockUpdate || stock.LowStock {
		t.Errorf("stock event = %+v", stock.StockChange)
	}
}

func TestNotifierWithoutTransportDiscards(t *testing.T) {
	n, err := NewNotifier(nil, DefaultNotifierConfig())
	if err != nil {
		t.Fatal(err)
	}

	before := testutil.ToFloat64(metrics.ProductEventsDropped.WithLabelValues(DropReasonNoTransport))
	if n.Emit(NewProductDeletedEvent(1, "Gone")) {
		t.Error("Emit() = true with no transport")
	}
	after := testutil.ToFloat64(metrics.ProductEventsDropped.WithLabelValues(DropReasonNoTransport))
	if after-before != 1 {
		t.Errorf("dropped metric delta = %v, want 1", after-before)
	}
	if _, dropped := n.Stats(); dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
}

func TestNotifierEmitNeverBlocks(t *testing.T) {
	cfg := DefaultNotifierConfig()
	cfg.QueueSize = 2
	n, err := NewNotifier(newRecordingPublisher(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	// No dispatcher running: the queue fills and the rest are dropped.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			n.ProductDeleted(int64(i+1), "x")
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full queue")
	}

	emitted, dropped := n.Stats()
	if emitted != 2 || dropped != 8 {
		t.Errorf("Stats() = %d, %d; want 2, 8", emitted, dropped)
	}
}

func TestNotifierSwallowsPublishErrors(t *testing.T) {
	pub := newRecordingPublisher()
	pub.err = errors.New("broker down")
	n, err := NewNotifier(pub, DefaultNotifierConfig())
	if err != nil {
		t.Fatal(err)
	}
	startNotifier(t, n)

	before := testutil.ToFloat64(metrics.ProductEventsPublished.WithLabelValues("error"))
	n.ProductCreated(testProduct())
	n.ProductCreated(testProduct())
	pub.waitCalls(t, 2)

	// The dispatcher keeps running after failures.
	pub.mu.Lock()
	pub.err = nil
	pub.mu.Unlock()
	n.ProductDeleted(3, "After Recovery")
	pub.waitCalls(t, 3)

	msgs, _, _ := pub.snapshot()
	if len(msgs) != 1 {
		t.Fatalf("published %d messages after recovery, want 1", len(msgs))
	}
	after := testutil.ToFloat64(metrics.ProductEventsPublished.WithLabelValues("error"))
	if after-before != 2 {
		t.Errorf("publish error metric delta = %v, want 2", after-before)
	}
}

func TestNotifierServeStopsOnCancel(t *testing.T) {
	n, err := NewNotifier(newRecordingPublisher(), DefaultNotifierConfig())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := n.Serve(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if n.String() != "product-change-notifier" {
		t.Errorf("String() = %q", n.String())
	}
}
