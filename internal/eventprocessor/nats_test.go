// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

//go:build nats

package eventprocessor

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/classycouture/internal/logging"
)

func startEmbeddedServer(t *testing.T) *EmbeddedServer {
	t.Helper()
	srv, err := NewEmbeddedServer(&ServerConfig{Host: "127.0.0.1", Port: -1, MaxPayload: 1 << 20})
	if err != nil {
		t.Fatalf("NewEmbeddedServer() error = %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown() error = %v", err)
		}
	})
	return srv
}

// relayOverNATS wires notifier -> NATS -> relay using separate connections
// for publisher and subscriber.
func relayOverNATS(t *testing.T, url string) {
	t.Helper()

	cfg := DefaultNATSConfig()
	cfg.URL = url

	sub, err := NewNATSSubscriber(cfg, logging.NewWatermillLogger())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = sub.Close() })

	pub, err := NewNATSPublisher(cfg, logging.NewWatermillLogger())
	if err != nil {
		t.Fatal(err)
	}
	var publisher message.Publisher = NewBreakerPublisher(pub, DefaultCircuitBreakerConfig("nats-test"))
	t.Cleanup(func() { _ = publisher.Close() })

	b := newFakeBroadcaster()
	startRelay(t, NewRelay(sub, DefaultTopic, b))

	n, err := NewNotifier(publisher, DefaultNotifierConfig())
	if err != nil {
		t.Fatal(err)
	}
	startNotifier(t, n)

	n.StockChanged(testProduct(), 3, 0)

	select {
	case <-b.got:
	case <-time.After(5 * time.Second):
		t.Fatal("event did not arrive over NATS")
	}
	event, err := DeserializeEvent(b.received()[0])
	if err != nil {
		t.Fatal(err)
	}
	if event.Type != EventStockUpdate || !event.OutOfStock {
		t.Errorf("event = %+v", event)
	}
}

func TestEmbeddedServerRelay(t *testing.T) {
	srv := startEmbeddedServer(t)
	if !srv.IsRunning() {
		t.Fatal("server not running")
	}
	relayOverNATS(t, srv.ClientURL())
}

func TestNATSRequiresURL(t *testing.T) {
	cfg := DefaultNATSConfig()
	cfg.URL = ""
	if _, err := NewNATSPublisher(cfg, nil); err == nil {
		t.Error("publisher accepted empty URL")
	}
	if _, err := NewNATSSubscriber(cfg, nil); err == nil {
		t.Error("subscriber accepted empty URL")
	}
}
