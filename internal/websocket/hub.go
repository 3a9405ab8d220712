// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/classycouture/internal/logging"
	"github.com/tomtom215/classycouture/internal/metrics"
	"github.com/tomtom215/classycouture/internal/models"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful path (SIGTERM).
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline means the context deadline was exceeded.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types sent to subscribers.
const (
	MessageTypeNewArrivals   = "new_arrivals"
	MessageTypeFeatured      = "featured_products"
	MessageTypeProductUpdate = "product_update"
	MessageTypeError         = "error"
	MessageTypePong          = "pong"
)

// Message types accepted from subscribers.
const (
	MessageTypeGetNewArrivals = "get_new_arrivals"
	MessageTypeGetFeatured    = "get_featured"
	MessageTypePing           = "ping"
)

// Drop reasons recorded by websocket_messages_dropped_total.
const (
	DropReasonBroadcastFull = "broadcast_queue_full"
	DropReasonClientFull    = "client_queue_full"
	DropReasonClientClosed  = "client_closed"
)

// Message is the envelope for every frame in both directions. Error replies
// carry Message instead of Data.
type Message struct {
	Type    string      `json:"type"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// SnapshotSource supplies the product lists pushed on connect and on
// request.
type SnapshotSource interface {
	NewArrivalsSnapshot(ctx context.Context, limit int) ([]models.ProductRecord, error)
	FeaturedSnapshot(ctx context.Context, limit int) ([]models.ProductRecord, error)
}

// Hub maintains the set of active subscribers and fans product updates out
// to them. Delivery is at-most-once: a subscriber whose queue is full misses
// the message and stays connected.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex

	snapshots SnapshotSource
	cfg       HubConfig
	logger    zerolog.Logger
}

// NewHub creates a hub serving snapshots from source. source may be nil,
// in which case snapshot requests return empty lists.
func NewHub(source SnapshotSource, cfg HubConfig) *Hub {
	cfg = cfg.withDefaults()
	return &Hub{
		broadcast:  make(chan Message, cfg.BroadcastQueue),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		snapshots:  source,
		cfg:        cfg,
		logger:     logging.WithComponent("websocket-hub"),
	}
}

// Config returns the effective hub configuration.
func (h *Hub) Config() HubConfig {
	return h.cfg
}

// RunWithContext runs the hub until ctx is canceled, then closes every
// client and returns ctx.Err(). It implements suture.Service via Serve.
//
// Selection is prioritized: shutdown first, then register/unregister, then
// broadcasts, so client state is settled before a message is fanned out.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.register(client)
			continue
		case client := <-h.Unregister:
			h.unregister(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.register(client)
		case client := <-h.Unregister:
			h.unregister(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

// Serve implements suture.Service.
func (h *Hub) Serve(ctx context.Context) error {
	return h.RunWithContext(ctx)
}

// String implements fmt.Stringer for supervisor logging.
func (h *Hub) String() string {
	return "websocket-hub"
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()
	metrics.SetWSConnections(total)
	h.logger.Info().Uint64("client_id", client.id).Int("total_clients", total).Msg("Subscriber connected")
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.closeSend()
	}
	total := len(h.clients)
	h.mu.Unlock()
	metrics.SetWSConnections(total)
	h.logger.Info().Uint64("client_id", client.id).Int("total_clients", total).Msg("Subscriber disconnected")
}

func (h *Hub) shutdown(ctx context.Context) {
	count := h.GetClientCount()
	h.closeAllClients()
	h.logger.Info().
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", count).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	if ctx.Err() == context.DeadlineExceeded {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// sortedClients returns the registered clients in id order. Caller holds mu.
func (h *Hub) sortedClients() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

func (h *Hub) broadcastToClients(message Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.sortedClients() {
		client.enqueue(message)
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.sortedClients() {
		client.closeSend()
		delete(h.clients, client)
	}
	metrics.SetWSConnections(0)
}

// BroadcastProductUpdate queues an encoded product change event for every
// subscriber. It never blocks; when the broadcast queue is full the event is
// dropped.
func (h *Hub) BroadcastProductUpdate(payload []byte) {
	h.BroadcastJSON(MessageTypeProductUpdate, json.RawMessage(payload))
}

// BroadcastJSON queues a message of the given type for every subscriber.
func (h *Hub) BroadcastJSON(messageType string, data interface{}) {
	message := Message{Type: messageType, Data: data}

	select {
	case h.broadcast <- message:
	default:
		metrics.RecordWSDrop(DropReasonBroadcastFull)
		h.logger.Warn().Str("message_type", messageType).Msg("Broadcast queue full, dropping message")
	}
}

// GetClientCount returns the number of connected subscribers.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Snapshot loads the product list for a snapshot message type. Unknown types
// and a nil source yield an empty list.
func (h *Hub) Snapshot(ctx context.Context, messageType string) ([]models.ProductRecord, error) {
	if h.snapshots == nil {
		return []models.ProductRecord{}, nil
	}

	var (
		records []models.ProductRecord
		err     error
	)
	switch messageType {
	case MessageTypeNewArrivals:
		records, err = h.snapshots.NewArrivalsSnapshot(ctx, h.cfg.SnapshotLimit)
	case MessageTypeFeatured:
		records, err = h.snapshots.FeaturedSnapshot(ctx, h.cfg.SnapshotLimit)
	}
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.ProductRecord{}
	}
	return records, nil
}

// MarshalMessage encodes a message frame.
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
