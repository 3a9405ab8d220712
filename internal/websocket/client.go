// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package websocket

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/classycouture/internal/logging"
	"github.com/tomtom215/classycouture/internal/metrics"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	maxMessageSize  = 64 * 1024
	snapshotTimeout = 5 * time.Second
)

// Error replies sent to subscribers.
const (
	errInvalidJSON   = "Invalid JSON"
	errRateLimited   = "Too many requests, slow down"
	errSnapshotLoad  = "Failed to load products"
	errUnknownFormat = "Unknown message type: %s"
)

// clientIDCounter gives clients a stable fan-out order.
var clientIDCounter atomic.Uint64

// Client is one subscriber connection. The hub and the read pump both
// write to send; closeSend makes that safe after the hub lets go.
type Client struct {
	id      uint64
	hub     *Hub
	conn    *websocket.Conn
	send    chan Message
	limiter *rate.Limiter
	logger  zerolog.Logger

	mu     sync.Mutex
	closed bool
}

// NewClient creates a client for conn. Register it with hub.Register and
// then call Start.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	cfg := hub.cfg
	id := clientIDCounter.Add(1)
	return &Client{
		id:      id,
		hub:     hub,
		conn:    conn,
		send:    make(chan Message, cfg.ClientQueue),
		limiter: rate.NewLimiter(rate.Limit(cfg.ClientRateLimit), cfg.ClientBurst),
		logger:  logging.WithComponent("websocket-client").With().Uint64("client_id", id).Logger(),
	}
}

// ID returns the client's id.
func (c *Client) ID() uint64 {
	return c.id
}

// enqueue queues msg without blocking. It reports whether msg was queued.
func (c *Client) enqueue(msg Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		metrics.RecordWSDrop(DropReasonClientClosed)
		return false
	}
	select {
	case c.send <- msg:
		metrics.RecordWSMessage(msg.Type)
		return true
	default:
		metrics.RecordWSDrop(DropReasonClientFull)
		c.logger.Warn().Str("message_type", msg.Type).Msg("Subscriber queue full, dropping message")
		return false
	}
}

// closeSend closes the outbound queue once, which ends the write pump.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) sendError(text string) {
	c.enqueue(Message{Type: MessageTypeError, Message: text})
}

// pushSnapshot loads a product list and queues it as messageType.
func (c *Client) pushSnapshot(messageType string) {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	records, err := c.hub.Snapshot(ctx, messageType)
	if err != nil {
		c.logger.Error().Err(err).Str("message_type", messageType).Msg("Snapshot query failed")
		c.sendError(errSnapshotLoad)
		return
	}
	c.enqueue(Message{Type: messageType, Data: records})
}

// handleInbound answers one client frame. Malformed input gets an error
// reply; the connection stays open.
func (c *Client) handleInbound(data []byte) {
	if !c.limiter.Allow() {
		c.sendError(errRateLimited)
		return
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(errInvalidJSON)
		return
	}

	switch msg.Type {
	case MessageTypePing:
		c.enqueue(Message{Type: MessageTypePong})
	case MessageTypeGetNewArrivals:
		c.pushSnapshot(MessageTypeNewArrivals)
	case MessageTypeGetFeatured:
		c.pushSnapshot(MessageTypeFeatured)
	default:
		c.sendError(fmt.Sprintf(errUnknownFormat, msg.Type))
	}
}

// readPump pushes the connect-time snapshot, then serves client requests
// until the connection fails.
func (c *Client) readPump() {
	defer func() {
		// The hub may already be gone during shutdown.
		select {
		case c.hub.Unregister <- c:
		case <-time.After(writeWait):
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	c.pushSnapshot(MessageTypeNewArrivals)

	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn().Err(err).Msg("unexpected websocket close")
			}
			return
		}
		if kind != websocket.TextMessage {
			c.sendError(errInvalidJSON)
			continue
		}
		c.handleInbound(data)
	}
}

// writePump writes queued messages and keepalive pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			frame, err := MarshalMessage(message)
			if err != nil {
				c.logger.Error().Err(err).Str("message_type", message.Type).Msg("failed to encode message")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Debug().Err(err).Msg("write failed, closing")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Start runs the read and write pumps.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}
