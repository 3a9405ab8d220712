// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package websocket

import (
	"github.com/tomtom215/classycouture/internal/config"
)

// Defaults applied by NewHub to zero-valued HubConfig fields.
const (
	DefaultSnapshotLimit   = 8
	DefaultBroadcastQueue  = 256
	DefaultClientQueue     = 256
	DefaultClientRateLimit = 5.0
	DefaultClientBurst     = 10
)

// HubConfig tunes the broker.
type HubConfig struct {
	// SnapshotLimit caps new_arrivals and featured_products lists.
	SnapshotLimit int
	// BroadcastQueue is the capacity of the shared fan-out queue.
	BroadcastQueue int
	// ClientQueue is the capacity of each subscriber's outbound queue.
	ClientQueue int
	// ClientRateLimit and ClientBurst bound inbound requests per connection.
	ClientRateLimit float64
	ClientBurst     int
}

// DefaultHubConfig returns the defaults.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		SnapshotLimit:   DefaultSnapshotLimit,
		BroadcastQueue:  DefaultBroadcastQueue,
		ClientQueue:     DefaultClientQueue,
		ClientRateLimit: DefaultClientRateLimit,
		ClientBurst:     DefaultClientBurst,
	}
}

// HubConfigFromConfig derives the hub settings from application config.
func HubConfigFromConfig(cfg *config.Config) HubConfig {
	c := DefaultHubConfig()
	if cfg == nil {
		return c
	}
	c.SnapshotLimit = cfg.Recommend.SnapshotLimit
	c.BroadcastQueue = cfg.Realtime.QueueSize
	c.ClientRateLimit = cfg.Realtime.ClientRateLimit
	c.ClientBurst = cfg.Realtime.ClientBurst
	return c.withDefaults()
}

func (c HubConfig) withDefaults() HubConfig {
	if c.SnapshotLimit <= 0 {
		c.SnapshotLimit = DefaultSnapshotLimit
	}
	if c.BroadcastQueue <= 0 {
		c.BroadcastQueue = DefaultBroadcastQueue
	}
	if c.ClientQueue <= 0 {
		c.ClientQueue = DefaultClientQueue
	}
	if c.ClientRateLimit <= 0 {
		c.ClientRateLimit = DefaultClientRateLimit
	}
	if c.ClientBurst <= 0 {
		c.ClientBurst = DefaultClientBurst
	}
	return c
}
