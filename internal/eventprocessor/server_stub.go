// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

//go:build !nats

package eventprocessor

import "context"

// EmbeddedServer is a stub when NATS dependencies are not available.
type EmbeddedServer struct{}

// NewEmbeddedServer returns ErrNATSNotEnabled.
func NewEmbeddedServer(cfg *ServerConfig) (*EmbeddedServer, error) {
	return nil, ErrNATSNotEnabled
}

// ClientURL returns an empty string for the stub.
func (s *EmbeddedServer) ClientURL() string {
	return ""
}

// Shutdown is a no-op stub.
func (s *EmbeddedServer) Shutdown(ctx context.Context) error {
	return nil
}

// IsRunning always returns false for the stub.
func (s *EmbeddedServer) IsRunning() bool {
	return false
}
