// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tclog "github.com/testcontainers/testcontainers-go/log"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultNATSImage is the NATS server image used for integration tests.
	DefaultNATSImage = "nats:2.12-alpine"

	// DefaultNATSPort is the NATS client port inside the container.
	DefaultNATSPort = "4222"

	// natsMonitorPort serves /healthz.
	natsMonitorPort = "8222"
)

// NATSContainer is a running NATS server.
type NATSContainer struct {
	testcontainers.Container

	// URL is the nats:// client URL reachable from the test process.
	URL string
}

// NATSOption configures the NATS container.
type NATSOption func(*natsConfig)

type natsConfig struct {
	image        string
	startTimeout time.Duration
	logger       tclog.Logger
}

// WithNATSImage overrides the NATS image.
func WithNATSImage(image string) NATSOption {
	return func(c *natsConfig) {
		c.image = image
	}
}

// WithNATSStartTimeout sets how long to wait for the server to come up.
func WithNATSStartTimeout(timeout time.Duration) NATSOption {
	return func(c *natsConfig) {
		c.startTimeout = timeout
	}
}

// WithNATSLogger sends container lifecycle output to logger, typically a
// ContainerLogger.
func WithNATSLogger(logger tclog.Logger) NATSOption {
	return func(c *natsConfig) {
		c.logger = logger
	}
}

// NewNATSContainer starts a plain core NATS server (no JetStream) and
// waits until its health endpoint answers.
func NewNATSContainer(ctx context.Context, opts ...NATSOption) (*NATSContainer, error) {
	cfg := &natsConfig{
		image:        DefaultNATSImage,
		startTimeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{DefaultNATSPort + "/tcp", natsMonitorPort + "/tcp"},
		Cmd:          []string{"--port", DefaultNATSPort, "--http_port", natsMonitorPort},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(DefaultNATSPort+"/tcp"),
			wait.ForHTTP("/healthz").WithPort(natsMonitorPort+"/tcp"),
		).WithStartupTimeout(cfg.startTimeout),
	}

	gcr := testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	}
	if cfg.logger != nil {
		gcr.Logger = cfg.logger
	}

	container, err := testcontainers.GenericContainer(ctx, gcr)
	if err != nil {
		return nil, fmt.Errorf("create nats container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, DefaultNATSPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &NATSContainer{
		Container: container,
		URL:       fmt.Sprintf("nats://%s:%s", host, port.Port()),
	}, nil
}
