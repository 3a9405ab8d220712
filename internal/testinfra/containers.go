// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

//go:build integration

package testinfra

import (
	"context"
	"io"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
)

// SkipIfNoDocker skips the test when no Docker daemon is reachable, and in
// short mode.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping container test in short mode")
	}
	if !IsDockerAvailable() {
		t.Skip("Skipping test: Docker not available")
	}
}

// IsDockerAvailable reports whether `docker info` succeeds within five
// seconds.
func IsDockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

// ContainerLogger routes testcontainers output to t.Logf.
type ContainerLogger struct {
	t *testing.T
}

// NewContainerLogger creates a logger bound to t.
func NewContainerLogger(t *testing.T) *ContainerLogger {
	return &ContainerLogger{t: t}
}

// Printf implements the testcontainers log.Logger interface.
func (l *ContainerLogger) Printf(format string, v ...interface{}) {
	l.t.Helper()
	l.t.Logf(format, v...)
}

// WaitFor polls check every interval until it returns nil, ctx ends or
// timeout elapses. The last check error is returned on timeout.
func WaitFor(ctx context.Context, check func(context.Context) error, interval, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var last error
	for {
		if last = check(ctx); last == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			if last != nil {
				return last
			}
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// CleanupContainer terminates container, logging instead of failing.
func CleanupContainer(t *testing.T, ctx context.Context, container testcontainers.Container) {
	t.Helper()

	if container == nil {
		return
	}
	if err := container.Terminate(ctx); err != nil {
		t.Logf("Warning: failed to terminate container: %v", err)
	}
}

// DumpLogs writes the container's logs to the test log. Call it when a
// test against the container fails.
func DumpLogs(t *testing.T, ctx context.Context, container testcontainers.Container) {
	t.Helper()

	rc, err := container.Logs(ctx)
	if err != nil {
		t.Logf("container logs unavailable: %v", err)
		return
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, 64<<10))
	if err != nil {
		t.Logf("read container logs: %v", err)
		return
	}
	t.Logf("container %s logs:\n%s", shortID(container.GetContainerID()), data)
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
