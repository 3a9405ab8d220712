// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
)

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(NewTestLogger(&buf)))

	logger.With("service", "hub").WithGroup("restart").Warn("service restarted", "attempt", 2)

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"service":"hub"`, `"restart.attempt":2`, `"message":"service restarted"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestSlogHandlerLevelMapping(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want string
	}{
		{slog.LevelDebug, "debug"},
		{slog.LevelInfo, "info"},
		{slog.LevelWarn, "warn"},
		{slog.LevelError, "error"},
	}
	for _, tt := range tests {
		if got := toZerologLevel(tt.in).String(); got != tt.want {
			t.Errorf("toZerologLevel(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestWatermillLogger(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewWatermillLoggerWith(NewTestLogger(&buf))

	child := adapter.With(watermill.LogFields{"topic": "product_updates"})
	child.Error("publish failed", errors.New("no responders"), watermill.LogFields{"uuid": "abc"})

	out := buf.String()
	for _, want := range []string{`"topic":"product_updates"`, `"uuid":"abc"`, `"error":"no responders"`, `"level":"error"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}
