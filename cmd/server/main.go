// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tomtom215/classycouture/internal/api"
	"github.com/tomtom215/classycouture/internal/config"
	"github.com/tomtom215/classycouture/internal/database"
	"github.com/tomtom215/classycouture/internal/eventprocessor"
	"github.com/tomtom215/classycouture/internal/logging"
	"github.com/tomtom215/classycouture/internal/recommend"
	"github.com/tomtom215/classycouture/internal/supervisor"
	"github.com/tomtom215/classycouture/internal/supervisor/services"
	ws "github.com/tomtom215/classycouture/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Server stopped")
}

// run wires the application and blocks until ctx is canceled.
func run(ctx context.Context, cfg *config.Config) error {
	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("database", cfg.Database.Path).
		Bool("realtime", cfg.Realtime.Enabled).
		Msg("Starting ClassyCouture")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing database")
		}
	}()

	if cfg.Database.SeedSampleData {
		seeded, err := db.SeedSampleData(ctx)
		if err != nil {
			return fmt.Errorf("seed sample data: %w", err)
		}
		logging.Info().Bool("seeded", seeded).Msg("Sample data check complete")
	}

	engine, err := recommend.NewEngine(db, recommend.FromAppConfig(&cfg.Recommend), logging.WithComponent("recommend"))
	if err != nil {
		return fmt.Errorf("create recommendation engine: %w", err)
	}

	hub := ws.NewHub(db, ws.HubConfigFromConfig(cfg))

	events, err := InitEvents(cfg)
	if err != nil {
		return fmt.Errorf("initialize event transport: %w", err)
	}
	defer events.Close()

	// A nil *Notifier must not reach the handler as a non-nil interface.
	var changeNotifier api.ChangeNotifier
	var notifier *eventprocessor.Notifier
	if events != nil {
		notifierCfg := eventprocessor.SettingsFromConfig(cfg).Notifier
		notifier, err = eventprocessor.NewNotifier(events.Publisher, notifierCfg)
		if err != nil {
			return fmt.Errorf("create change notifier: %w", err)
		}
		db.SetChangeListener(notifier)
		changeNotifier = notifier
	}

	handler := api.NewHandler(db, engine, changeNotifier, hub, cfg)
	server := newHTTPServer(cfg, api.NewRouter(handler).SetupChi())

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.Timeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if events != nil && events.Server != nil {
		tree.AddBrokerService(services.NewBrokerService(events.Server, cfg.Server.Timeout))
	}
	tree.AddMessagingService(hub)
	if events != nil {
		tree.AddMessagingService(notifier)
		tree.AddMessagingService(eventprocessor.NewRelay(events.Subscriber, events.Topic, hub))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.Timeout))

	logging.Info().
		Str("addr", server.Addr).
		Bool("admin_api", cfg.Security.AdminToken != "").
		Str("transport", transportName(cfg)).
		Msg("Supervisor tree starting")

	err = tree.Serve(ctx)

	if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop before the shutdown timeout")
		}
	}
	if notifier != nil {
		emitted, dropped := notifier.Stats()
		logging.Info().
			Int64("events_emitted", emitted).
			Int64("events_dropped", dropped).
			Str("breaker", events.BreakerState()).
			Msg("Product change notifier stopped")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newHTTPServer applies the configured timeouts. WriteTimeout stays zero
// so WebSocket connections are not cut off.
func newHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		IdleTimeout:       2 * time.Minute,
	}
}

func transportName(cfg *config.Config) string {
	if !cfg.Realtime.Enabled {
		return "disabled"
	}
	return cfg.Realtime.Transport
}
