// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

// Package testinfra provides container helpers for integration tests.
//
// It uses testcontainers-go to run a real NATS server so the product update
// transport can be exercised end to end across two independent
// connections, the way two storefront instances would use it:
//
//	func TestRelayOverNATS(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    nc, err := testinfra.NewNATSContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, nc.Container)
//
//	    cfg := eventprocessor.DefaultNATSConfig()
//	    cfg.URL = nc.URL
//	    // build publisher and subscriber from cfg ...
//	}
//
// Everything here is behind the integration build tag. Tests skip
// gracefully when Docker is unavailable. The first run downloads the
// image; later runs use the local cache.
package testinfra
