// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

//go:build integration && nats

package eventprocessor

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/classycouture/internal/testinfra"
)

func TestRelayOverExternalNATS(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	nc, err := testinfra.NewNATSContainer(ctx, testinfra.WithNATSLogger(testinfra.NewContainerLogger(t)))
	if err != nil {
		t.Fatalf("start NATS container: %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, nc.Container)

	relayOverNATS(t, nc.URL)
}
