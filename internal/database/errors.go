// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package database

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/tomtom215/classycouture/internal/logging"
	"github.com/tomtom215/classycouture/internal/metrics"
)

var (
	// ErrAlreadySubscribed is returned when an active subscription exists for the email.
	ErrAlreadySubscribed = errors.New("email already subscribed")

	// ErrOrderNotCancellable is returned when cancelling an order that is no longer pending.
	ErrOrderNotCancellable = errors.New("only pending orders can be cancelled")

	// ErrInvalidStatus is returned for an unknown order status.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrUnknownProduct is returned when an order line references a missing product.
	ErrUnknownProduct = errors.New("unknown product")

	// ErrUnknownUser is returned when an order references a missing user.
	ErrUnknownUser = errors.New("unknown user")
)

// IsConstraintViolation reports whether err is a DuckDB constraint failure,
// such as a duplicate username or subscription email.
func IsConstraintViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Constraint Error")
}

// closeQuietly closes c on error paths where the close error is not actionable.
func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

// closeWithLog closes c and logs a failure.
func closeWithLog(c io.Closer, what string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.Warn().Err(err).Str("resource", what).Msg("Failed to close resource")
	}
}

// observe records query latency. Use with defer and a named error result:
//
//	defer observe("SELECT", "products", time.Now(), &err)
func observe(operation, table string, start time.Time, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
}
