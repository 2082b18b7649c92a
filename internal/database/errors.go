// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package database

import (
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/tomtom215/dietbasket/internal/logging"
)

var (
	// ErrNoCohorts is returned when a loader is built without any cohort.
	ErrNoCohorts = errors.New("no cohorts configured")

	// ErrUnknownTable is returned for a table name outside the result schema.
	ErrUnknownTable = errors.New("unknown result table")
)

// closeWithLog closes a resource and logs any error
// Use this for cleanup operations where errors should be acknowledged but not fail the operation
func closeWithLog(closer io.Closer, logger *zerolog.Logger, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		if logger != nil {
			logger.Error().Str("type", resourceType).Err(err).Msg("Failed to close resource")
		} else {
			logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
		}
	}
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
