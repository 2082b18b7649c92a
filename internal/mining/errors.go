// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package mining

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidThreshold is returned when a support, confidence or lift
	// threshold is outside its valid range.
	ErrInvalidThreshold = errors.New("invalid threshold")

	// ErrResourceExhausted is returned when a strategy exceeds its candidate
	// budget or its time bound.
	ErrResourceExhausted = errors.New("mining resources exhausted")

	// ErrInterrupted is returned when a strategy is canceled externally.
	ErrInterrupted = errors.New("mining interrupted")

	// ErrMissingSupport is returned when rule generation needs the support of
	// an itemset that is absent from the frequent-itemset table.
	ErrMissingSupport = errors.New("itemset support missing from frequent table")

	// ErrUnknownMetric is returned when rule generation is asked for a metric
	// it does not compute.
	ErrUnknownMetric = errors.New("unknown rule metric")

	// ErrItemsetMismatch is returned by EquivalentItemsets when two results
	// differ.
	ErrItemsetMismatch = errors.New("frequent itemsets differ")
)

// IsSoftFailure reports whether err is a tolerated strategy failure
// (resource exhaustion or manual interruption).
func IsSoftFailure(err error) bool {
	return errors.Is(err, ErrResourceExhausted) || errors.Is(err, ErrInterrupted)
}

// contextError maps a context error onto the strategy error kinds.
// A deadline is a time bound, so it counts as resource exhaustion.
func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: time bound exceeded: %w", ErrResourceExhausted, err)
	}
	return fmt.Errorf("%w: %w", ErrInterrupted, err)
}

func invalidThreshold(name string, value float64, bounds string) error {
	return fmt.Errorf("%w: %s must be %s, got %g", ErrInvalidThreshold, name, bounds, value)
}
