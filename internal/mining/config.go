// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package mining

import (
	"fmt"
)

// Config holds the thresholds for one mining run.
// It is passed explicitly to every stage; there is no package-level state.
type Config struct {
	// MinSupport is the minimum itemset support, in (0, 1].
	// Default: 0.03.
	MinSupport float64 `json:"min_support"`

	// MinConfidence is the minimum rule confidence, in [0, 1].
	// Default: 0.40.
	MinConfidence float64 `json:"min_confidence"`

	// MinLift is the minimum lift of a ranked rule, >= 0.
	// Default: 1.20.
	MinLift float64 `json:"min_lift"`

	// MaxAntecedentLen is the largest antecedent kept by FilterRank.
	// Default: 2.
	MaxAntecedentLen int `json:"max_antecedent_len"`

	// ConsequentLen is the exact consequent size kept by FilterRank.
	// Default: 1.
	ConsequentLen int `json:"consequent_len"`

	// RareItemSupportThreshold is the support below which items are dropped
	// before encoding, in [0, 1].
	// Default: 0.05.
	RareItemSupportThreshold float64 `json:"rare_item_support_threshold"`

	// Workers is the FP-Growth parallelism. Values below 2 mine sequentially.
	// Default: 1.
	Workers int `json:"workers"`
}

// DefaultConfig returns the default mining thresholds.
func DefaultConfig() Config {
	return Config{
		MinSupport:               0.03,
		MinConfidence:            0.40,
		MinLift:                  1.20,
		MaxAntecedentLen:         2,
		ConsequentLen:            1,
		RareItemSupportThreshold: 0.05,
		Workers:                  1,
	}
}

// Validate checks every threshold. Errors wrap ErrInvalidThreshold.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (c Config) Validate() error {
	if err := validateSupport(c.MinSupport); err != nil {
		return err
	}
	if err := validateUnit("min_confidence", c.MinConfidence); err != nil {
		return err
	}
	if err := validateUnit("rare_item_support_threshold", c.RareItemSupportThreshold); err != nil {
		return err
	}
	return c.RankOptions().Validate()
}

// RankOptions returns the FilterRank options derived from the config.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (c Config) RankOptions() RankOptions {
	return RankOptions{
		MaxAntecedentLen: c.MaxAntecedentLen,
		ConsequentLen:    c.ConsequentLen,
		MinLift:          c.MinLift,
	}
}

// validateSupport checks a mining support threshold. Zero is rejected
// because it would make every combination of the vocabulary frequent.
func validateSupport(minSupport float64) error {
	if !(minSupport > 0 && minSupport <= 1) {
		return invalidThreshold("min_support", minSupport, "in (0, 1]")
	}
	return nil
}

// validateUnit checks that a fraction lies in [0, 1]. NaN is rejected.
func validateUnit(name string, v float64) error {
	if !(v >= 0 && v <= 1) {
		return invalidThreshold(name, v, "in [0, 1]")
	}
	return nil
}

// String returns a compact representation for logs.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (c Config) String() string {
	return fmt.Sprintf("support=%.3f confidence=%.3f lift=%.3f antecedent<=%d consequent=%d rare=%.3f",
		c.MinSupport, c.MinConfidence, c.MinLift, c.MaxAntecedentLen, c.ConsequentLen, c.RareItemSupportThreshold)
}
