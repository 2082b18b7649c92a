// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package mining

import (
	"fmt"
	"sort"
)

// RankOptions restricts and orders generated rules.
type RankOptions struct {
	MaxAntecedentLen int
	ConsequentLen    int
	MinLift          float64
}

// Validate checks the options. Errors wrap ErrInvalidThreshold.
func (o RankOptions) Validate() error {
	if o.MaxAntecedentLen < 1 {
		return fmt.Errorf("%w: max_antecedent_len must be >= 1, got %d", ErrInvalidThreshold, o.MaxAntecedentLen)
	}
	if o.ConsequentLen < 1 {
		return fmt.Errorf("%w: consequent_len must be >= 1, got %d", ErrInvalidThreshold, o.ConsequentLen)
	}
	if !(o.MinLift >= 0) {
		return invalidThreshold("min_lift", o.MinLift, ">= 0")
	}
	return nil
}

// FilterRank keeps rules with at most MaxAntecedentLen antecedent items,
// exactly ConsequentLen consequent items and lift >= MinLift, sorted by lift
// and then confidence, both descending. Ties keep generator order.
// The input slice is not modified.
func FilterRank(rules []Rule, opts RankOptions) ([]Rule, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if len(r.Antecedents) <= opts.MaxAntecedentLen &&
			len(r.Consequents) == opts.ConsequentLen &&
			r.Lift >= opts.MinLift {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Lift != out[j].Lift {
			return out[i].Lift > out[j].Lift
		}
		return out[i].Confidence > out[j].Confidence
	})
	return out, nil
}
