// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package mining

import (
	"fmt"
	"math"
)

// Metric names the rule measure compared against the generation threshold.
type Metric string

// Supported rule metrics.
const (
	MetricSupport    Metric = "support"
	MetricConfidence Metric = "confidence"
	MetricLift       Metric = "lift"
	MetricLeverage   Metric = "leverage"
	MetricConviction Metric = "conviction"
)

// Rule is an association rule Antecedents -> Consequents.
// Both sides are sorted and disjoint. Support is the support of their union.
type Rule struct {
	Antecedents       []string `json:"antecedents"`
	Consequents       []string `json:"consequents"`
	AntecedentSupport float64  `json:"antecedent_support"`
	ConsequentSupport float64  `json:"consequent_support"`
	Support           float64  `json:"support"`
	Confidence        float64  `json:"confidence"`
	Lift              float64  `json:"lift"`
	Leverage          float64  `json:"leverage"`
	// Conviction is +Inf when Confidence is 1.
	Conviction float64 `json:"conviction"`
}

// AntecedentsString returns the display form of the antecedent.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (r Rule) AntecedentsString() string {
	return JoinItems(r.Antecedents)
}

// ConsequentsString returns the display form of the consequent.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (r Rule) ConsequentsString() string {
	return JoinItems(r.Consequents)
}

//nolint:gocritic // value receiver is intentional for immutable semantics
func (r Rule) value(metric Metric) float64 {
	switch metric {
	case MetricSupport:
		return r.Support
	case MetricLift:
		return r.Lift
	case MetricLeverage:
		return r.Leverage
	case MetricConviction:
		return r.Conviction
	default:
		return r.Confidence
	}
}

// validateMetric checks that metric is known and that threshold is in its
// range.
func validateMetric(metric Metric, threshold float64) error {
	switch metric {
	case MetricSupport, MetricConfidence:
		return validateUnit("min_"+string(metric), threshold)
	case MetricLift, MetricConviction:
		if !(threshold >= 0) {
			return invalidThreshold("min_"+string(metric), threshold, ">= 0")
		}
	case MetricLeverage:
		if !(threshold >= -1 && threshold <= 1) {
			return invalidThreshold("min_leverage", threshold, "in [-1, 1]")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	return nil
}

// GenerateRules derives association rules from a frequent-itemset table.
//
// For every itemset of size >= 2 and every non-empty proper subset A, the
// rule A -> (itemset \ A) is emitted when its metric value is at least
// minThreshold. All supports are looked up in frequent; an antecedent or
// consequent missing from the table yields ErrMissingSupport, which cannot
// happen for a downward-closed mining result.
//
// Rules are ordered by the itemset order of sortItemsets, then by antecedent
// size descending, then lexicographically by antecedent.
func GenerateRules(frequent []Itemset, metric Metric, minThreshold float64) ([]Rule, error) {
	if err := validateMetric(metric, minThreshold); err != nil {
		return nil, err
	}

	support := make(map[string]float64, len(frequent))
	for _, s := range frequent {
		support[s.Key()] = s.Support
	}

	sets := make([]Itemset, len(frequent))
	copy(sets, frequent)
	sortItemsets(sets)

	rules := []Rule{}
	for _, set := range sets {
		size := set.Len()
		if size < 2 {
			continue
		}
		for k := size - 1; k >= 1; k-- {
			var err error
			forEachCombination(size, k, func(idx []int) bool {
				ante, cons := splitItems(set.Items, idx)
				sA, ok := support[itemKey(ante)]
				if !ok || sA <= 0 {
					err = fmt.Errorf("%w: %s", ErrMissingSupport, JoinItems(ante))
					return false
				}
				sC, ok := support[itemKey(cons)]
				if !ok || sC <= 0 {
					err = fmt.Errorf("%w: %s", ErrMissingSupport, JoinItems(cons))
					return false
				}
				r := newRule(ante, cons, sA, sC, set.Support)
				if r.value(metric) >= minThreshold {
					rules = append(rules, r)
				}
				return true
			})
			if err != nil {
				return nil, err
			}
		}
	}
	return rules, nil
}

func newRule(ante, cons []string, sA, sC, sAC float64) Rule {
	confidence := math.Min(sAC/sA, 1)
	conviction := math.Inf(1)
	if confidence < 1 {
		conviction = (1 - sC) / (1 - confidence)
	}
	return Rule{
		Antecedents:       ante,
		Consequents:       cons,
		AntecedentSupport: sA,
		ConsequentSupport: sC,
		Support:           sAC,
		Confidence:        confidence,
		Lift:              confidence / sC,
		Leverage:          sAC - sA*sC,
		Conviction:        conviction,
	}
}

// splitItems partitions sorted items into the positions in idx and the rest.
// Both results stay sorted.
func splitItems(items []string, idx []int) (picked, rest []string) {
	picked = make([]string, 0, len(idx))
	rest = make([]string, 0, len(items)-len(idx))
	j := 0
	for i, item := range items {
		if j < len(idx) && idx[j] == i {
			picked = append(picked, item)
			j++
			continue
		}
		rest = append(rest, item)
	}
	return picked, rest
}

// forEachCombination calls fn with every k-subset of [0, n) in lexicographic
// order until fn returns false. idx is reused between calls.
func forEachCombination(n, k int, fn func(idx []int) bool) {
	if k <= 0 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !fn(idx) {
			return
		}
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
