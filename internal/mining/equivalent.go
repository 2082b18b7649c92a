// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package mining

import (
	"fmt"
	"math"
	"sort"
)

// SupportTolerance is the largest support difference treated as equal when
// comparing strategy outputs.
const SupportTolerance = 1e-9

// EquivalentItemsets reports whether a and b hold the same itemsets with
// supports within tol. Itemsets are compared as sets, so neither the order of
// the slices nor the order of items matters. The returned error wraps
// ErrItemsetMismatch and names the first difference found.
func EquivalentItemsets(a, b []Itemset, tol float64) error {
	left := supportTable(a)
	right := supportTable(b)

	if len(left) != len(right) {
		return fmt.Errorf("%w: %d itemsets vs %d", ErrItemsetMismatch, len(left), len(right))
	}
	for key, s := range left {
		other, ok := right[key]
		if !ok {
			return fmt.Errorf("%w: {%s} missing from second result", ErrItemsetMismatch, displayKey(key))
		}
		if math.Abs(s-other) > tol {
			return fmt.Errorf("%w: {%s} support %g vs %g", ErrItemsetMismatch, displayKey(key), s, other)
		}
	}
	return nil
}

func supportTable(sets []Itemset) map[string]float64 {
	table := make(map[string]float64, len(sets))
	for _, s := range sets {
		table[canonicalKey(s.Items)] = s.Support
	}
	return table
}

// canonicalKey sorts a copy of items before building the key.
func canonicalKey(items []string) string {
	sorted := make([]string, len(items))
	copy(sorted, items)
	sort.Strings(sorted)
	return itemKey(sorted)
}

func displayKey(key string) string {
	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		if key[i] == keySep[0] {
			out = append(out, DisplaySep...)
			continue
		}
		out = append(out, key[i])
	}
	return string(out)
}
