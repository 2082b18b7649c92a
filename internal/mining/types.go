// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package mining

import (
	"context"
	"sort"
	"strings"
)

// keySep separates items in canonical itemset keys. Ingredient names never
// contain the ASCII unit separator.
const keySep = "\x1f"

// DisplaySep joins items in display strings.
const DisplaySep = ", "

// Strategy mines frequent itemsets from a boolean transaction matrix.
type Strategy interface {
	// Name returns the strategy identifier used in logs and metrics.
	Name() string

	// Mine returns every itemset whose support is at least minSupport.
	Mine(ctx context.Context, m *Matrix, minSupport float64) ([]Itemset, error)
}

// Itemset is a set of items together with its support.
// Items are always sorted lexicographically.
type Itemset struct {
	Items   []string `json:"itemset"`
	Support float64  `json:"support"`
}

// Len returns the number of items in the set.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (s Itemset) Len() int {
	return len(s.Items)
}

// Key returns the canonical key of the item set.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (s Itemset) Key() string {
	return itemKey(s.Items)
}

// String returns the comma-joined items.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (s Itemset) String() string {
	return JoinItems(s.Items)
}

// JoinItems returns a deterministic display string for a set of items.
// The input is not modified.
func JoinItems(items []string) string {
	sorted := make([]string, len(items))
	copy(sorted, items)
	sort.Strings(sorted)
	return strings.Join(sorted, DisplaySep)
}

// itemKey returns the canonical key for items that are already sorted.
func itemKey(items []string) string {
	return strings.Join(items, keySep)
}

// meetsSupport is the single support comparison shared by both strategies,
// so that their outputs agree exactly on boundary values.
func meetsSupport(count, n int, minSupport float64) bool {
	if n == 0 || count == 0 {
		return false
	}
	return float64(count)/float64(n) >= minSupport
}

// sortItemsets orders itemsets by size and then lexicographically by items.
func sortItemsets(sets []Itemset) {
	sort.Slice(sets, func(i, j int) bool {
		a, b := sets[i].Items, sets[j].Items
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
}

// newItemset converts column indices into a sorted Itemset.
func newItemset(columns []string, cols []int, count, n int) Itemset {
	items := make([]string, len(cols))
	for i, c := range cols {
		items[i] = columns[c]
	}
	sort.Strings(items)
	return Itemset{
		Items:   items,
		Support: float64(count) / float64(n),
	}
}
