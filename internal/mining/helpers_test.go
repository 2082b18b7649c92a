// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package mining

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"
)

// scenarioTransactions is the five-basket example used across the tests.
func scenarioTransactions() [][]string {
	return [][]string{
		{"a", "b", "c"},
		{"a", "b"},
		{"a", "c"},
		{"b", "c"},
		{"a", "b", "c"},
	}
}

// randomTransactions returns a reproducible transaction set over items
// item00..itemNN where each item appears with probability p.
func randomTransactions(seed int64, rows, items int, p float64) [][]string {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic test data
	out := make([][]string, 0, rows)
	for i := 0; i < rows; i++ {
		var t []string
		for j := 0; j < items; j++ {
			if rng.Float64() < p {
				t = append(t, fmt.Sprintf("item%02d", j))
			}
		}
		out = append(out, t)
	}
	return out
}

// bruteForce enumerates every subset of the matrix columns and returns those
// meeting minSupport.
func bruteForce(m *Matrix, minSupport float64) []Itemset {
	n := m.NumRows()
	cols := m.NumCols()
	var out []Itemset
	for mask := 1; mask < 1<<cols; mask++ {
		var picked []int
		for j := 0; j < cols; j++ {
			if mask&(1<<j) != 0 {
				picked = append(picked, j)
			}
		}
		count := 0
		for _, row := range m.Rows {
			all := true
			for _, j := range picked {
				if !row[j] {
					all = false
					break
				}
			}
			if all {
				count++
			}
		}
		if meetsSupport(count, n, minSupport) {
			out = append(out, newItemset(m.Columns, picked, count, n))
		}
	}
	sortItemsets(out)
	return out
}

func supportsByKey(sets []Itemset) map[string]float64 {
	out := make(map[string]float64, len(sets))
	for _, s := range sets {
		out[strings.Join(s.Items, ",")] = s.Support
	}
	return out
}

func assertSorted(t *testing.T, items []string) {
	t.Helper()
	if !sort.StringsAreSorted(items) {
		t.Errorf("items %v are not sorted", items)
	}
}
