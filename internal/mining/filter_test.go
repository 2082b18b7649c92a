// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package mining

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestFilterRareItems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		transactions [][]string
		threshold    float64
		wantFiltered [][]string
		wantKept     []string
	}{
		{
			name: "rare item excluded from vocabulary",
			transactions: [][]string{
				{"x", "b", "a"},
				{"a", "b"},
				{"c", "a"},
				{"b", "c"},
			},
			threshold:    0.5,
			wantFiltered: [][]string{{"a", "b"}, {"a", "b"}, {"a", "c"}, {"b", "c"}},
			wantKept:     []string{"a", "b", "c"},
		},
		{
			name: "singleton after intersection is dropped",
			transactions: [][]string{
				{"a", "b"},
				{"a", "b"},
				{"a", "z"},
				{"b", "y"},
			},
			threshold:    0.5,
			wantFiltered: [][]string{{"a", "b"}, {"a", "b"}},
			wantKept:     []string{"a", "b"},
		},
		{
			name: "zero min count keeps every item",
			transactions: [][]string{
				{"a", "q"},
				{"b", "c"},
				{"d"},
				{"e", "f", "g"},
			},
			threshold:    0.1,
			wantFiltered: [][]string{{"a", "q"}, {"b", "c"}, {"e", "f", "g"}},
			wantKept:     []string{"a", "b", "c", "d", "e", "f", "g", "q"},
		},
		{
			name: "duplicates counted once per transaction",
			transactions: [][]string{
				{"a", "a", "b"},
				{"b", "c"},
			},
			threshold:    1.0,
			wantFiltered: [][]string{},
			wantKept:     []string{"b"},
		},
		{
			name: "everything filtered yields empty results",
			transactions: [][]string{
				{"a", "b"},
				{"c", "d"},
				{"e", "f"},
			},
			threshold:    0.9,
			wantFiltered: [][]string{},
			wantKept:     []string{},
		},
		{
			name:         "no transactions",
			transactions: nil,
			threshold:    0.05,
			wantFiltered: [][]string{},
			wantKept:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			filtered, kept, err := FilterRareItems(tt.transactions, tt.threshold)
			if err != nil {
				t.Fatalf("FilterRareItems() error = %v", err)
			}
			if !reflect.DeepEqual(filtered, tt.wantFiltered) {
				t.Errorf("filtered = %v, want %v", filtered, tt.wantFiltered)
			}
			if !reflect.DeepEqual(kept, tt.wantKept) {
				t.Errorf("kept = %v, want %v", kept, tt.wantKept)
			}
			for _, tr := range filtered {
				if len(tr) < 2 {
					t.Errorf("retained transaction %v has fewer than two items", tr)
				}
				assertSorted(t, tr)
			}
		})
	}
}

func TestFilterRareItems_InvalidThreshold(t *testing.T) {
	t.Parallel()

	for _, threshold := range []float64{-0.1, 1.01, math.NaN()} {
		_, _, err := FilterRareItems(scenarioTransactions(), threshold)
		if !errors.Is(err, ErrInvalidThreshold) {
			t.Errorf("FilterRareItems(%v) error = %v, want ErrInvalidThreshold", threshold, err)
		}
	}
}

func TestFilterRareItems_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	in := [][]string{{"c", "a", "b"}, {"b", "a"}}
	if _, _, err := FilterRareItems(in, 0.5); err != nil {
		t.Fatalf("FilterRareItems() error = %v", err)
	}
	if !reflect.DeepEqual(in, [][]string{{"c", "a", "b"}, {"b", "a"}}) {
		t.Errorf("input modified: %v", in)
	}
}

// When the first pass drops no transaction, the transaction count and every
// surviving item count are unchanged, so a second pass is a no-op.
func TestFilterRareItems_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []struct {
		name      string
		tx        [][]string
		threshold float64
	}{
		{"scenario", scenarioTransactions(), 0.4},
		{"rare item", [][]string{{"x", "b", "a"}, {"a", "b"}, {"c", "a"}, {"b", "c"}}, 0.5},
		{"random", randomTransactions(7, 200, 12, 0.5), 0.3},
	}

	for _, in := range inputs {
		t.Run(in.name, func(t *testing.T) {
			t.Parallel()
			once, keptOnce, err := FilterRareItems(in.tx, in.threshold)
			if err != nil {
				t.Fatalf("first pass error = %v", err)
			}
			if len(once) != len(in.tx) {
				t.Skip("first pass dropped transactions; the vocabulary threshold moves")
			}
			twice, keptTwice, err := FilterRareItems(once, in.threshold)
			if err != nil {
				t.Fatalf("second pass error = %v", err)
			}
			if !reflect.DeepEqual(once, twice) {
				t.Errorf("second pass changed transactions:\n once  = %v\n twice = %v", once, twice)
			}
			if !reflect.DeepEqual(keptOnce, keptTwice) {
				t.Errorf("second pass changed kept items: %v vs %v", keptOnce, keptTwice)
			}
		})
	}
}
