// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package mining

import (
	"sort"
)

// FilterRareItems removes items whose transaction count is below
// floor(supportThreshold * len(transactions)) and drops every transaction
// left with fewer than two items.
//
// Retained transactions are returned as sorted, duplicate-free slices in
// input order. keptItems is sorted and includes every item that met the
// threshold, even if all transactions containing it were later dropped.
func FilterRareItems(transactions [][]string, supportThreshold float64) (filtered [][]string, keptItems []string, err error) {
	if err := validateUnit("rare_item_support_threshold", supportThreshold); err != nil {
		return nil, nil, err
	}

	n := len(transactions)
	minCount := int(supportThreshold * float64(n))

	// One increment per distinct item per transaction
	counts := make(map[string]int)
	for _, t := range transactions {
		for _, item := range distinct(t) {
			counts[item]++
		}
	}

	kept := make(map[string]struct{}, len(counts))
	keptItems = make([]string, 0, len(counts))
	for item, c := range counts {
		if c >= minCount {
			kept[item] = struct{}{}
			keptItems = append(keptItems, item)
		}
	}
	sort.Strings(keptItems)

	filtered = make([][]string, 0, n)
	for _, t := range transactions {
		inter := make([]string, 0, len(t))
		for _, item := range distinct(t) {
			if _, ok := kept[item]; ok {
				inter = append(inter, item)
			}
		}
		if len(inter) > 1 {
			sort.Strings(inter)
			filtered = append(filtered, inter)
		}
	}

	return filtered, keptItems, nil
}

// distinct returns the unique items of t, preserving first occurrence.
func distinct(t []string) []string {
	if len(t) < 2 {
		return t
	}
	seen := make(map[string]struct{}, len(t))
	out := make([]string, 0, len(t))
	for _, item := range t {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
