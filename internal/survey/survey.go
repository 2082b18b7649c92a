// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

// Package survey turns dietary-survey consumption records into transactions:
// the set of distinct ingredients a subject consumed on one survey day.
package survey

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Record is one consumption row joined with its subject's country.
// Loaders exclude rows with a missing subject or ingredient.
type Record struct {
	SubjectID  string `json:"subject_id"`
	SurveyDay  string `json:"survey_day"`
	Ingredient string `json:"ingredient"`
	Country    string `json:"country,omitempty"`
}

// TransactionKey identifies a transaction. Country is empty unless the
// transactions were built with GroupByCountry.
type TransactionKey struct {
	Country   string `json:"country,omitempty"`
	SubjectID string `json:"subject_id"`
	SurveyDay string `json:"survey_day"`
}

// Less orders keys by country, subject and survey day.
func (k TransactionKey) Less(o TransactionKey) bool {
	if k.Country != o.Country {
		return k.Country < o.Country
	}
	if k.SubjectID != o.SubjectID {
		return k.SubjectID < o.SubjectID
	}
	return k.SurveyDay < o.SurveyDay
}

// Transaction is the set of normalized ingredients observed for one key.
// Items are sorted and unique; Length is len(Items).
type Transaction struct {
	Key    TransactionKey `json:"key"`
	Items  []string       `json:"items"`
	Length int            `json:"length"`
}

// BuildOptions controls the grouping key.
type BuildOptions struct {
	// GroupByCountry adds the record country to the key, as the combined
	// cross-country cohort does.
	GroupByCountry bool
}

// BuildTransactions groups records into one transaction per key, ordered by
// key. Ingredients are normalized with NormalizeItem; records whose
// ingredient normalizes to the empty string are skipped, so a blank
// ingredient counts as missing rather than as an item. Transactions of a
// single item are kept.
func BuildTransactions(records []Record, opts BuildOptions) []Transaction {
	groups := make(map[TransactionKey]map[string]struct{})
	for _, r := range records {
		item := NormalizeItem(r.Ingredient)
		if item == "" {
			continue
		}
		key := TransactionKey{SubjectID: r.SubjectID, SurveyDay: r.SurveyDay}
		if opts.GroupByCountry {
			key.Country = r.Country
		}
		set, ok := groups[key]
		if !ok {
			set = make(map[string]struct{})
			groups[key] = set
		}
		set[item] = struct{}{}
	}

	out := make([]Transaction, 0, len(groups))
	for key, set := range groups {
		items := make([]string, 0, len(set))
		for item := range set {
			items = append(items, item)
		}
		sort.Strings(items)
		out = append(out, Transaction{Key: key, Items: items, Length: len(items)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Less(out[j].Key) })
	return out
}

// ItemLists returns the item slices of transactions, in order.
func ItemLists(transactions []Transaction) [][]string {
	out := make([][]string, len(transactions))
	for i, t := range transactions {
		out[i] = t.Items
	}
	return out
}

// Lengths returns the Length of every transaction, as float64 for statistics.
func Lengths(transactions []Transaction) []float64 {
	out := make([]float64, len(transactions))
	for i, t := range transactions {
		out[i] = float64(t.Length)
	}
	return out
}

// NormalizeItem returns the canonical form of an ingredient name: NFC
// composed, trimmed and lower-cased.
func NormalizeItem(s string) string {
	// A Caser is stateful, so one is created per call.
	return cases.Lower(language.Und).String(strings.TrimSpace(norm.NFC.String(s)))
}

// Stats summarizes a transaction set.
type Stats struct {
	Transactions      int `json:"transactions"`
	Subjects          int `json:"subjects"`
	Countries         int `json:"countries"`
	UniqueIngredients int `json:"unique_ingredients"`
}

// Summarize counts transactions, distinct subjects, distinct countries and
// distinct ingredients. Subjects are distinct per country.
func Summarize(transactions []Transaction) Stats {
	subjects := make(map[[2]string]struct{})
	countries := make(map[string]struct{})
	items := make(map[string]struct{})
	for _, t := range transactions {
		subjects[[2]string{t.Key.Country, t.Key.SubjectID}] = struct{}{}
		if t.Key.Country != "" {
			countries[t.Key.Country] = struct{}{}
		}
		for _, item := range t.Items {
			items[item] = struct{}{}
		}
	}
	return Stats{
		Transactions:      len(transactions),
		Subjects:          len(subjects),
		Countries:         len(countries),
		UniqueIngredients: len(items),
	}
}

// ItemFrequencies returns how many transactions contain each item, most
// frequent first, ties by name.
func ItemFrequencies(transactions []Transaction) []ItemCount {
	counts := make(map[string]int)
	for _, t := range transactions {
		for _, item := range t.Items {
			counts[item]++
		}
	}
	out := make([]ItemCount, 0, len(counts))
	for item, c := range counts {
		out = append(out, ItemCount{Item: item, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Item < out[j].Item
	})
	return out
}

// ItemCount is an item with its transaction count.
type ItemCount struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}
