// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package survey

import (
	"reflect"
	"testing"
)

func TestNormalizeItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"  Wheat Flour ", "wheat flour"},
		{"RICE", "rice"},
		{"\tmilk\n", "milk"},
		{"   ", ""},
		// Decomposed e + combining acute composes to a single rune.
		{"Cafe\u0301", "caf\u00e9"},
		{"ÎNGHEȚATĂ", "înghețată"},
	}

	for _, tt := range tests {
		if got := NormalizeItem(tt.in); got != tt.want {
			t.Errorf("NormalizeItem(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildTransactions(t *testing.T) {
	t.Parallel()

	records := []Record{
		{SubjectID: "2", SurveyDay: "1", Ingredient: "Rice", Country: "RO"},
		{SubjectID: "1", SurveyDay: "1", Ingredient: "Milk", Country: "RO"},
		{SubjectID: "1", SurveyDay: "1", Ingredient: " bread", Country: "RO"},
		{SubjectID: "1", SurveyDay: "1", Ingredient: "milk ", Country: "RO"},
		{SubjectID: "1", SurveyDay: "2", Ingredient: "egg", Country: "RO"},
		{SubjectID: "1", SurveyDay: "1", Ingredient: "fish", Country: "LAO"},
		{SubjectID: "3", SurveyDay: "1", Ingredient: "  ", Country: "RO"},
	}

	t.Run("subject and day", func(t *testing.T) {
		t.Parallel()
		got := BuildTransactions(records, BuildOptions{})
		want := []Transaction{
			{Key: TransactionKey{SubjectID: "1", SurveyDay: "1"}, Items: []string{"bread", "fish", "milk"}, Length: 3},
			{Key: TransactionKey{SubjectID: "1", SurveyDay: "2"}, Items: []string{"egg"}, Length: 1},
			{Key: TransactionKey{SubjectID: "2", SurveyDay: "1"}, Items: []string{"rice"}, Length: 1},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("BuildTransactions() = %+v, want %+v", got, want)
		}
	})

	t.Run("with country", func(t *testing.T) {
		t.Parallel()
		got := BuildTransactions(records, BuildOptions{GroupByCountry: true})
		want := []Transaction{
			{Key: TransactionKey{Country: "LAO", SubjectID: "1", SurveyDay: "1"}, Items: []string{"fish"}, Length: 1},
			{Key: TransactionKey{Country: "RO", SubjectID: "1", SurveyDay: "1"}, Items: []string{"bread", "milk"}, Length: 2},
			{Key: TransactionKey{Country: "RO", SubjectID: "1", SurveyDay: "2"}, Items: []string{"egg"}, Length: 1},
			{Key: TransactionKey{Country: "RO", SubjectID: "2", SurveyDay: "1"}, Items: []string{"rice"}, Length: 1},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("BuildTransactions() = %+v, want %+v", got, want)
		}

		stats := Summarize(got)
		wantStats := Stats{Transactions: 4, Subjects: 3, Countries: 2, UniqueIngredients: 5}
		if stats != wantStats {
			t.Errorf("Summarize() = %+v, want %+v", stats, wantStats)
		}
	})

	t.Run("blank ingredients only", func(t *testing.T) {
		t.Parallel()
		got := BuildTransactions([]Record{
			{SubjectID: "9", SurveyDay: "1", Ingredient: "", Country: "RO"},
			{SubjectID: "9", SurveyDay: "1", Ingredient: " \t ", Country: "RO"},
		}, BuildOptions{})
		if len(got) != 0 {
			t.Errorf("BuildTransactions() = %+v, want no transactions", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		got := BuildTransactions(nil, BuildOptions{})
		if got == nil || len(got) != 0 {
			t.Errorf("BuildTransactions(nil) = %v, want empty non-nil", got)
		}
	})
}

func TestItemListsAndLengths(t *testing.T) {
	t.Parallel()

	tx := []Transaction{
		{Items: []string{"a", "b"}, Length: 2},
		{Items: []string{"c"}, Length: 1},
	}
	if got, want := ItemLists(tx), [][]string{{"a", "b"}, {"c"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("ItemLists() = %v, want %v", got, want)
	}
	if got, want := Lengths(tx), []float64{2, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("Lengths() = %v, want %v", got, want)
	}
}

func TestItemFrequencies(t *testing.T) {
	t.Parallel()

	tx := []Transaction{
		{Items: []string{"bread", "milk"}},
		{Items: []string{"milk", "rice"}},
		{Items: []string{"bread", "milk"}},
		{Items: []string{"egg"}},
	}
	want := []ItemCount{
		{Item: "milk", Count: 3},
		{Item: "bread", Count: 2},
		{Item: "egg", Count: 1},
		{Item: "rice", Count: 1},
	}
	if got := ItemFrequencies(tx); !reflect.DeepEqual(got, want) {
		t.Errorf("ItemFrequencies() = %v, want %v", got, want)
	}
}
