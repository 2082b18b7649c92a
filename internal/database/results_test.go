// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package database

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/dietbasket/internal/mining"
	"github.com/tomtom215/dietbasket/internal/survey"
)

func testTransactions() []survey.Transaction {
	records := []survey.Record{
		{SubjectID: "1", SurveyDay: "1", Ingredient: "milk", Country: "RO"},
		{SubjectID: "1", SurveyDay: "1", Ingredient: "bread", Country: "RO"},
		{SubjectID: "1", SurveyDay: "2", Ingredient: "milk", Country: "RO"},
		{SubjectID: "1", SurveyDay: "1", Ingredient: "rice", Country: "LAO"},
		{SubjectID: "2", SurveyDay: "1", Ingredient: "rice", Country: "LAO"},
		{SubjectID: "2", SurveyDay: "1", Ingredient: "fish sauce", Country: "LAO"},
	}
	return survey.BuildTransactions(records, survey.BuildOptions{GroupByCountry: true})
}

func testRules() []mining.Rule {
	return []mining.Rule{
		{
			Antecedents: []string{"a", "b"}, Consequents: []string{"c"},
			AntecedentSupport: 0.6, ConsequentSupport: 0.8, Support: 0.4,
			Confidence: 0.667, Lift: 0.833, Leverage: -0.08, Conviction: 0.6,
		},
		{
			Antecedents: []string{"c"}, Consequents: []string{"a"},
			AntecedentSupport: 0.8, ConsequentSupport: 0.8, Support: 0.8,
			Confidence: 1, Lift: 1.25, Leverage: 0.16, Conviction: math.Inf(1),
		},
	}
}

func TestReplaceTransactions_Stats(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	transactions := testTransactions()

	// Replace twice: the second call must not append.
	for i := 0; i < 2; i++ {
		if err := db.ReplaceTransactions(ctx, transactions); err != nil {
			t.Fatalf("ReplaceTransactions() error = %v", err)
		}
	}

	n, err := db.count(ctx, TableTransactions)
	if err != nil {
		t.Fatalf("count() error = %v", err)
	}
	if n != len(transactions) {
		t.Errorf("count() = %d, want %d", n, len(transactions))
	}

	got, err := db.TransactionStats(ctx)
	if err != nil {
		t.Fatalf("TransactionStats() error = %v", err)
	}
	want := survey.Summarize(transactions)
	if got != want {
		t.Errorf("TransactionStats() = %+v, want %+v", got, want)
	}
}

func TestTransactionStats_Empty(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.TransactionStats(context.Background())
	if err != nil {
		t.Fatalf("TransactionStats() error = %v", err)
	}
	if got != (survey.Stats{}) {
		t.Errorf("TransactionStats() = %+v, want zero", got)
	}
}

func TestReplaceItemsets_Export(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	itemsets := []mining.Itemset{
		{Items: []string{"a"}, Support: 0.8},
		{Items: []string{"a", "b"}, Support: 0.6},
		{Items: []string{"b"}, Support: 0.6},
	}
	if err := db.ReplaceItemsets(ctx, itemsets); err != nil {
		t.Fatalf("ReplaceItemsets() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "out", "fp_frequent_itemsets.csv")
	if err := db.ExportCSV(ctx, TableFrequentItemsets, path); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	lines := readLines(t, path)
	want := []string{
		"support,itemsets",
		"0.8,a",
		"0.6,b",
		`0.6,"a, b"`,
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("exported lines = %q, want %q", lines, want)
	}
}

func TestReplaceRules_Export(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.ReplaceRules(ctx, testRules()); err != nil {
		t.Fatalf("ReplaceRules() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "fp_rules.csv")
	if err := db.ExportCSV(ctx, TableRules, path); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3: %q", len(lines), lines)
	}
	wantHeader := "antecedents,consequents,antecedent support,consequent support,support,confidence,lift,leverage,conviction"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}
	if !strings.HasPrefix(lines[1], `"a, b",c,`) {
		t.Errorf("first rule = %q, want prefix %q", lines[1], `"a, b",c,`)
	}
	if !strings.HasPrefix(lines[2], "c,a,") {
		t.Errorf("second rule = %q, want prefix %q", lines[2], "c,a,")
	}
}

func TestExportCSV_Transactions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.ReplaceTransactions(ctx, testTransactions()); err != nil {
		t.Fatalf("ReplaceTransactions() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "transactions_combined.csv")
	if err := db.ExportCSV(ctx, TableTransactions, path); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	lines := readLines(t, path)
	want := []string{
		"country,subject_id,survey_day,items,length",
		"LAO,1,1,rice,1",
		`LAO,2,1,"fish sauce, rice",2`,
		`RO,1,1,"bread, milk",2`,
		"RO,1,2,milk,1",
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("exported lines = %q, want %q", lines, want)
	}
}

func TestExportCSV_UnknownTable(t *testing.T) {
	db := setupTestDB(t)

	err := db.ExportCSV(context.Background(), Table("missing"), filepath.Join(t.TempDir(), "x.csv"))
	if !errors.Is(err, ErrUnknownTable) {
		t.Errorf("ExportCSV() error = %v, want %v", err, ErrUnknownTable)
	}
}

func TestJoinList(t *testing.T) {
	t.Parallel()

	if got := joinList([]string{"a", "b c"}); got != "a\x1fb c" {
		t.Errorf("joinList() = %q, want %q", got, "a\x1fb c")
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
