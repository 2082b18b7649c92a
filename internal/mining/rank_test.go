// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package mining

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
)

func rule(ante, cons []string, confidence, lift float64) Rule {
	return Rule{Antecedents: ante, Consequents: cons, Confidence: confidence, Lift: lift}
}

func TestFilterRank(t *testing.T) {
	t.Parallel()

	rules := []Rule{
		rule([]string{"a"}, []string{"b"}, 0.5, 1.5),
		rule([]string{"a", "b", "c"}, []string{"d"}, 0.9, 3.0), // antecedent too long
		rule([]string{"a"}, []string{"b", "c"}, 0.9, 3.0),      // consequent too long
		rule([]string{"c"}, []string{"d"}, 0.6, 1.1),           // lift too low
		rule([]string{"d"}, []string{"e"}, 0.7, 1.5),
		rule([]string{"e", "f"}, []string{"g"}, 0.4, 2.0),
		rule([]string{"g"}, []string{"h"}, 0.7, 1.5), // ties with d -> e
	}

	got, err := FilterRank(rules, RankOptions{MaxAntecedentLen: 2, ConsequentLen: 1, MinLift: 1.2})
	if err != nil {
		t.Fatalf("FilterRank() error = %v", err)
	}

	want := []string{"e, f", "d", "g", "a"}
	if len(got) != len(want) {
		t.Fatalf("got %d rules, want %d", len(got), len(want))
	}
	for i, r := range got {
		if r.AntecedentsString() != want[i] {
			t.Errorf("rule[%d] antecedent = %q, want %q", i, r.AntecedentsString(), want[i])
		}
	}

	if rules[0].AntecedentsString() != "a" || len(rules) != 7 {
		t.Error("input slice was modified")
	}
}

func TestFilterRank_Properties(t *testing.T) {
	t.Parallel()

	m := Encode(randomTransactions(8, 200, 12, 0.35))
	sets, err := NewFPGrowth(1).Mine(context.Background(), m, 0.03)
	if err != nil {
		t.Fatalf("Mine() error = %v", err)
	}
	rules, err := GenerateRules(sets, MetricConfidence, 0.1)
	if err != nil {
		t.Fatalf("GenerateRules() error = %v", err)
	}

	opts := RankOptions{MaxAntecedentLen: 2, ConsequentLen: 1, MinLift: 1.0}
	ranked, err := FilterRank(rules, opts)
	if err != nil {
		t.Fatalf("FilterRank() error = %v", err)
	}

	for i, r := range ranked {
		if len(r.Antecedents) > opts.MaxAntecedentLen {
			t.Errorf("rule %d antecedent length %d", i, len(r.Antecedents))
		}
		if len(r.Consequents) != opts.ConsequentLen {
			t.Errorf("rule %d consequent length %d", i, len(r.Consequents))
		}
		if r.Lift < opts.MinLift {
			t.Errorf("rule %d lift %v", i, r.Lift)
		}
		if i == 0 {
			continue
		}
		prev := ranked[i-1]
		if prev.Lift < r.Lift || (prev.Lift == r.Lift && prev.Confidence < r.Confidence) {
			t.Errorf("rules %d and %d out of order: (%v, %v) before (%v, %v)",
				i-1, i, prev.Lift, prev.Confidence, r.Lift, r.Confidence)
		}
	}
}

func TestFilterRank_Empty(t *testing.T) {
	t.Parallel()

	got, err := FilterRank(nil, DefaultConfig().RankOptions())
	if err != nil {
		t.Fatalf("FilterRank() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("FilterRank(nil) = %v, want empty non-nil", got)
	}
}

func TestRankOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    RankOptions
		wantErr bool
	}{
		{"defaults", DefaultConfig().RankOptions(), false},
		{"zero lift", RankOptions{MaxAntecedentLen: 1, ConsequentLen: 1}, false},
		{"zero antecedent", RankOptions{MaxAntecedentLen: 0, ConsequentLen: 1}, true},
		{"zero consequent", RankOptions{MaxAntecedentLen: 2, ConsequentLen: 0}, true},
		{"negative lift", RankOptions{MaxAntecedentLen: 2, ConsequentLen: 1, MinLift: -0.5}, true},
		{"nan lift", RankOptions{MaxAntecedentLen: 2, ConsequentLen: 1, MinLift: math.NaN()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidThreshold) {
				t.Errorf("Validate() error = %v, want ErrInvalidThreshold", err)
			}
		})
	}

	_, err := FilterRank(nil, RankOptions{})
	if !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("FilterRank() with zero options error = %v, want ErrInvalidThreshold", err)
	}
}

func TestFilterRank_ScenarioBelowMinLift(t *testing.T) {
	t.Parallel()

	rules, err := GenerateRules(scenarioItemsets(t), MetricConfidence, 0.5)
	if err != nil {
		t.Fatalf("GenerateRules() error = %v", err)
	}
	ranked, err := FilterRank(rules, DefaultConfig().RankOptions())
	if err != nil {
		t.Fatalf("FilterRank() error = %v", err)
	}
	// Every scenario rule has lift below one.
	if !reflect.DeepEqual(ranked, []Rule{}) {
		t.Errorf("ranked = %v, want none", ranked)
	}
}
