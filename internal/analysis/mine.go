// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/dietbasket/internal/database"
	"github.com/tomtom215/dietbasket/internal/metrics"
	"github.com/tomtom215/dietbasket/internal/mining"
	"github.com/tomtom215/dietbasket/internal/survey"
)

// MineResult is the outcome of the FP-Growth pipeline.
type MineResult struct {
	Cohort               string        `json:"cohort"`
	Config               mining.Config `json:"config"`
	Transactions         int           `json:"transactions"`
	Stats                survey.Stats  `json:"stats"`
	FilteredTransactions int           `json:"filtered_transactions"`
	KeptItems            int           `json:"kept_items"`
	Itemsets             int           `json:"frequent_itemsets"`
	RulesGenerated       int           `json:"rules_generated"`
	RulesFinal           int           `json:"rules_final"`
	Elapsed              time.Duration `json:"-"`
	ElapsedSeconds       float64       `json:"fpgrowth_seconds"`
	Outputs              Outputs       `json:"outputs"`

	// Figure inputs.
	FrequentItemsets   []mining.Itemset   `json:"-"`
	Rules              []mining.Rule      `json:"-"`
	TransactionLengths []float64          `json:"-"`
	TopIngredients     []survey.ItemCount `json:"-"`
}

// Mine runs rare-item filtering, FP-Growth, rule generation and ranking, and
// writes the itemset and rule tables. A combined run also writes its
// transactions table; a national run leaves transactions_eda.csv to EDA.
func (r *Runner) Mine(ctx context.Context) (*MineResult, error) {
	cfg := r.opts.Mining
	log := r.log()
	log.Info().Str("config", cfg.String()).Msg("Mining started")

	transactions, err := r.loadTransactions(ctx, r.loader.GroupByCountry())
	if err != nil {
		return nil, err
	}
	outputs := r.outputs
	if r.opts.Combined {
		if err := r.saveTransactions(ctx, transactions); err != nil {
			return nil, fmt.Errorf("save transactions: %w", err)
		}
	} else {
		outputs.Transactions = ""
	}

	b, err := r.prepare(transactions, cfg.RareItemSupportThreshold)
	if err != nil {
		return nil, err
	}

	fp := mining.NewFPGrowth(cfg.Workers)
	itemsets, fpResult, err := r.runStrategy(ctx, fp, b.matrix)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fp.Name(), err)
	}
	log.Info().
		Str("strategy", fp.Name()).
		Float64("seconds", fpResult.ElapsedSeconds).
		Int("itemsets", len(itemsets)).
		Msg("Frequent itemsets mined")

	generated, err := mining.GenerateRules(itemsets, mining.MetricConfidence, cfg.MinConfidence)
	if err != nil {
		return nil, fmt.Errorf("generate rules: %w", err)
	}
	ranked, err := mining.FilterRank(generated, cfg.RankOptions())
	if err != nil {
		return nil, fmt.Errorf("rank rules: %w", err)
	}
	log.Info().
		Int("rules_generated", len(generated)).
		Int("rules_final", len(ranked)).
		Msg("Rules ranked")

	if err := r.saveResults(ctx, itemsets, ranked); err != nil {
		return nil, err
	}

	metrics.RecordPipeline(len(transactions), len(b.filtered), len(b.keptItems), len(generated), len(ranked))

	result := &MineResult{
		Cohort:               r.loader.Name(),
		Config:               cfg,
		Transactions:         len(transactions),
		Stats:                survey.Summarize(transactions),
		FilteredTransactions: len(b.filtered),
		KeptItems:            len(b.keptItems),
		Itemsets:             len(itemsets),
		RulesGenerated:       len(generated),
		RulesFinal:           len(ranked),
		Elapsed:              fpResult.Elapsed,
		ElapsedSeconds:       fpResult.ElapsedSeconds,
		Outputs:              outputs,
		FrequentItemsets:     itemsets,
		Rules:                ranked,
		TransactionLengths:   survey.Lengths(transactions),
		TopIngredients:       topIngredients(b.filtered, r.opts.TopIngredients),
	}

	log.Info().
		Int("subjects", result.Stats.Subjects).
		Int("unique_ingredients", result.Stats.UniqueIngredients).
		Int("rules_final", result.RulesFinal).
		Str("rules", r.outputs.Rules).
		Msg("Mining complete")

	return result, nil
}

// saveResults stores and exports the itemset and rule tables.
func (r *Runner) saveResults(ctx context.Context, itemsets []mining.Itemset, rules []mining.Rule) error {
	if err := r.store.ReplaceItemsets(ctx, itemsets); err != nil {
		return fmt.Errorf("save itemsets: %w", err)
	}
	if err := r.store.ReplaceRules(ctx, rules); err != nil {
		return fmt.Errorf("save rules: %w", err)
	}
	if err := r.store.ExportCSV(ctx, database.TableFrequentItemsets, r.outputs.Itemsets); err != nil {
		return err
	}
	return r.store.ExportCSV(ctx, database.TableRules, r.outputs.Rules)
}

// timed runs fn and returns its wall-clock duration with its results.
func timed[T any](fn func() (T, error)) (time.Duration, T, error) {
	start := time.Now()
	v, err := fn()
	return time.Since(start), v, err
}
