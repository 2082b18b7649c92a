// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

// Package mining implements the frequent-itemset mining engine.
//
// The engine runs as a single batch pass over a fully materialized set of
// transactions:
//
//	FilterRareItems -> Encode -> Strategy.Mine -> GenerateRules -> FilterRank
//
// # Strategies
//
// Two interchangeable strategies implement the Strategy interface:
//
//   - FPGrowth: builds a prefix tree ordered by descending item frequency and
//     recursively mines conditional trees. This is the default strategy.
//     With Workers > 1 the independent top-level branches are mined
//     concurrently and merged before sorting.
//   - Apriori: breadth-first candidate generation with subset pruning and a
//     full re-count of every candidate against the transaction matrix. It is
//     kept as a baseline for timing comparisons and is bounded by a candidate
//     budget and the caller's context deadline.
//
// Both strategies return itemsets sorted by size and then lexicographically,
// so results do not depend on the order of input transactions.
//
// # Errors
//
// Threshold validation failures wrap ErrInvalidThreshold. Strategy budget
// overruns wrap ErrResourceExhausted and context cancellation wraps
// ErrInterrupted; IsSoftFailure reports whether an error is one of those two
// tolerated kinds. An empty vocabulary is not an error: every stage returns
// an empty, non-nil result.
//
// # Usage
//
//	cfg := mining.DefaultConfig()
//	filtered, kept, err := mining.FilterRareItems(transactions, cfg.RareItemSupportThreshold)
//	matrix := mining.Encode(filtered)
//
//	itemsets, err := mining.NewFPGrowth(cfg.Workers).Mine(ctx, matrix, cfg.MinSupport)
//	rules, err := mining.GenerateRules(itemsets, mining.MetricConfidence, cfg.MinConfidence)
//	ranked, err := mining.FilterRank(rules, cfg.RankOptions())
//
// # Thread Safety
//
// All functions are pure transformations over their arguments. Strategies
// hold only configuration and are safe for concurrent use.
package mining
