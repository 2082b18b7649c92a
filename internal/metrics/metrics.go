// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package metrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/dietbasket/internal/mining"
)

var (
	// Mining Metrics
	MiningDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dietbasket_mining_duration_seconds",
			Help:    "Duration of frequent-itemset mining per strategy in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300, 600},
		},
		[]string{"strategy"},
	)

	FrequentItemsets = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dietbasket_frequent_itemsets",
			Help: "Number of frequent itemsets found by the last run of each strategy",
		},
		[]string{"strategy"},
	)

	StrategyFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dietbasket_strategy_failures_total",
			Help: "Total number of tolerated strategy failures",
		},
		[]string{"strategy", "reason"}, // reason: resource_exhausted, interrupted
	)

	// Pipeline Metrics
	Transactions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dietbasket_transactions",
			Help: "Number of transactions at each pipeline stage",
		},
		[]string{"stage"}, // stage: built, filtered
	)

	KeptItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dietbasket_kept_items",
			Help: "Number of items kept by the rare-item filter",
		},
	)

	Rules = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dietbasket_rules",
			Help: "Number of association rules at each stage",
		},
		[]string{"stage"}, // stage: generated, ranked
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dietbasket_duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dietbasket_duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation"},
	)
)

// RecordMining records one strategy run. A nil error sets the itemset gauge;
// a soft failure increments the failure counter with its reason.
func RecordMining(strategy string, duration time.Duration, itemsets int, err error) {
	MiningDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	if err == nil {
		FrequentItemsets.WithLabelValues(strategy).Set(float64(itemsets))
		return
	}
	if reason := FailureReason(err); reason != "" {
		StrategyFailures.WithLabelValues(strategy, reason).Inc()
	}
}

// FailureReason returns the label for a tolerated strategy failure, or "" for
// any other error.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, mining.ErrResourceExhausted):
		return "resource_exhausted"
	case errors.Is(err, mining.ErrInterrupted):
		return "interrupted"
	default:
		return ""
	}
}

// RecordPipeline records the filter and rule counts of a mining run.
func RecordPipeline(built, filtered, keptItems, generated, ranked int) {
	Transactions.WithLabelValues("built").Set(float64(built))
	Transactions.WithLabelValues("filtered").Set(float64(filtered))
	KeptItems.Set(float64(keptItems))
	Rules.WithLabelValues("generated").Set(float64(generated))
	Rules.WithLabelValues("ranked").Set(float64(ranked))
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// WriteTextfile writes every registered metric to path in the Prometheus text
// format, for the node-exporter textfile collector. The file is written
// atomically by the client library.
func WriteTextfile(path string) error {
	return writeTextfile(path, prometheus.DefaultGatherer)
}

func writeTextfile(path string, g prometheus.Gatherer) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
