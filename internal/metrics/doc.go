// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

// Package metrics defines the Prometheus collectors of a dietbasket run.
//
// Collectors are registered with promauto on the default registry. A batch
// run has no scrape endpoint, so the cmd writes them once at exit with
// WriteTextfile for the node-exporter textfile collector.
//
// Metric families:
//   - dietbasket_mining_duration_seconds{strategy}
//   - dietbasket_frequent_itemsets{strategy}
//   - dietbasket_strategy_failures_total{strategy,reason}
//   - dietbasket_transactions{stage}, dietbasket_kept_items, dietbasket_rules{stage}
//   - dietbasket_duckdb_query_duration_seconds{operation}
//   - dietbasket_duckdb_query_errors_total{operation}
package metrics
