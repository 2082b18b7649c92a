// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

// Package analysis runs the market-basket pipeline over one cohort or over
// all cohorts combined.
//
// # Commands
//
// The Runner exposes the three analyses of a study:
//
//   - EDA: transaction counts, transaction-length statistics, top ingredients
//   - Mine: rare-item filter, FP-Growth, rule generation and ranking
//   - Compare: FP-Growth against Apriori on the same matrix, with timing
//
// National and combined runs share one pipeline. They differ only in the
// CohortLoader (one cohort, or every cohort tagged with its country) and in
// the output file names.
//
// # Usage
//
//	runner, err := analysis.NewRunner(loader, store, opts, logger)
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Mine(ctx)
//
// # Dependencies
//
// The package talks to storage only through CohortLoader and ResultStore,
// which the database package implements.
package analysis
