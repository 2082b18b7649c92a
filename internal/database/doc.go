// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

// Package database is the DuckDB layer of Dietbasket.
//
// # Overview
//
// DuckDB reads the survey CSV files directly (read_csv_auto), joins the
// consumption and subject files of a cohort on the subject column, and holds
// the result tables of a run: transactions, frequent itemsets and rules.
// Result tables are written to CSV with COPY ... TO.
//
// # Files
//
//   - database.go: connection lifecycle (New, Close, Checkpoint)
//   - schema.go: result table creation
//   - loader.go: cohort CSV loading and the CohortLoader used by the pipeline
//   - results.go: result table replacement, statistics and CSV export
//   - errors.go: sentinel errors and close helpers
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	loader := database.NewCohortLoader(db, cohorts, cfg.Data.Columns, combined)
//	records, err := loader.Load(ctx)
//
// # Thread Safety
//
// DB is safe for concurrent use; it wraps a database/sql pool. Result table
// replacement runs in a single transaction per table.
package database
