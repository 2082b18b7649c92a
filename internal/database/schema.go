// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package database

import (
	"context"
	"fmt"
)

// Table names a result table.
type Table string

const (
	// TableTransactions holds one row per (country, subject, survey day).
	TableTransactions Table = "transactions"

	// TableFrequentItemsets holds the FP-Growth itemsets of the last run.
	TableFrequentItemsets Table = "frequent_itemsets"

	// TableRules holds the ranked rules of the last run.
	TableRules Table = "rules"
)

// tables lists the result tables in creation order.
var tables = []Table{TableTransactions, TableFrequentItemsets, TableRules}

// valid reports whether t is part of the result schema.
func (t Table) valid() bool {
	for _, known := range tables {
		if t == known {
			return true
		}
	}
	return false
}

// createTables creates the result tables if they do not exist.
func (db *DB) createTables() error {
	ctx, cancel := ensureContext(context.Background())
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

// tableCreationQueries returns the table creation SQL statements
func tableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			country VARCHAR NOT NULL,
			subject_id VARCHAR NOT NULL,
			survey_day VARCHAR NOT NULL,
			items VARCHAR[] NOT NULL,
			item_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS frequent_itemsets (
			itemset VARCHAR[] NOT NULL,
			support DOUBLE NOT NULL,
			item_count INTEGER NOT NULL
		)`,
		// Column names follow the rule table layout researchers already use.
		`CREATE TABLE IF NOT EXISTS rules (
			rule_rank INTEGER NOT NULL,
			antecedents VARCHAR[] NOT NULL,
			consequents VARCHAR[] NOT NULL,
			antecedent_support DOUBLE NOT NULL,
			consequent_support DOUBLE NOT NULL,
			support DOUBLE NOT NULL,
			confidence DOUBLE NOT NULL,
			lift DOUBLE NOT NULL,
			leverage DOUBLE NOT NULL,
			conviction DOUBLE NOT NULL
		)`,
	}
}
