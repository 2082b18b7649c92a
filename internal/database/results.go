// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomtom215/dietbasket/internal/logging"
	"github.com/tomtom215/dietbasket/internal/metrics"
	"github.com/tomtom215/dietbasket/internal/mining"
	"github.com/tomtom215/dietbasket/internal/survey"
)

// listSep joins list elements for string_split. Matches chr(31) in SQL.
const listSep = "\x1f"

// ReplaceTransactions replaces the transactions table.
func (db *DB) ReplaceTransactions(ctx context.Context, transactions []survey.Transaction) error {
	query := `INSERT INTO transactions (country, subject_id, survey_day, items, item_count)
		VALUES (?, ?, ?, string_split(?, chr(31)), ?)`

	return db.replaceTable(ctx, TableTransactions, query, len(transactions), func(i int) []any {
		t := transactions[i]
		return []any{t.Key.Country, t.Key.SubjectID, t.Key.SurveyDay, joinList(t.Items), t.Length}
	})
}

// ReplaceItemsets replaces the frequent_itemsets table.
func (db *DB) ReplaceItemsets(ctx context.Context, itemsets []mining.Itemset) error {
	query := `INSERT INTO frequent_itemsets (itemset, support, item_count)
		VALUES (string_split(?, chr(31)), ?, ?)`

	return db.replaceTable(ctx, TableFrequentItemsets, query, len(itemsets), func(i int) []any {
		s := itemsets[i]
		return []any{joinList(s.Items), s.Support, s.Len()}
	})
}

// ReplaceRules replaces the rules table. Rules keep their order through
// the rule_rank column, starting at 1.
func (db *DB) ReplaceRules(ctx context.Context, rules []mining.Rule) error {
	query := `INSERT INTO rules (rule_rank, antecedents, consequents, antecedent_support, consequent_support,
			support, confidence, lift, leverage, conviction)
		VALUES (?, string_split(?, chr(31)), string_split(?, chr(31)), ?, ?, ?, ?, ?, ?, ?)`

	return db.replaceTable(ctx, TableRules, query, len(rules), func(i int) []any {
		r := rules[i]
		return []any{
			i + 1, joinList(r.Antecedents), joinList(r.Consequents),
			r.AntecedentSupport, r.ConsequentSupport,
			r.Support, r.Confidence, r.Lift, r.Leverage, r.Conviction,
		}
	})
}

// replaceTable deletes every row of table and inserts n rows in one
// transaction. args returns the statement arguments of row i.
func (db *DB) replaceTable(ctx context.Context, table Table, insert string, n int, args func(i int) []any) (err error) {
	ctx, cancel := withDefaultTimeout(ctx, loadTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("replace_"+string(table), time.Since(start), err)
	}()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Ensure transaction is finalized
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logging.Error().
					Err(rbErr).
					AnErr("original_error", err).
					Str("table", string(table)).
					Msg("Transaction rollback failed")
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM "+string(table)); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer closeWithLog(stmt, nil, "prepared statement")

	for i := 0; i < n; i++ {
		if _, err = stmt.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("failed to insert into %s (row %d): %w", table, i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}

	logging.Ctx(ctx).Debug().
		Str("table", string(table)).
		Int("rows", n).
		Dur("duration", time.Since(start)).
		Msg("Result table replaced")
	return nil
}

// count returns the number of rows in a result table.
func (db *DB) count(ctx context.Context, table Table) (int, error) {
	if !table.valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var n int
	if err := db.conn.QueryRowContext(ctx, "SELECT count(*) FROM "+string(table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

// TransactionStats computes the exploratory counts of the transactions
// table. Subjects are distinct per country, and transactions without a
// country do not count as a country.
func (db *DB) TransactionStats(ctx context.Context) (survey.Stats, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `SELECT
		(SELECT count(*) FROM transactions),
		(SELECT count(*) FROM (SELECT DISTINCT country, subject_id FROM transactions)),
		(SELECT count(DISTINCT country) FROM transactions WHERE country <> ''),
		(SELECT count(DISTINCT item) FROM (SELECT unnest(items) AS item FROM transactions))`

	start := time.Now()
	var stats survey.Stats
	err := db.conn.QueryRowContext(ctx, query).Scan(
		&stats.Transactions, &stats.Subjects, &stats.Countries, &stats.UniqueIngredients)
	metrics.RecordDBQuery("transaction_stats", time.Since(start), err)
	if err != nil {
		return survey.Stats{}, fmt.Errorf("failed to compute transaction stats: %w", err)
	}
	return stats, nil
}

// ExportCSV writes a result table to a CSV file with a header row, creating
// the parent directory. List columns are written as comma-joined strings.
func (db *DB) ExportCSV(ctx context.Context, table Table, path string) (err error) {
	selectQuery, ok := exportQueries[table]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if mkErr := os.MkdirAll(dir, 0o750); mkErr != nil {
			return fmt.Errorf("failed to create export directory %s: %w", dir, mkErr)
		}
	}

	ctx, cancel := withDefaultTimeout(ctx, loadTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("export_"+string(table), time.Since(start), err)
	}()

	// COPY does not accept a bound file name.
	query := fmt.Sprintf("COPY (%s) TO %s (HEADER, DELIMITER ',')", selectQuery, quoteLiteral(path))
	if _, err = db.conn.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to export %s to %s: %w", table, path, err)
	}

	if e := logging.Ctx(ctx).Debug(); e.Enabled() {
		rows, countErr := db.count(ctx, table)
		if countErr != nil {
			e.AnErr("count_error", countErr)
		}
		e.Str("table", string(table)).
			Str("path", path).
			Int("rows", rows).
			Msg("Result table exported")
	}
	return nil
}

// exportQueries selects the CSV layout of each result table.
var exportQueries = map[Table]string{
	TableTransactions: `SELECT country, subject_id, survey_day,
			array_to_string(items, ', ') AS items, item_count AS "length"
		FROM transactions ORDER BY country, subject_id, survey_day`,
	TableFrequentItemsets: `SELECT support, array_to_string(itemset, ', ') AS itemsets
		FROM frequent_itemsets ORDER BY item_count, itemset`,
	TableRules: `SELECT array_to_string(antecedents, ', ') AS antecedents,
			array_to_string(consequents, ', ') AS consequents,
			antecedent_support AS "antecedent support",
			consequent_support AS "consequent support",
			support, confidence, lift, leverage, conviction
		FROM rules ORDER BY rule_rank`,
}

// joinList encodes items for string_split(?, chr(31)).
func joinList(items []string) string {
	return strings.Join(items, listSep)
}
