// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package database

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tomtom215/dietbasket/internal/config"
	"github.com/tomtom215/dietbasket/internal/logging"
	"github.com/tomtom215/dietbasket/internal/metrics"
	"github.com/tomtom215/dietbasket/internal/survey"
)

// LoadCohort reads the consumption and subject files of a cohort and joins
// them on the subject column.
//
// Consumption rows with a missing subject, survey day or ingredient are
// dropped, as are subject rows with a missing subject or country. The join is
// an inner join, so consumption rows of unknown subjects are dropped too. When
// the cohort has a Code it is used as the country of every record.
//
// Every column is read as VARCHAR so that subject identifiers compare equal
// across files regardless of the type DuckDB would infer.
func (db *DB) LoadCohort(ctx context.Context, cohort config.CohortConfig, columns config.ColumnsConfig) ([]survey.Record, error) {
	for _, path := range []string{cohort.ConsumptionCSV, cohort.SubjectCSV} {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("cohort %s: %w", cohort.Name, err)
		}
	}

	ctx, cancel := withDefaultTimeout(ctx, loadTimeout)
	defer cancel()

	start := time.Now()
	records, err := db.queryCohort(ctx, cohortQuery(cohort, columns))
	metrics.RecordDBQuery("load_cohort", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("cohort %s: %w", cohort.Name, err)
	}

	logging.Ctx(ctx).Debug().
		Str("cohort", cohort.Name).
		Int("records", len(records)).
		Dur("duration", time.Since(start)).
		Msg("Cohort loaded")

	return records, nil
}

// queryCohort runs a cohort query and scans the records.
func (db *DB) queryCohort(ctx context.Context, query string) ([]survey.Record, error) {
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cohort: %w", err)
	}
	defer closeQuietly(rows)

	var records []survey.Record
	for rows.Next() {
		var r survey.Record
		if err := rows.Scan(&r.SubjectID, &r.SurveyDay, &r.Ingredient, &r.Country); err != nil {
			return nil, fmt.Errorf("failed to scan cohort row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cohort rows: %w", err)
	}
	return records, nil
}

// cohortQuery builds the join query for one cohort. File paths and column
// names come from configuration and are quoted, not bound: DuckDB does not
// accept parameters for table functions' file arguments.
func cohortQuery(cohort config.CohortConfig, columns config.ColumnsConfig) string {
	subject := quoteIdent(columns.Subject)
	day := quoteIdent(columns.SurveyDay)
	ingredient := quoteIdent(columns.Ingredient)
	country := quoteIdent(columns.Country)

	countryExpr := "s." + country
	if cohort.Code != "" {
		countryExpr = quoteLiteral(cohort.Code)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT c.%s, c.%s, c.%s, %s\n", subject, day, ingredient, countryExpr)
	fmt.Fprintf(&b, "FROM read_csv_auto(%s, header = true, all_varchar = true) AS c\n", quoteLiteral(cohort.ConsumptionCSV))
	fmt.Fprintf(&b, "INNER JOIN (\n\tSELECT %s, %s FROM read_csv_auto(%s, header = true, all_varchar = true)\n", subject, country, quoteLiteral(cohort.SubjectCSV))
	fmt.Fprintf(&b, "\tWHERE %s IS NOT NULL AND %s IS NOT NULL\n) AS s ON c.%s = s.%s\n", subject, country, subject, subject)
	fmt.Fprintf(&b, "WHERE c.%s IS NOT NULL AND c.%s IS NOT NULL AND c.%s IS NOT NULL", subject, day, ingredient)
	return b.String()
}

// quoteIdent quotes a SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteLiteral quotes a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// CohortLoader loads the records of one cohort (national run) or of all
// configured cohorts (combined run).
type CohortLoader struct {
	db       *DB
	cohorts  []config.CohortConfig
	columns  config.ColumnsConfig
	combined bool
}

// NewCohortLoader creates a loader over the given cohorts. A national run
// passes exactly one cohort with combined false.
func NewCohortLoader(db *DB, cohorts []config.CohortConfig, columns config.ColumnsConfig, combined bool) (*CohortLoader, error) {
	if len(cohorts) == 0 {
		return nil, ErrNoCohorts
	}
	if !combined && len(cohorts) > 1 {
		return nil, fmt.Errorf("national run needs exactly one cohort, got %d", len(cohorts))
	}
	return &CohortLoader{
		db:       db,
		cohorts:  cohorts,
		columns:  columns,
		combined: combined,
	}, nil
}

// Name returns the cohort name, or "combined".
func (l *CohortLoader) Name() string {
	if l.combined {
		return "combined"
	}
	return l.cohorts[0].Name
}

// GroupByCountry reports whether transactions are keyed by country as well.
func (l *CohortLoader) GroupByCountry() bool {
	return l.combined
}

// Load reads every cohort in order and concatenates the records.
func (l *CohortLoader) Load(ctx context.Context) ([]survey.Record, error) {
	var all []survey.Record
	for _, cohort := range l.cohorts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records, err := l.db.LoadCohort(ctx, cohort, l.columns)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}
