// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package analysis

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/dietbasket/internal/database"
	"github.com/tomtom215/dietbasket/internal/mining"
	"github.com/tomtom215/dietbasket/internal/survey"
)

// ErrNoRecords is returned when the loader yields no usable records.
var ErrNoRecords = errors.New("no survey records loaded")

// DefaultTopIngredients is the number of ingredients reported by EDA and
// drawn in the top-ingredients figure.
const DefaultTopIngredients = 15

// CohortLoader yields the survey records of a run.
type CohortLoader interface {
	// Name identifies the run in logs and summaries.
	Name() string

	// GroupByCountry reports whether transactions are keyed by country.
	GroupByCountry() bool

	// Load returns every record of the run.
	Load(ctx context.Context) ([]survey.Record, error)
}

// ResultStore persists and exports the tables of a run.
type ResultStore interface {
	ReplaceTransactions(ctx context.Context, transactions []survey.Transaction) error
	ReplaceItemsets(ctx context.Context, itemsets []mining.Itemset) error
	ReplaceRules(ctx context.Context, rules []mining.Rule) error
	TransactionStats(ctx context.Context) (survey.Stats, error)
	ExportCSV(ctx context.Context, table database.Table, path string) error
}

// CompareOptions bounds the Apriori comparison.
type CompareOptions struct {
	// Timeout is the Apriori time bound. Zero means unbounded.
	Timeout time.Duration

	// MaxCandidates is the Apriori candidate budget per level.
	MaxCandidates int
}

// Options configures a Runner.
type Options struct {
	Mining  mining.Config
	Compare CompareOptions

	// OutputDir receives the CSV exports of the run.
	OutputDir string

	// Combined selects the combined file names.
	Combined bool

	// TopIngredients is the number of most frequent ingredients reported.
	// Zero means DefaultTopIngredients.
	TopIngredients int
}

// Validate checks the options.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (o Options) Validate() error {
	if err := o.Mining.Validate(); err != nil {
		return err
	}
	if o.Compare.Timeout < 0 {
		return fmt.Errorf("compare timeout must be >= 0, got %s", o.Compare.Timeout)
	}
	if o.OutputDir == "" {
		return errors.New("output directory is required")
	}
	return nil
}

// Outputs names the files of a run.
type Outputs struct {
	Transactions string `json:"transactions,omitempty"`
	Itemsets     string `json:"itemsets"`
	Rules        string `json:"rules"`
	FiguresDir   string `json:"figures_dir"`
}

// OutputPaths returns the file names used for a national or combined run.
func OutputPaths(dir string, combined bool) Outputs {
	if combined {
		return Outputs{
			Transactions: filepath.Join(dir, "transactions_combined.csv"),
			Itemsets:     filepath.Join(dir, "fp_frequent_itemsets_combined.csv"),
			Rules:        filepath.Join(dir, "fp_rules_combined.csv"),
			FiguresDir:   filepath.Join(dir, "figures"),
		}
	}
	return Outputs{
		Transactions: filepath.Join(dir, "transactions_eda.csv"),
		Itemsets:     filepath.Join(dir, "fp_frequent_itemsets.csv"),
		Rules:        filepath.Join(dir, "fp_rules_limited.csv"),
		FiguresDir:   filepath.Join(dir, "figures"),
	}
}

// Runner executes the analyses of one run. A Runner is not safe for
// concurrent use: its analyses share the result tables.
type Runner struct {
	loader  CohortLoader
	store   ResultStore
	opts    Options
	outputs Outputs
	logger  zerolog.Logger
}

// NewRunner validates opts and creates a Runner. logger carries the
// run-scoped fields, usually logging.WithComponent(ctx, "analysis"); the
// Runner adds the cohort.
//
//nolint:gocritic // Options is passed by value so callers cannot mutate a running config
func NewRunner(loader CohortLoader, store ResultStore, opts Options, logger zerolog.Logger) (*Runner, error) {
	if loader == nil {
		return nil, errors.New("cohort loader is required")
	}
	if store == nil {
		return nil, errors.New("result store is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.TopIngredients <= 0 {
		opts.TopIngredients = DefaultTopIngredients
	}

	return &Runner{
		loader:  loader,
		store:   store,
		opts:    opts,
		outputs: OutputPaths(opts.OutputDir, opts.Combined),
		logger:  logger.With().Str("cohort", loader.Name()).Logger(),
	}, nil
}

// log returns the runner logger.
func (r *Runner) log() *zerolog.Logger {
	return &r.logger
}

// Outputs returns the file names of the run.
func (r *Runner) Outputs() Outputs {
	return r.outputs
}

// basket is the prepared input of the mining stages.
type basket struct {
	filtered  [][]string
	keptItems []string
	matrix    *mining.Matrix
}

// loadTransactions loads the records and groups them into transactions.
// byCountry adds the country to the grouping key.
func (r *Runner) loadTransactions(ctx context.Context, byCountry bool) ([]survey.Transaction, error) {
	records, err := r.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", r.loader.Name(), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRecords, r.loader.Name())
	}

	transactions := survey.BuildTransactions(records, survey.BuildOptions{
		GroupByCountry: byCountry,
	})
	r.log().Info().
		Int("records", len(records)).
		Int("transactions", len(transactions)).
		Msg("Transactions built")
	return transactions, nil
}

// saveTransactions stores and exports the transactions table.
func (r *Runner) saveTransactions(ctx context.Context, transactions []survey.Transaction) error {
	if err := r.store.ReplaceTransactions(ctx, transactions); err != nil {
		return err
	}
	return r.store.ExportCSV(ctx, database.TableTransactions, r.outputs.Transactions)
}

// prepare filters rare items and encodes the transactions.
func (r *Runner) prepare(transactions []survey.Transaction, threshold float64) (*basket, error) {
	filtered, kept, err := mining.FilterRareItems(survey.ItemLists(transactions), threshold)
	if err != nil {
		return nil, err
	}

	r.log().Info().
		Int("transactions", len(transactions)).
		Int("filtered_transactions", len(filtered)).
		Int("kept_items", len(kept)).
		Float64("threshold", threshold).
		Msg("Rare items filtered")

	return &basket{
		filtered:  filtered,
		keptItems: kept,
		matrix:    mining.Encode(filtered),
	}, nil
}

// topIngredients returns the n most frequent items of the item lists.
func topIngredients(lists [][]string, n int) []survey.ItemCount {
	transactions := make([]survey.Transaction, len(lists))
	for i, items := range lists {
		transactions[i] = survey.Transaction{Items: items, Length: len(items)}
	}
	counts := survey.ItemFrequencies(transactions)
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
