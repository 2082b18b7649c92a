// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package analysis

import (
	"context"
	"fmt"

	"github.com/tomtom215/dietbasket/internal/survey"
)

// EDAResult is the exploratory summary of a run.
type EDAResult struct {
	Cohort         string             `json:"cohort"`
	Stats          survey.Stats       `json:"stats"`
	Lengths        LengthSummary      `json:"transaction_length"`
	TopIngredients []survey.ItemCount `json:"top_ingredients"`
	Outputs        Outputs            `json:"outputs"`

	// TransactionLengths feeds the length histogram.
	TransactionLengths []float64 `json:"-"`
}

// EDA builds the transactions, stores and exports them, and summarizes
// their counts and lengths. Transactions are always keyed by country here so
// a national run reports and exports its country too.
func (r *Runner) EDA(ctx context.Context) (*EDAResult, error) {
	transactions, err := r.loadTransactions(ctx, true)
	if err != nil {
		return nil, err
	}
	if err := r.saveTransactions(ctx, transactions); err != nil {
		return nil, fmt.Errorf("save transactions: %w", err)
	}

	stats, err := r.store.TransactionStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("transaction stats: %w", err)
	}

	lengths := survey.Lengths(transactions)
	result := &EDAResult{
		Cohort:             r.loader.Name(),
		Stats:              stats,
		Lengths:            DescribeLengths(lengths),
		TopIngredients:     topIngredients(survey.ItemLists(transactions), r.opts.TopIngredients),
		Outputs:            r.outputs,
		TransactionLengths: lengths,
	}

	r.log().Info().
		Int("transactions", stats.Transactions).
		Int("subjects", stats.Subjects).
		Int("countries", stats.Countries).
		Int("unique_ingredients", stats.UniqueIngredients).
		Float64("length_mean", result.Lengths.Mean).
		Float64("length_median", result.Lengths.Median).
		Float64("length_max", result.Lengths.Max).
		Str("output", r.outputs.Transactions).
		Msg("EDA complete")

	return result, nil
}
