// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/dietbasket/internal/metrics"
	"github.com/tomtom215/dietbasket/internal/mining"
)

// StrategyResult is the outcome of one strategy in a comparison.
type StrategyResult struct {
	Strategy       string        `json:"strategy"`
	Elapsed        time.Duration `json:"-"`
	ElapsedSeconds float64       `json:"seconds"`
	Itemsets       int           `json:"itemsets"`

	// Failure is the reason of a soft failure ("resource_exhausted" or
	// "interrupted"); empty on success.
	Failure string `json:"failure,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Succeeded reports whether the strategy produced a result.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (s StrategyResult) Succeeded() bool {
	return s.Failure == ""
}

// CompareResult is the outcome of an FP-Growth versus Apriori comparison.
type CompareResult struct {
	Cohort               string         `json:"cohort"`
	MinSupport           float64        `json:"min_support"`
	Transactions         int            `json:"transactions"`
	FilteredTransactions int            `json:"filtered_transactions"`
	KeptItems            int            `json:"kept_items"`
	FPGrowth             StrategyResult `json:"fpgrowth"`
	Apriori              StrategyResult `json:"apriori"`

	// SpeedRatio is Apriori time over FP-Growth time. It is zero when
	// Apriori failed or FP-Growth took no measurable time.
	SpeedRatio float64 `json:"speed_ratio"`

	// Equivalent reports whether both strategies found the same itemsets
	// with supports within mining.SupportTolerance.
	Equivalent bool   `json:"equivalent"`
	Mismatch   string `json:"mismatch,omitempty"`
}

// Compare mines the same matrix with FP-Growth and Apriori. Apriori runs
// under the configured time and candidate bounds; exceeding them, or an
// interruption, is reported in the result instead of failing the run. Any
// other error is returned.
func (r *Runner) Compare(ctx context.Context) (*CompareResult, error) {
	cfg := r.opts.Mining
	log := r.log()

	transactions, err := r.loadTransactions(ctx, r.loader.GroupByCountry())
	if err != nil {
		return nil, err
	}
	b, err := r.prepare(transactions, cfg.RareItemSupportThreshold)
	if err != nil {
		return nil, err
	}

	result := &CompareResult{
		Cohort:               r.loader.Name(),
		MinSupport:           cfg.MinSupport,
		Transactions:         len(transactions),
		FilteredTransactions: len(b.filtered),
		KeptItems:            len(b.keptItems),
	}

	fp := mining.NewFPGrowth(cfg.Workers)
	fpSets, fpResult, err := r.runStrategy(ctx, fp, b.matrix)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fp.Name(), err)
	}
	result.FPGrowth = fpResult

	apCtx, cancel := ctx, context.CancelFunc(func() {})
	if r.opts.Compare.Timeout > 0 {
		apCtx, cancel = context.WithTimeout(ctx, r.opts.Compare.Timeout)
	}
	defer cancel()

	ap := mining.NewApriori(r.opts.Compare.MaxCandidates)
	apSets, apResult, err := r.runStrategy(apCtx, ap, b.matrix)
	switch {
	case err == nil:
	case mining.IsSoftFailure(err):
		apResult.Failure = metrics.FailureReason(err)
		apResult.Error = err.Error()
		log.Warn().
			Err(err).
			Str("strategy", ap.Name()).
			Str("reason", apResult.Failure).
			Msg("Apriori did not complete")
	default:
		return nil, fmt.Errorf("%s: %w", ap.Name(), err)
	}
	result.Apriori = apResult

	if apResult.Succeeded() {
		if fpResult.Elapsed > 0 {
			result.SpeedRatio = apResult.Elapsed.Seconds() / fpResult.Elapsed.Seconds()
		}
		if err := mining.EquivalentItemsets(fpSets, apSets, mining.SupportTolerance); err != nil {
			result.Mismatch = err.Error()
			log.Error().Err(err).Msg("Strategies disagree")
		} else {
			result.Equivalent = true
		}
	}

	log.Info().
		Float64("fpgrowth_seconds", fpResult.ElapsedSeconds).
		Int("fpgrowth_itemsets", fpResult.Itemsets).
		Float64("apriori_seconds", apResult.ElapsedSeconds).
		Int("apriori_itemsets", apResult.Itemsets).
		Float64("speed_ratio", result.SpeedRatio).
		Bool("equivalent", result.Equivalent).
		Msg("Comparison complete")

	return result, nil
}

// runStrategy mines m with s under ctx, recording timing metrics.
func (r *Runner) runStrategy(ctx context.Context, s mining.Strategy, m *mining.Matrix) ([]mining.Itemset, StrategyResult, error) {
	r.log().Info().Str("strategy", s.Name()).Msg("Strategy started")

	elapsed, sets, err := timed(func() ([]mining.Itemset, error) {
		return s.Mine(ctx, m, r.opts.Mining.MinSupport)
	})
	metrics.RecordMining(s.Name(), elapsed, len(sets), err)

	res := StrategyResult{
		Strategy:       s.Name(),
		Elapsed:        elapsed,
		ElapsedSeconds: elapsed.Seconds(),
		Itemsets:       len(sets),
	}
	return sets, res, err
}
