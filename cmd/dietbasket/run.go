// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tomtom215/dietbasket/internal/analysis"
	"github.com/tomtom215/dietbasket/internal/config"
	"github.com/tomtom215/dietbasket/internal/database"
	"github.com/tomtom215/dietbasket/internal/logging"
	"github.com/tomtom215/dietbasket/internal/metrics"
	"github.com/tomtom215/dietbasket/internal/report"
)

// run executes one command and writes its console report, figures, summary
// and metrics.
//
//nolint:gocritic // cliOptions is small and read-only
func run(ctx context.Context, cfg *config.Config, opts cliOptions, stdout io.Writer) error {
	log := logging.Ctx(ctx)
	started := time.Now()

	cohorts, err := opts.selectCohorts(cfg)
	if err != nil {
		return err
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("Error closing database")
		}
	}()
	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	if cfg.Metrics.Textfile != "" {
		defer func() {
			if mErr := metrics.WriteTextfile(cfg.Metrics.Textfile); mErr != nil {
				log.Warn().Err(mErr).Str("path", cfg.Metrics.Textfile).Msg("Failed to write metrics textfile")
			}
		}()
	}

	loader, err := database.NewCohortLoader(db, cohorts, cfg.Data.Columns, opts.Combined)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	runner, err := analysis.NewRunner(loader, db, analysis.Options{
		Mining: cfg.MiningParams(),
		Compare: analysis.CompareOptions{
			Timeout:       cfg.Compare.Timeout,
			MaxCandidates: cfg.Compare.MaxCandidates,
		},
		OutputDir: cfg.OutputDir(opts.Combined),
		Combined:  opts.Combined,
	}, logging.WithComponent(ctx, "analysis"))
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	summary := &report.Summary{
		RunID:     logging.RunIDFromContext(ctx),
		Command:   opts.Command,
		Cohort:    loader.Name(),
		Combined:  opts.Combined,
		StartedAt: started.UTC(),
	}
	figures := &report.FigureData{Label: cohortLabel(cohorts)}
	if opts.Combined {
		figures.Suffix = "_combined"
	}

	switch opts.Command {
	case commandEDA:
		res, err := runner.EDA(ctx)
		if err != nil {
			return fmt.Errorf("eda: %w", err)
		}
		summary.EDA = res
		figures.TransactionLengths = res.TransactionLengths
		figures.TopIngredients = res.TopIngredients
		fmt.Fprintln(stdout, report.EDATable(res))

	case commandMine:
		res, err := runner.Mine(ctx)
		if err != nil {
			return fmt.Errorf("mine: %w", err)
		}
		summary.Mine = res
		figures.TransactionLengths = res.TransactionLengths
		figures.TopIngredients = res.TopIngredients
		figures.Rules = res.Rules
		shown := cfg.Output.TopN
		if shown <= 0 || shown > len(res.Rules) {
			shown = len(res.Rules)
		}
		fmt.Fprintln(stdout, report.RuleTable(
			fmt.Sprintf("Top %d rules by lift (%s)", shown, figures.Label), res.Rules, shown))

	case commandCompare:
		res, err := runner.Compare(ctx)
		if err != nil {
			return fmt.Errorf("compare: %w", err)
		}
		summary.Compare = res
		fmt.Fprintln(stdout, report.CompareTable(res))
	}

	if opts.Combined || cfg.Output.Figures {
		paths, err := report.WriteFigures(runner.Outputs().FiguresDir, figures)
		if err != nil {
			return fmt.Errorf("failed to write figures: %w", err)
		}
		summary.Figures = paths
	}

	summary.DurationMS = time.Since(started).Milliseconds()
	path := report.SummaryPath(cfg.OutputDir(opts.Combined), opts.Command, opts.Combined)
	if err := report.WriteSummary(path, summary); err != nil {
		return err
	}

	log.Info().
		Str("summary", path).
		Int("figures", len(summary.Figures)).
		Int64("duration_ms", summary.DurationMS).
		Msg("Run complete")
	return nil
}
