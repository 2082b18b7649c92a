// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/tomtom215/dietbasket/internal/config"
	"github.com/tomtom215/dietbasket/internal/logging"
)

// Exit codes.
const (
	exitOK    = 0
	exitRun   = 1
	exitUsage = 2
)

// Commands.
const (
	commandEDA     = "eda"
	commandMine    = "mine"
	commandCompare = "compare"
)

var commands = []string{commandEDA, commandMine, commandCompare}

// errUsage marks command line and configuration errors.
var errUsage = errors.New("usage error")

// cliOptions holds the parsed command line.
type cliOptions struct {
	Command    string
	ConfigPath string
	Cohort     string
	Combined   bool
	Figures    bool
	OutputDir  string
}

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdout, os.Stderr))
}

func realMain(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "dietbasket: %v\n", err)
		return exitUsage
	}

	if opts.ConfigPath != "" {
		if err := os.Setenv(config.ConfigPathEnvVar, opts.ConfigPath); err != nil {
			fmt.Fprintf(stderr, "dietbasket: %v\n", err)
			return exitUsage
		}
	}

	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Error().Err(err).Msg("Failed to load configuration")
		return exitUsage
	}
	opts.apply(cfg)

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    stderr,
	})

	// SIGINT/SIGTERM cancel the run; Apriori reports the interruption as a
	// soft failure and the other stages return the context error.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithNewRunID(ctx)

	log := logging.Ctx(ctx)
	log.Info().
		Str("command", opts.Command).
		Str("cohort", opts.Cohort).
		Bool("combined", opts.Combined).
		Str("output_dir", cfg.OutputDir(opts.Combined)).
		Str("db_path", cfg.Database.Path).
		Msg("Starting dietbasket")

	err = run(ctx, cfg, opts, stdout)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		log.Error().Err(err).Msg("Invalid invocation")
		return exitUsage
	default:
		log.Error().Err(err).Str("command", opts.Command).Msg("Run failed")
		return exitRun
	}
}

// parseArgs parses the flags and the single command argument.
func parseArgs(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions

	fs := pflag.NewFlagSet("dietbasket", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.ConfigPath, "config", "", "config file (default: config.yaml when present)")
	fs.StringVar(&opts.Cohort, "cohort", "", "national cohort to analyse (default: first configured)")
	fs.BoolVar(&opts.Combined, "combined", false, "analyse all cohorts together, grouped by country")
	fs.BoolVar(&opts.Figures, "figures", false, "render figures for a national run as well")
	fs.StringVar(&opts.OutputDir, "output", "", "processed-data directory (overrides output.dir)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: dietbasket [flags] %s\n\nFlags:\n", strings.Join(commands, "|"))
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if fs.NArg() != 1 {
		return opts, fmt.Errorf("expected one command (%s), got %d arguments", strings.Join(commands, ", "), fs.NArg())
	}
	opts.Command = fs.Arg(0)
	if !slices.Contains(commands, opts.Command) {
		return opts, fmt.Errorf("unknown command %q", opts.Command)
	}
	if opts.Combined && opts.Cohort != "" {
		return opts, errors.New("--cohort and --combined are mutually exclusive")
	}
	return opts, nil
}

// apply overrides the loaded configuration with the command line flags.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (o cliOptions) apply(cfg *config.Config) {
	if o.OutputDir != "" {
		cfg.Output.Dir = o.OutputDir
	}
	if o.Figures {
		cfg.Output.Figures = true
	}
}

// selectCohorts returns the cohorts analysed by a run: every configured
// cohort for a combined run, otherwise the named one or the first.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (o cliOptions) selectCohorts(cfg *config.Config) ([]config.CohortConfig, error) {
	if o.Combined {
		return cfg.Data.Cohorts, nil
	}
	if o.Cohort == "" {
		if len(cfg.Data.Cohorts) == 0 {
			return nil, fmt.Errorf("%w: no cohorts configured", errUsage)
		}
		return cfg.Data.Cohorts[:1], nil
	}
	cohort, err := cfg.Cohort(o.Cohort)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	return []config.CohortConfig{cohort}, nil
}

// cohortLabel names the cohorts in figure titles, e.g. "RO + LAO".
func cohortLabel(cohorts []config.CohortConfig) string {
	labels := make([]string, 0, len(cohorts))
	for _, c := range cohorts {
		label := c.Code
		if label == "" {
			label = strings.ToUpper(c.Name)
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, " + ")
}
