// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/tomtom215/dietbasket/internal/mining"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values matching the published analysis
//  2. Config File: optional config.yaml (cohorts, columns, thresholds)
//  3. Environment Variables: override any mapped setting
type Config struct {
	Data     DataConfig     `koanf:"data"`
	Mining   MiningConfig   `koanf:"mining"`
	Compare  CompareConfig  `koanf:"compare"`
	Output   OutputConfig   `koanf:"output"`
	Database DatabaseConfig `koanf:"database"`
	Logging  LoggingConfig  `koanf:"logging"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// DataConfig describes the survey inputs.
type DataConfig struct {
	// Cohorts lists the survey cohorts. A single-cohort run picks one by
	// name; a combined run loads all of them.
	Cohorts []CohortConfig `koanf:"cohorts" validate:"min=1,dive"`

	// Columns names the CSV columns read from every cohort.
	Columns ColumnsConfig `koanf:"columns"`
}

// CohortConfig is one survey cohort: a consumption file and a subject file
// joined on the subject column.
type CohortConfig struct {
	// Name selects the cohort on the command line (e.g. "ro").
	Name string `koanf:"name" validate:"required"`

	// Code is the country code attached to every record in combined runs.
	// When empty the subject file's country column is used instead.
	Code string `koanf:"code"`

	ConsumptionCSV string `koanf:"consumption_csv" validate:"required"`
	SubjectCSV     string `koanf:"subject_csv" validate:"required"`
}

// ColumnsConfig names the CSV columns.
type ColumnsConfig struct {
	Subject    string `koanf:"subject" validate:"required"`
	SurveyDay  string `koanf:"survey_day" validate:"required"`
	Ingredient string `koanf:"ingredient" validate:"required"`
	Country    string `koanf:"country" validate:"required"`
}

// MiningConfig holds the mining thresholds. See mining.Config.
type MiningConfig struct {
	MinSupport               float64 `koanf:"min_support" validate:"gt=0,lte=1"`
	MinConfidence            float64 `koanf:"min_confidence" validate:"gte=0,lte=1"`
	MinLift                  float64 `koanf:"min_lift" validate:"gte=0"`
	MaxAntecedentLen         int     `koanf:"max_antecedent_len" validate:"min=1"`
	ConsequentLen            int     `koanf:"consequent_len" validate:"min=1"`
	RareItemSupportThreshold float64 `koanf:"rare_item_support_threshold" validate:"gte=0,lte=1"`

	// Workers is the FP-Growth parallelism (1 = sequential).
	Workers int `koanf:"workers" validate:"min=1"`
}

// CompareConfig bounds the Apriori comparison run.
type CompareConfig struct {
	// Timeout is the time bound for the Apriori strategy (0 = unbounded).
	// Default: 10m
	Timeout time.Duration `koanf:"timeout" validate:"gte=0"`

	// MaxCandidates is the Apriori candidate budget per level.
	// Default: 5000000
	MaxCandidates int `koanf:"max_candidates" validate:"min=1"`
}

// OutputConfig controls where results are written.
type OutputConfig struct {
	// Dir is the processed-data directory. Combined runs write into
	// Dir/combined.
	Dir string `koanf:"dir" validate:"required"`

	// Figures renders PNG figures for single-cohort runs as well.
	// Combined runs always render them.
	Figures bool `koanf:"figures"`

	// TopN is the number of ranked rules printed to the console.
	TopN int `koanf:"top_n" validate:"gte=0"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the DuckDB database file, or ":memory:".
	Path      string `koanf:"path" validate:"required"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads" validate:"gte=0"` // 0 = use runtime.NumCPU()
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is the output format: json or console.
	// Default: console
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// MetricsConfig holds Prometheus export settings.
type MetricsConfig struct {
	// Textfile is written in the node-exporter textfile format at the end of
	// a run. Empty disables the export.
	Textfile string `koanf:"textfile"`
}

// MiningParams converts the mining section into the engine configuration.
func (c *Config) MiningParams() mining.Config {
	return mining.Config{
		MinSupport:               c.Mining.MinSupport,
		MinConfidence:            c.Mining.MinConfidence,
		MinLift:                  c.Mining.MinLift,
		MaxAntecedentLen:         c.Mining.MaxAntecedentLen,
		ConsequentLen:            c.Mining.ConsequentLen,
		RareItemSupportThreshold: c.Mining.RareItemSupportThreshold,
		Workers:                  c.Mining.Workers,
	}
}

// Cohort returns the cohort with the given name.
func (c *Config) Cohort(name string) (CohortConfig, error) {
	for _, cohort := range c.Data.Cohorts {
		if cohort.Name == name {
			return cohort, nil
		}
	}
	return CohortConfig{}, fmt.Errorf("unknown cohort %q", name)
}

// OutputDir returns the directory for a run: Output.Dir for a single cohort
// and Output.Dir/combined for a combined run.
func (c *Config) OutputDir(combined bool) string {
	if combined {
		return filepath.Join(c.Output.Dir, "combined")
	}
	return c.Output.Dir
}
