// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/dietbasket/internal/mining"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "DIETBASKET_CONFIG"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	m := mining.DefaultConfig()
	return &Config{
		Data: DataConfig{
			Cohorts: []CohortConfig{
				{
					Name:           "ro",
					Code:           "RO",
					ConsumptionCSV: "data/raw/consumption_user.csv",
					SubjectCSV:     "data/raw/subject_user.csv",
				},
			},
			Columns: ColumnsConfig{
				Subject:    "SUBJECT",
				SurveyDay:  "SURVEY_DAY",
				Ingredient: "INGREDIENT",
				Country:    "ADM0_NAME",
			},
		},
		Mining: MiningConfig{
			MinSupport:               m.MinSupport,
			MinConfidence:            m.MinConfidence,
			MinLift:                  m.MinLift,
			MaxAntecedentLen:         m.MaxAntecedentLen,
			ConsequentLen:            m.ConsequentLen,
			RareItemSupportThreshold: m.RareItemSupportThreshold,
			Workers:                  m.Workers,
		},
		Compare: CompareConfig{
			Timeout:       10 * time.Minute,
			MaxCandidates: mining.DefaultMaxCandidates,
		},
		Output: OutputConfig{
			Dir:     "data/processed",
			Figures: false,
			TopN:    10,
		},
		Database: DatabaseConfig{
			Path:      ":memory:",
			MaxMemory: "2GB",
			Threads:   0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf with layered sources:
//  1. Struct defaults
//  2. Config file (config.yaml, or the DIETBASKET_CONFIG path)
//  3. Environment variables (highest priority)
//
// The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath, err := findConfigFile()
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// MIN_SUPPORT -> mining.min_support
	// DUCKDB_PATH -> database.path
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the config file to load, or "" when none exists.
// An explicit DIETBASKET_CONFIG path that does not exist is an error rather
// than a silent fallback.
func findConfigFile() (string, error) {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s=%s: %w", ConfigPathEnvVar, envPath, err)
		}
		return envPath, nil
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
var envMappings = map[string]string{
	// Mining thresholds
	"min_support":                 "mining.min_support",
	"min_confidence":              "mining.min_confidence",
	"min_lift":                    "mining.min_lift",
	"max_antecedent_len":          "mining.max_antecedent_len",
	"consequent_len":              "mining.consequent_len",
	"rare_item_support_threshold": "mining.rare_item_support_threshold",
	"fp_workers":                  "mining.workers",

	// Apriori comparison bounds
	"apriori_timeout":        "compare.timeout",
	"apriori_max_candidates": "compare.max_candidates",

	// Output
	"output_dir":  "output.dir",
	"figures":     "output.figures",
	"top_n_rules": "output.top_n",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Metrics
	"metrics_textfile": "metrics.textfile",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped, so unrelated environment
// variables never reach the configuration.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
