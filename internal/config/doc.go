// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

/*
Package config provides configuration management for dietbasket.

Configuration is layered with Koanf v2: struct defaults, then an optional
YAML file (config.yaml, or the path in DIETBASKET_CONFIG), then mapped
environment variables. The merged result is validated with struct tags
(internal/validation) and with mining.Config.Validate before use.

# Environment Variables

Mining (MiningConfig):
  - MIN_SUPPORT: minimum itemset support (default: 0.03)
  - MIN_CONFIDENCE: minimum rule confidence (default: 0.40)
  - MIN_LIFT: minimum lift of ranked rules (default: 1.20)
  - MAX_ANTECEDENT_LEN: largest ranked antecedent (default: 2)
  - CONSEQUENT_LEN: exact ranked consequent size (default: 1)
  - RARE_ITEM_SUPPORT_THRESHOLD: rare-item cut-off (default: 0.05)
  - FP_WORKERS: FP-Growth parallelism (default: 1)

Apriori comparison (CompareConfig):
  - APRIORI_TIMEOUT: time bound (default: 10m)
  - APRIORI_MAX_CANDIDATES: candidate budget per level (default: 5000000)

Output, database and observability:
  - OUTPUT_DIR: processed-data directory (default: data/processed)
  - FIGURES: render figures for single-cohort runs (default: false)
  - TOP_N_RULES: ranked rules printed (default: 10)
  - DUCKDB_PATH: database file (default: :memory:)
  - DUCKDB_MAX_MEMORY, DUCKDB_THREADS: DuckDB tuning
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER: logging
  - METRICS_TEXTFILE: Prometheus textfile output (default: disabled)

Cohorts and column names are only configurable from the YAML file:

	data:
	  cohorts:
	    - name: ro
	      code: RO
	      consumption_csv: data/raw/consumption_user.csv
	      subject_csv: data/raw/subject_user.csv
	    - name: lao
	      code: LAO
	      consumption_csv: data/raw/lao_consumption_user.csv
	      subject_csv: data/raw/lao_subject_user.csv
*/
package config
