// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

/*
Command dietbasket mines association rules between ingredients reported in
dietary recall surveys.

Each survey respondent's intake on one survey day is one transaction: the set
of distinct ingredients consumed. Transactions are mined with FP-Growth and
the resulting rules are filtered and ranked by lift.

# Usage

	dietbasket [flags] eda|mine|compare

Commands:

	eda       Build transactions and report counts, length statistics and
	          the most frequent ingredients.
	mine      Run rare-item filtering, FP-Growth, rule generation and
	          ranking. Prints the top rules and writes the itemset and rule
	          CSVs.
	compare   Mine the same data with FP-Growth and Apriori, report timings,
	          the speed ratio and whether both found the same itemsets.

Flags:

	--config PATH    Config file (default: config.yaml when present)
	--cohort NAME    National cohort to analyse (default: first configured)
	--combined       Analyse all cohorts together, grouped by country
	--figures        Render PNG figures for a national run as well
	--output DIR     Processed-data directory (overrides output.dir)

# Pipeline

	cohort CSVs ──► DuckDB join ──► transactions ──► rare-item filter
	                                                        │
	      rule CSV ◄── rank ◄── rules ◄── FP-Growth ◄── one-hot matrix

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config file and environment
 2. Logging: zerolog with a run ID attached to every event
 3. Database: DuckDB, in memory unless DUCKDB_PATH is set
 4. Runner: the analysis pipeline over the selected cohorts

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Flags > Environment variables > Config file > Defaults

Core environment variables:

	# Mining
	MIN_SUPPORT=0.03                   # FP-Growth minimum support
	MIN_CONFIDENCE=0.4
	MIN_LIFT=1.2
	RARE_ITEM_SUPPORT_THRESHOLD=0.05   # items below this support are dropped
	FP_WORKERS=1                       # conditional-tree parallelism

	# Apriori comparison
	APRIORI_TIMEOUT=10m
	APRIORI_MAX_CANDIDATES=5000000

	# Output
	OUTPUT_DIR=data/processed
	TOP_N_RULES=10

	# Database
	DUCKDB_PATH=:memory:
	DUCKDB_MAX_MEMORY=2GB

	# Logging
	LOG_LEVEL=info                     # trace, debug, info, warn, error
	LOG_FORMAT=console                 # json or console

	# Metrics
	METRICS_TEXTFILE=/var/lib/node_exporter/dietbasket.prom

Cohorts and CSV column names are set in the config file:

	data:
	  cohorts:
	    - name: ro
	      code: RO
	      consumption_csv: data/raw/consumption_user.csv
	      subject_csv: data/raw/subject_user.csv
	    - name: lao
	      code: LAO
	      consumption_csv: data/raw/lao/consumption_user.csv
	      subject_csv: data/raw/lao/subject_user.csv

# Outputs

National runs write transactions_eda.csv, fp_frequent_itemsets.csv and
fp_rules_limited.csv into the output directory. Combined runs write
transactions_combined.csv, fp_frequent_itemsets_combined.csv and
fp_rules_combined.csv into its combined/ subdirectory. Every run also writes
a summary_<command>.json file, and figures go to figures/.

# Exit Codes

	0  success
	1  the run failed
	2  invalid command line or configuration
*/
package main
