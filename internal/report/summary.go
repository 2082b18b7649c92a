// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/dietbasket/internal/analysis"
)

// Summary is the machine-readable record of one run. Exactly one of EDA,
// Mine and Compare is set.
type Summary struct {
	RunID      string    `json:"run_id"`
	Command    string    `json:"command"`
	Cohort     string    `json:"cohort"`
	Combined   bool      `json:"combined"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`

	EDA     *analysis.EDAResult     `json:"eda,omitempty"`
	Mine    *analysis.MineResult    `json:"mine,omitempty"`
	Compare *analysis.CompareResult `json:"compare,omitempty"`

	Figures []string `json:"figures,omitempty"`
}

// SummaryPath returns the summary file of a command in dir.
func SummaryPath(dir, command string, combined bool) string {
	name := "summary_" + command
	if combined {
		name += "_combined"
	}
	return filepath.Join(dir, name+".json")
}

// WriteSummary writes s as indented JSON to path, creating the directory.
func WriteSummary(path string, s *Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create summary directory: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o600) //nolint:gosec // summary file permissions are intentionally restricted
}
