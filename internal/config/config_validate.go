// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package config

import (
	"fmt"

	"github.com/tomtom215/dietbasket/internal/validation"
)

// Validate checks struct-tag constraints, cohort name uniqueness and the
// mining thresholds.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if err := c.validateCohorts(); err != nil {
		return err
	}

	return c.MiningParams().Validate()
}

// validateCohorts rejects duplicate cohort names.
func (c *Config) validateCohorts() error {
	seen := make(map[string]bool, len(c.Data.Cohorts))
	for _, cohort := range c.Data.Cohorts {
		if seen[cohort.Name] {
			return fmt.Errorf("data.cohorts: duplicate cohort name %q", cohort.Name)
		}
		seen[cohort.Name] = true
	}
	return nil
}
