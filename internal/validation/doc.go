// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator that reports failures by koanf
// key (for example "mining.min_support") so configuration errors name the
// setting the user has to fix.
//
// # Quick Start
//
//	type MiningConfig struct {
//	    MinSupport float64 `koanf:"min_support" validate:"gt=0,lte=1"`
//	}
//
//	if err := validation.ValidateStruct(&cfg); err != nil {
//	    return fmt.Errorf("invalid configuration: %w", err)
//	}
//
// # Thread Safety
//
// GetValidator and ValidateStruct are safe for concurrent use.
package validation
