// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package mining

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.MinSupport != 0.03 {
		t.Errorf("MinSupport = %v, want 0.03", cfg.MinSupport)
	}
	if cfg.MinConfidence != 0.40 {
		t.Errorf("MinConfidence = %v, want 0.40", cfg.MinConfidence)
	}
	if cfg.MinLift != 1.20 {
		t.Errorf("MinLift = %v, want 1.20", cfg.MinLift)
	}
	if cfg.MaxAntecedentLen != 2 || cfg.ConsequentLen != 1 {
		t.Errorf("lengths = %d/%d, want 2/1", cfg.MaxAntecedentLen, cfg.ConsequentLen)
	}
	if cfg.RareItemSupportThreshold != 0.05 {
		t.Errorf("RareItemSupportThreshold = %v, want 0.05", cfg.RareItemSupportThreshold)
	}
	if !strings.Contains(cfg.String(), "support=0.030") {
		t.Errorf("String() = %q", cfg.String())
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"support of one", func(c *Config) { c.MinSupport = 1 }, false},
		{"zero rare threshold", func(c *Config) { c.RareItemSupportThreshold = 0 }, false},
		{"zero support", func(c *Config) { c.MinSupport = 0 }, true},
		{"support above one", func(c *Config) { c.MinSupport = 1.1 }, true},
		{"negative confidence", func(c *Config) { c.MinConfidence = -0.1 }, true},
		{"confidence above one", func(c *Config) { c.MinConfidence = 1.5 }, true},
		{"negative lift", func(c *Config) { c.MinLift = -1 }, true},
		{"rare threshold above one", func(c *Config) { c.RareItemSupportThreshold = 2 }, true},
		{"zero antecedent length", func(c *Config) { c.MaxAntecedentLen = 0 }, true},
		{"zero consequent length", func(c *Config) { c.ConsequentLen = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidThreshold) {
				t.Errorf("Validate() error = %v, want ErrInvalidThreshold", err)
			}
		})
	}
}
