// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LengthSummary describes the distribution of transaction lengths.
type LengthSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// DescribeLengths summarizes lengths. StdDev is the sample standard
// deviation; it is zero for fewer than two values. Quantiles interpolate
// linearly between order statistics at rank (n-1)p, as pandas describe()
// does. An empty input yields the zero summary.
func DescribeLengths(lengths []float64) LengthSummary {
	if len(lengths) == 0 {
		return LengthSummary{}
	}

	sorted := make([]float64, len(lengths))
	copy(sorted, lengths)
	sort.Float64s(sorted)

	summary := LengthSummary{
		Count:  len(sorted),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		Q25:    quantile(sorted, 0.25),
		Median: quantile(sorted, 0.50),
		Q75:    quantile(sorted, 0.75),
	}
	if len(sorted) > 1 {
		summary.Mean, summary.StdDev = stat.MeanStdDev(sorted, nil)
	} else {
		summary.Mean = sorted[0]
	}
	return summary
}

// quantile returns the p-quantile of a non-empty sorted slice, interpolating
// between x[floor(h)] and x[floor(h)+1] with h = (n-1)p.
func quantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
