// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tomtom215/dietbasket/internal/mining"
	"github.com/tomtom215/dietbasket/internal/survey"
)

const (
	// HistogramBins is the bin count of the transaction length histogram.
	HistogramBins = 20

	figureWidth  = 8 * vg.Inch
	figureHeight = 5 * vg.Inch
)

var (
	barColor     = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	scatterColor = color.NRGBA{R: 31, G: 119, B: 180, A: 102}
)

// FigureData holds the inputs of the run figures.
type FigureData struct {
	// Label is appended to every title, e.g. "RO + LAO".
	Label string

	// TransactionLengths are the sizes of the built transactions.
	TransactionLengths []float64

	// TopIngredients are the most frequent ingredients, most frequent first.
	TopIngredients []survey.ItemCount

	// Rules are the ranked rules of the run.
	Rules []mining.Rule

	// Suffix is appended to the file names of the ingredient and rule
	// figures, e.g. "_combined".
	Suffix string
}

// Figure file names.
const (
	LengthFigure      = "transaction_length_distribution.png"
	ingredientsFigure = "top_ingredients%s.png"
	rulesFigure       = "confidence_vs_lift%s.png"
)

// WriteFigures renders the figures into dir and returns the written paths.
// A figure without data is skipped.
func WriteFigures(dir string, data *FigureData) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create figure directory: %w", err)
	}

	type figure struct {
		name   string
		render func() (*plot.Plot, error)
		empty  bool
	}
	figures := []figure{
		{
			name:   LengthFigure,
			render: func() (*plot.Plot, error) { return lengthHistogram(data) },
			empty:  len(data.TransactionLengths) == 0,
		},
		{
			name:   fmt.Sprintf(ingredientsFigure, data.Suffix),
			render: func() (*plot.Plot, error) { return ingredientBars(data) },
			empty:  len(data.TopIngredients) == 0,
		},
		{
			name:   fmt.Sprintf(rulesFigure, data.Suffix),
			render: func() (*plot.Plot, error) { return ruleScatter(data) },
			empty:  len(data.Rules) == 0,
		},
	}

	var written []string
	for _, f := range figures {
		if f.empty {
			continue
		}
		p, err := f.render()
		if err != nil {
			return written, fmt.Errorf("%s: %w", f.name, err)
		}
		path := filepath.Join(dir, f.name)
		if err := p.Save(figureWidth, figureHeight, path); err != nil {
			return written, fmt.Errorf("failed to save %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// title appends the run label to a figure title.
func title(base, label string) string {
	if label == "" {
		return base
	}
	return base + " (" + label + ")"
}

// lengthHistogram draws the transaction length distribution.
func lengthHistogram(data *FigureData) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title("Transaction length distribution", data.Label)
	p.X.Label.Text = "Ingredients per transaction"
	p.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(plotter.Values(data.TransactionLengths), HistogramBins)
	if err != nil {
		return nil, err
	}
	h.FillColor = barColor
	p.Add(h)
	return p, nil
}

// ingredientBars draws the most frequent ingredients as horizontal bars,
// the most frequent at the top.
func ingredientBars(data *FigureData) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title(fmt.Sprintf("Top %d ingredients", len(data.TopIngredients)), data.Label)
	p.X.Label.Text = "Frequency"

	n := len(data.TopIngredients)
	values := make(plotter.Values, n)
	names := make([]string, n)
	for i, ic := range data.TopIngredients {
		// Bars are drawn bottom-up.
		values[n-1-i] = float64(ic.Count)
		names[n-1-i] = ic.Item
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return nil, err
	}
	bars.Horizontal = true
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalY(names...)
	return p, nil
}

// ruleScatter plots rule confidence against lift.
func ruleScatter(data *FigureData) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title("Association rules", data.Label)
	p.X.Label.Text = "Confidence"
	p.Y.Label.Text = "Lift"

	points := make(plotter.XYs, len(data.Rules))
	for i, r := range data.Rules {
		points[i].X = r.Confidence
		points[i].Y = r.Lift
	}

	s, err := plotter.NewScatter(points)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = scatterColor
	s.GlyphStyle.Radius = vg.Points(2.5)
	p.Add(s)
	p.Add(plotter.NewGrid())
	return p, nil
}
