// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package report

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tomtom215/dietbasket/internal/analysis"
	"github.com/tomtom215/dietbasket/internal/mining"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81")). // Sky Blue/Cyan
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	numberStyle = cellStyle.Align(lipgloss.Right)

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

// ruleColumns are the columns of the console rule table.
var ruleColumns = []string{"antecedents", "consequents", "support", "confidence", "lift"}

// RuleTable renders the first n rules as a console table. n <= 0 renders
// every rule.
func RuleTable(title string, rules []mining.Rule, n int) string {
	if n <= 0 || n > len(rules) {
		n = len(rules)
	}

	rows := make([][]string, 0, n)
	for _, r := range rules[:n] {
		rows = append(rows, []string{
			r.AntecedentsString(),
			r.ConsequentsString(),
			formatFloat(r.Support),
			formatFloat(r.Confidence),
			formatFloat(r.Lift),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(ruleColumns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= 2:
				return numberStyle
			default:
				return cellStyle
			}
		})

	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), t.Render())
}

// EDATable renders the exploratory summary: counts, the transaction length
// distribution and the most frequent ingredients.
func EDATable(res *analysis.EDAResult) string {
	l := res.Lengths
	rows := [][]string{
		{"transactions", strconv.Itoa(res.Stats.Transactions)},
		{"subjects", strconv.Itoa(res.Stats.Subjects)},
		{"countries", strconv.Itoa(res.Stats.Countries)},
		{"unique ingredients", strconv.Itoa(res.Stats.UniqueIngredients)},
		{"length mean", formatFloat(l.Mean)},
		{"length std", formatFloat(l.StdDev)},
		{"length min / max", fmt.Sprintf("%g / %g", l.Min, l.Max)},
		{"length 25% / 50% / 75%", fmt.Sprintf("%g / %g / %g", l.Q25, l.Median, l.Q75)},
	}
	parts := []string{pairTable("Transactions ("+res.Cohort+")", rows)}

	if len(res.TopIngredients) > 0 {
		top := make([][]string, len(res.TopIngredients))
		for i, ic := range res.TopIngredients {
			top[i] = []string{ic.Item, strconv.Itoa(ic.Count)}
		}
		parts = append(parts, pairTable(fmt.Sprintf("Top %d ingredients", len(top)), top))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// CompareTable renders the timing and agreement of an FP-Growth versus
// Apriori comparison.
func CompareTable(res *analysis.CompareResult) string {
	rows := [][]string{
		{"transactions", strconv.Itoa(res.FilteredTransactions)},
		{"items", strconv.Itoa(res.KeptItems)},
		{"min support", formatFloat(res.MinSupport)},
		strategyRow(res.FPGrowth),
		strategyRow(res.Apriori),
	}
	if res.SpeedRatio > 0 {
		rows = append(rows, []string{"speed ratio", fmt.Sprintf("FP-Growth %.2fx faster", res.SpeedRatio)})
	}
	if res.Apriori.Succeeded() {
		agree := "yes"
		if !res.Equivalent {
			agree = "no: " + res.Mismatch
		}
		rows = append(rows, []string{"same itemsets", agree})
	}
	return pairTable("FP-Growth vs Apriori ("+res.Cohort+")", rows)
}

// strategyRow summarizes one strategy as "N itemsets in Xs", or its failure.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func strategyRow(s analysis.StrategyResult) []string {
	if !s.Succeeded() {
		return []string{s.Strategy, "failed (" + s.Failure + ")"}
	}
	return []string{s.Strategy, fmt.Sprintf("%d itemsets in %.3fs", s.Itemsets, s.ElapsedSeconds)}
}

// pairTable renders two-column rows without a header.
func pairTable(title string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Rows(rows...).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return headerStyle
			}
			return cellStyle
		})
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), t.Render())
}

// formatFloat prints a metric with four decimals.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
