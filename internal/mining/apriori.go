// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package mining

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// DefaultMaxCandidates bounds the candidates Apriori generates for one level.
const DefaultMaxCandidates = 5_000_000

// ctxCheckInterval is how many candidates are counted between context checks.
const ctxCheckInterval = 1024

// Apriori mines frequent itemsets level by level.
//
// Size-(k+1) candidates are joined from frequent size-k itemsets sharing a
// (k-1)-prefix, pruned when any size-k subset is infrequent, and re-counted
// against the full matrix. It is kept as a baseline for FP-Growth. Wide
// vocabularies can explode the candidate set, so generation stops with
// ErrResourceExhausted once a level exceeds MaxCandidates, and a context
// deadline or cancellation ends the run with ErrResourceExhausted or
// ErrInterrupted.
type Apriori struct {
	MaxCandidates int
}

// NewApriori creates an Apriori strategy. maxCandidates < 1 selects
// DefaultMaxCandidates.
func NewApriori(maxCandidates int) *Apriori {
	if maxCandidates < 1 {
		maxCandidates = DefaultMaxCandidates
	}
	return &Apriori{MaxCandidates: maxCandidates}
}

// Name implements Strategy.
func (a *Apriori) Name() string {
	return "apriori"
}

// Mine implements Strategy.
func (a *Apriori) Mine(ctx context.Context, m *Matrix, minSupport float64) ([]Itemset, error) {
	if err := validateSupport(minSupport); err != nil {
		return nil, err
	}
	n := m.NumRows()
	if n == 0 || m.NumCols() == 0 {
		return []Itemset{}, nil
	}

	limit := a.MaxCandidates
	if limit < 1 {
		limit = DefaultMaxCandidates
	}

	sets := m.columnBitsets()
	scratch := make([]uint64, (n+63)/64)

	var result []Itemset

	// Level 1. Columns are sorted, so column order is lexicographic order.
	var level [][]int
	for col, c := range m.ColumnCounts() {
		if meetsSupport(c, n, minSupport) {
			level = append(level, []int{col})
			result = append(result, newItemset(m.Columns, []int{col}, c, n))
		}
	}

	for len(level) > 1 {
		if err := ctx.Err(); err != nil {
			return nil, contextError(err)
		}

		candidates, err := generateCandidates(level, limit)
		if err != nil {
			return nil, err
		}

		next := make([][]int, 0, len(candidates))
		for i, cand := range candidates {
			if i%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return nil, contextError(err)
				}
			}
			count := intersectCount(sets, cand, scratch)
			if meetsSupport(count, n, minSupport) {
				next = append(next, cand)
				result = append(result, newItemset(m.Columns, cand, count, n))
			}
		}
		level = next
	}

	if result == nil {
		result = []Itemset{}
	}
	sortItemsets(result)
	return result, nil
}

// generateCandidates joins lexicographically sorted size-k itemsets that
// share their first k-1 columns and keeps the joins whose every size-k
// subset is frequent. The output stays lexicographically sorted.
func generateCandidates(level [][]int, limit int) ([][]int, error) {
	frequent := make(map[string]struct{}, len(level))
	for _, cols := range level {
		frequent[colKey(cols)] = struct{}{}
	}

	k := len(level[0])
	var candidates [][]int
	subset := make([]int, k)

	for i := 0; i < len(level); i++ {
		for j := i + 1; j < len(level); j++ {
			a, b := level[i], level[j]
			if !samePrefix(a, b, k-1) {
				// Sorted input: no later j shares the prefix either.
				break
			}

			cand := make([]int, k+1)
			copy(cand, a)
			cand[k] = b[k-1]

			if !allSubsetsFrequent(cand, subset, frequent) {
				continue
			}
			candidates = append(candidates, cand)
			if len(candidates) > limit {
				return nil, fmt.Errorf("%w: more than %d candidates of size %d",
					ErrResourceExhausted, limit, k+1)
			}
		}
	}
	return candidates, nil
}

func samePrefix(a, b []int, n int) bool {
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// allSubsetsFrequent checks the subsets obtained by dropping one column.
// The two subsets that formed the join are frequent by construction.
func allSubsetsFrequent(cand, subset []int, frequent map[string]struct{}) bool {
	k := len(cand) - 1
	for drop := 0; drop < k-1; drop++ {
		subset = subset[:0]
		subset = append(subset, cand[:drop]...)
		subset = append(subset, cand[drop+1:]...)
		if _, ok := frequent[colKey(subset)]; !ok {
			return false
		}
	}
	return true
}

func colKey(cols []int) string {
	var b strings.Builder
	b.Grow(len(cols) * 4)
	for i, c := range cols {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(c))
	}
	return b.String()
}
