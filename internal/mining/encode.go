// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package mining

import (
	"math/bits"
	"sort"
)

// Matrix is a dense boolean transaction matrix.
// Rows are transactions and columns are items; Rows[i][j] is true iff
// transaction i contains item Columns[j].
type Matrix struct {
	Columns []string
	Rows    [][]bool
}

// Encode builds the membership matrix for transactions. The column
// vocabulary is the sorted union of the items that appear in the input.
func Encode(transactions [][]string) *Matrix {
	vocab := make(map[string]struct{})
	for _, t := range transactions {
		for _, item := range t {
			vocab[item] = struct{}{}
		}
	}

	columns := make([]string, 0, len(vocab))
	for item := range vocab {
		columns = append(columns, item)
	}
	sort.Strings(columns)

	index := make(map[string]int, len(columns))
	for j, item := range columns {
		index[item] = j
	}

	rows := make([][]bool, len(transactions))
	for i, t := range transactions {
		row := make([]bool, len(columns))
		for _, item := range t {
			row[index[item]] = true
		}
		rows[i] = row
	}

	return &Matrix{Columns: columns, Rows: rows}
}

// NumRows returns the number of transactions.
func (m *Matrix) NumRows() int {
	if m == nil {
		return 0
	}
	return len(m.Rows)
}

// NumCols returns the number of items.
func (m *Matrix) NumCols() int {
	if m == nil {
		return 0
	}
	return len(m.Columns)
}

// ColumnCounts returns, per column, the number of rows containing the item.
func (m *Matrix) ColumnCounts() []int {
	counts := make([]int, m.NumCols())
	for _, row := range m.Rows {
		for j, v := range row {
			if v {
				counts[j]++
			}
		}
	}
	return counts
}

// columnBitsets returns one row-membership bitset per column.
func (m *Matrix) columnBitsets() [][]uint64 {
	words := (m.NumRows() + 63) / 64
	sets := make([][]uint64, m.NumCols())
	for j := range sets {
		sets[j] = make([]uint64, words)
	}
	for i, row := range m.Rows {
		for j, v := range row {
			if v {
				sets[j][i/64] |= 1 << (uint(i) % 64)
			}
		}
	}
	return sets
}

// intersectCount ANDs the bitsets of cols into scratch and returns the
// population count.
func intersectCount(sets [][]uint64, cols []int, scratch []uint64) int {
	copy(scratch, sets[cols[0]])
	for _, c := range cols[1:] {
		other := sets[c]
		for w := range scratch {
			scratch[w] &= other[w]
		}
	}
	total := 0
	for _, w := range scratch {
		total += bits.OnesCount64(w)
	}
	return total
}
