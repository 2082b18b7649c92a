// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

package mining

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// FPGrowth mines frequent itemsets with a frequent-pattern tree.
//
// Items are inserted into the tree in descending order of global frequency,
// so transactions sharing frequent prefixes share nodes. Each item is then
// mined from its conditional pattern base (the prefix paths leading to its
// nodes) without rescanning the matrix.
//
// With Workers > 1 the top-level conditional trees are mined concurrently.
// The tree is read-only once built, and each branch produces a disjoint set
// of itemsets (those whose least frequent item is the branch item), so the
// merged output has no duplicates.
type FPGrowth struct {
	Workers int
}

// NewFPGrowth creates an FP-Growth strategy. workers < 2 mines sequentially.
func NewFPGrowth(workers int) *FPGrowth {
	return &FPGrowth{Workers: workers}
}

// Name implements Strategy.
func (f *FPGrowth) Name() string {
	return "fpgrowth"
}

type fpNode struct {
	item     int
	count    int
	parent   *fpNode
	children map[int]*fpNode
	next     *fpNode // next node carrying the same item
}

type fpTree struct {
	root   *fpNode
	heads  map[int]*fpNode
	counts map[int]int
	order  []int // tree items, most frequent first
}

func newFPTree(order []int) *fpTree {
	return &fpTree{
		root:   &fpNode{item: -1, children: make(map[int]*fpNode)},
		heads:  make(map[int]*fpNode, len(order)),
		counts: make(map[int]int, len(order)),
		order:  order,
	}
}

// insert adds a path whose items are already in tree order.
func (t *fpTree) insert(path []int, count int) {
	node := t.root
	for _, item := range path {
		child, ok := node.children[item]
		if !ok {
			child = &fpNode{
				item:     item,
				parent:   node,
				children: make(map[int]*fpNode),
				next:     t.heads[item],
			}
			node.children[item] = child
			t.heads[item] = child
		}
		child.count += count
		t.counts[item] += count
		node = child
	}
}

// Mine implements Strategy.
func (f *FPGrowth) Mine(ctx context.Context, m *Matrix, minSupport float64) ([]Itemset, error) {
	if err := validateSupport(minSupport); err != nil {
		return nil, err
	}
	n := m.NumRows()
	if n == 0 || m.NumCols() == 0 {
		return []Itemset{}, nil
	}

	tree := buildTree(m, n, minSupport)

	miner := &fpMiner{columns: m.Columns, n: n, minSupport: minSupport}
	branches := make([][]Itemset, len(tree.order))

	if f.Workers < 2 {
		for i := range tree.order {
			sets, err := miner.branch(ctx, tree, i)
			if err != nil {
				return nil, err
			}
			branches[i] = sets
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(f.Workers)
		for i := range tree.order {
			g.Go(func() error {
				sets, err := miner.branch(gctx, tree, i)
				if err != nil {
					return err
				}
				branches[i] = sets
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	total := 0
	for _, b := range branches {
		total += len(b)
	}
	result := make([]Itemset, 0, total)
	for _, b := range branches {
		result = append(result, b...)
	}
	sortItemsets(result)
	return result, nil
}

// buildTree builds the global FP-tree from the frequent columns of m.
func buildTree(m *Matrix, n int, minSupport float64) *fpTree {
	counts := m.ColumnCounts()

	order := make([]int, 0, len(counts))
	for col, c := range counts {
		if meetsSupport(c, n, minSupport) {
			order = append(order, col)
		}
	}
	// Descending frequency, ties by column so the tree shape is independent
	// of row order.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	tree := newFPTree(order)
	path := make([]int, 0, len(order))
	for _, row := range m.Rows {
		path = path[:0]
		for _, col := range order {
			if row[col] {
				path = append(path, col)
			}
		}
		if len(path) > 0 {
			tree.insert(path, 1)
		}
	}
	return tree
}

type fpMiner struct {
	columns    []string
	n          int
	minSupport float64
}

// branch mines every itemset whose least frequent item is tree.order[i].
func (fm *fpMiner) branch(ctx context.Context, tree *fpTree, i int) ([]Itemset, error) {
	var out []Itemset
	emit := func(cols []int, count int) {
		out = append(out, newItemset(fm.columns, cols, count, fm.n))
	}
	if err := fm.mineItem(ctx, tree, tree.order[i], nil, emit); err != nil {
		return nil, err
	}
	return out, nil
}

// mineTree mines every item of a conditional tree, least frequent first.
func (fm *fpMiner) mineTree(ctx context.Context, tree *fpTree, suffix []int, emit func([]int, int)) error {
	for i := len(tree.order) - 1; i >= 0; i-- {
		if err := fm.mineItem(ctx, tree, tree.order[i], suffix, emit); err != nil {
			return err
		}
	}
	return nil
}

func (fm *fpMiner) mineItem(ctx context.Context, tree *fpTree, item int, suffix []int, emit func([]int, int)) error {
	if err := ctx.Err(); err != nil {
		return contextError(err)
	}

	count := tree.counts[item]
	if !meetsSupport(count, fm.n, fm.minSupport) {
		return nil
	}

	pattern := make([]int, 0, len(suffix)+1)
	pattern = append(pattern, item)
	pattern = append(pattern, suffix...)
	emit(pattern, count)

	cond := fm.conditionalTree(tree, item)
	if len(cond.order) == 0 {
		return nil
	}
	return fm.mineTree(ctx, cond, pattern, emit)
}

// conditionalTree builds the tree of prefix paths ending at item, keeping
// only items that are frequent within that pattern base.
func (fm *fpMiner) conditionalTree(tree *fpTree, item int) *fpTree {
	base := make(map[int]int)
	for node := tree.heads[item]; node != nil; node = node.next {
		for p := node.parent; p != nil && p.item >= 0; p = p.parent {
			base[p.item] += node.count
		}
	}

	order := make([]int, 0, len(base))
	keep := make(map[int]bool, len(base))
	for _, it := range tree.order {
		if c, ok := base[it]; ok && meetsSupport(c, fm.n, fm.minSupport) {
			order = append(order, it)
			keep[it] = true
		}
	}

	cond := newFPTree(order)
	if len(order) == 0 {
		return cond
	}

	var path []int
	for node := tree.heads[item]; node != nil; node = node.next {
		path = path[:0]
		for p := node.parent; p != nil && p.item >= 0; p = p.parent {
			if keep[p.item] {
				path = append(path, p.item)
			}
		}
		if len(path) == 0 {
			continue
		}
		// Walked leaf to root; the tree wants root to leaf.
		for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
			path[l], path[r] = path[r], path[l]
		}
		cond.insert(path, node.count)
	}
	return cond
}
