// Package baseline provides the non-learned comparison point for the
// benchmark harness: a B-tree index with the same duplicate-aware
// aggregation contract as the correction strategies.
package baseline

import (
	"github.com/google/btree"

	"sortbench/pkg/common"
	"sortbench/pkg/search"
)

type item[K common.Key] struct {
	key   K
	sum   uint64
	count int
}

// Index aggregates equal-key runs into single B-tree items at build time,
// so a lookup is one tree descent regardless of run length. The index is
// built once and read-only afterwards.
type Index[K common.Key] struct {
	tree *btree.BTreeG[item[K]]
}

// Build indexes the given records. They do not need to be sorted.
func Build[K common.Key](records []common.KeyValue[K], degree int) *Index[K] {
	tree := btree.NewG(degree, func(a, b item[K]) bool {
		return a.key < b.key
	})

	for _, kv := range records {
		it := item[K]{key: kv.Key, sum: kv.Value, count: 1}
		if prev, ok := tree.Get(it); ok {
			it.sum += prev.sum
			it.count += prev.count
		}
		tree.ReplaceOrInsert(it)
	}

	return &Index[K]{tree: tree}
}

// Lookup returns the aggregate for key, or search.ErrNotFound.
func (ix *Index[K]) Lookup(key K) (search.Result, error) {
	it, ok := ix.tree.Get(item[K]{key: key})
	if !ok {
		return search.Result{}, search.ErrNotFound
	}
	return search.Result{Sum: it.sum, Count: it.count}, nil
}

// Len returns the number of distinct keys in the index.
func (ix *Index[K]) Len() int {
	return ix.tree.Len()
}
