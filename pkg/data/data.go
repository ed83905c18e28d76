// Package data implements the sorted key-value model the correction
// strategies operate over: building record arrays from raw key vectors,
// duplicate handling, and the binary dataset file format.
package data

import (
	"sort"

	"sortbench/pkg/common"
)

// AddValues turns a key vector into records with deterministic values:
// each record's value is its original input index.
func AddValues[K common.Key](keys []K) []common.KeyValue[K] {
	result := make([]common.KeyValue[K], 0, len(keys))
	for i, key := range keys {
		result = append(result, common.KeyValue[K]{Key: key, Value: uint64(i)})
	}
	return result
}

// Sort orders records ascending by key, establishing the invariant all
// lookups rely on. Sorting is stable so equal-key runs keep their input
// order.
func Sort[K common.Key](data []common.KeyValue[K]) {
	sort.SliceStable(data, func(i, j int) bool {
		return data[i].Key < data[j].Key
	})
}

// SortKeys orders a raw key vector ascending.
func SortKeys[K common.Key](keys []K) {
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
}

// IsSorted reports whether records are ordered ascending by key.
func IsSorted[K common.Key](data []common.KeyValue[K]) bool {
	for i := 1; i < len(data); i++ {
		if data[i].Key < data[i-1].Key {
			return false
		}
	}
	return true
}

// IsUniqueKeys reports whether a sorted key vector is duplicate free.
func IsUniqueKeys[K common.Key](keys []K) bool {
	for i := 1; i < len(keys); i++ {
		if keys[i] == keys[i-1] {
			return false
		}
	}
	return true
}

// IsUnique reports whether a sorted record array is duplicate free.
// Callers use this to decide whether duplicate-aware aggregation is
// necessary at all.
func IsUnique[K common.Key](data []common.KeyValue[K]) bool {
	for i := 1; i < len(data); i++ {
		if data[i].Key == data[i-1].Key {
			return false
		}
	}
	return true
}

// RemoveDuplicates returns a copy keeping the first record of each
// equal-key run. Input must be sorted; the input slice is not modified.
// Applying it twice yields the same result.
func RemoveDuplicates[K common.Key](data []common.KeyValue[K]) []common.KeyValue[K] {
	result := make([]common.KeyValue[K], 0, len(data))
	for i, kv := range data {
		if i > 0 && kv.Key == data[i-1].Key {
			continue
		}
		result = append(result, kv)
	}
	return result
}

// RemoveDuplicateKeys is RemoveDuplicates over a raw key vector.
func RemoveDuplicateKeys[K common.Key](keys []K) []K {
	result := make([]K, 0, len(keys))
	for i, k := range keys {
		if i > 0 && k == keys[i-1] {
			continue
		}
		result = append(result, k)
	}
	return result
}
