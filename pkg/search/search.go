// Package search turns an approximate position estimate into an exact
// answer over a sorted record array. Three interchangeable strategies are
// provided: bounded binary search, linear correction and exponential
// correction. All of them aggregate the full equal-key run, so duplicate
// keys are handled identically everywhere.
//
// Every function is pure and reads the array through bounds-checked
// indexing only; any number of lookups may run in parallel against the
// same array.
package search

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"sortbench/pkg/common"
)

// Result is the aggregate over every record matching a lookup key.
type Result struct {
	Sum   uint64 // sum of the values of all qualifying records
	Count int    // number of qualifying records
}

var (
	// ErrNotFound is returned when no record matches the lookup key.
	ErrNotFound = errors.New("search: key not found")

	// ErrEstimateOutOfRange is returned when a position estimate violates
	// the contract 0 <= estimate < len(data).
	ErrEstimateOutOfRange = errors.New("search: estimate out of range")
)

// Strategy names a correction algorithm.
type Strategy string

const (
	StrategyBinary      Strategy = "binary"
	StrategyLinear      Strategy = "linear"
	StrategyExponential Strategy = "exponential"
)

// Strategies lists all correction strategies in their canonical order.
var Strategies = []Strategy{StrategyBinary, StrategyLinear, StrategyExponential}

func (s Strategy) Valid() bool {
	switch s {
	case StrategyBinary, StrategyLinear, StrategyExponential:
		return true
	}
	return false
}

// Lookup dispatches to the named strategy. Binary search ignores the
// estimate.
func Lookup[K common.Key](s Strategy, data []common.KeyValue[K], key K, estimate int) (Result, error) {
	switch s {
	case StrategyBinary:
		return Binary(data, key)
	case StrategyLinear:
		return LinearCorrect(data, key, estimate)
	case StrategyExponential:
		return ExponentialCorrect(data, key, estimate)
	default:
		return Result{}, fmt.Errorf("search: unknown strategy %q", string(s))
	}
}

// Binary returns the aggregate over all records equal to key, or
// ErrNotFound if none matches. data must be sorted ascending by key.
func Binary[K common.Key](data []common.KeyValue[K], key K) (Result, error) {
	pos := lowerBound(data, key, 0, len(data))
	if pos == len(data) || data[pos].Key != key {
		return Result{}, ErrNotFound
	}
	return aggregateForward(data, key, pos), nil
}

// BinaryRange is Binary restricted to the sub-range [start, end). It is
// meant for callers whose estimate yields a reliable enclosing range. On
// a miss it probes the full array and logs where the key actually lives;
// the probe is diagnostic only and the result is still ErrNotFound, since
// silently widening the range would change the cost profile.
func BinaryRange[K common.Key](data []common.KeyValue[K], key K, start, end int) (Result, error) {
	if start < 0 || end > len(data) || start > end {
		return Result{}, ErrEstimateOutOfRange
	}

	pos := lowerBound(data, key, start, end)
	if pos == end || data[pos].Key != key {
		if full := lowerBound(data, key, 0, len(data)); full < len(data) && data[full].Key == key {
			log.Printf("[search] key %d not found between %d and %d, correct index: %d", key, start, end, full)
		}
		return Result{}, ErrNotFound
	}
	return aggregateForward(data, key, pos), nil
}

// LinearCorrect walks from the estimate toward the key one record at a
// time and aggregates the equal-key run. Cost is proportional to the
// estimator error plus the run length, which makes it the right choice
// when the estimator is usually close.
func LinearCorrect[K common.Key](data []common.KeyValue[K], key K, estimate int) (Result, error) {
	limit := len(data)
	if estimate < 0 || estimate >= limit {
		return Result{}, fmt.Errorf("%w: estimate %d, length %d", ErrEstimateOutOfRange, estimate, limit)
	}

	// Estimated too low: skip forward to the key, then sum the run.
	if data[estimate].Key < key {
		estimate++
		for estimate < limit && data[estimate].Key < key {
			estimate++
		}

		var res Result
		for estimate < limit && data[estimate].Key == key {
			res.Sum += data[estimate].Value
			res.Count++
			estimate++
		}
		if res.Count == 0 {
			return Result{}, ErrNotFound
		}
		return res, nil
	}

	// Estimated too high: mirror of the above, walking backward. The run
	// is summed down to and including index 0.
	if data[estimate].Key > key {
		estimate--
		for estimate >= 0 && data[estimate].Key > key {
			estimate--
		}

		var res Result
		for estimate >= 0 && data[estimate].Key == key {
			res.Sum += data[estimate].Value
			res.Count++
			estimate--
		}
		if res.Count == 0 {
			return Result{}, ErrNotFound
		}
		return res, nil
	}

	// Estimated just about right: sum the run in both directions, each
	// record exactly once.
	var res Result
	for i := estimate; i >= 0 && data[i].Key == key; i-- {
		res.Sum += data[i].Value
		res.Count++
	}
	for i := estimate + 1; i < limit && data[i].Key == key; i++ {
		res.Sum += data[i].Value
		res.Count++
	}
	return res, nil
}

// ExponentialCorrect steps from the estimate toward the key with doubling
// step sizes until the step overshoots or hits an array boundary, then
// finishes with a bounded linear scan. Cost is logarithmic in the
// estimator error, which suits estimators with long-tailed error.
func ExponentialCorrect[K common.Key](data []common.KeyValue[K], key K, estimate int) (Result, error) {
	limit := len(data)
	if estimate < 0 || estimate >= limit {
		return Result{}, fmt.Errorf("%w: estimate %d, length %d", ErrEstimateOutOfRange, estimate, limit)
	}

	// Estimated just about right: behaves like linear correction.
	if data[estimate].Key == key {
		var res Result
		for i := estimate; i >= 0 && data[i].Key == key; i-- {
			res.Sum += data[i].Value
			res.Count++
		}
		for i := estimate + 1; i < limit && data[i].Key == key; i++ {
			res.Sum += data[i].Value
			res.Count++
		}
		return res, nil
	}

	step := 1
	if data[estimate].Key < key {
		// Estimated too low: exponential steps upward. prev is the last
		// position known to be below the key; a step past the array end
		// ends the bracket the same way an overshoot does.
		prev := estimate
		estimate += step
		for estimate < limit && data[estimate].Key < key {
			prev = estimate
			step <<= 1
			estimate += step
		}
		estimate = prev
	} else {
		// Estimated too high: exponential steps downward, clamped at 0.
		estimate -= step
		for estimate > 0 && data[estimate].Key >= key {
			step <<= 1
			estimate -= step
		}
		if estimate < 0 {
			estimate = 0
		}
	}

	// Rather close now: the next exponential step would overshoot. Scan
	// forward to the first occurrence of the key.
	for estimate < limit && data[estimate].Key < key {
		estimate++
	}

	res := aggregateForward(data, key, estimate)
	if res.Count == 0 {
		return Result{}, ErrNotFound
	}
	return res, nil
}

// lowerBound returns the first position in [start, end) whose key is
// >= key, or end if there is none.
func lowerBound[K common.Key](data []common.KeyValue[K], key K, start, end int) int {
	return start + sort.Search(end-start, func(i int) bool {
		return data[start+i].Key >= key
	})
}

// aggregateForward sums the equal-key run starting at pos. pos may be
// len(data), in which case the result is empty.
func aggregateForward[K common.Key](data []common.KeyValue[K], key K, pos int) Result {
	var res Result
	for ; pos < len(data) && data[pos].Key == key; pos++ {
		res.Sum += data[pos].Value
		res.Count++
	}
	return res
}
