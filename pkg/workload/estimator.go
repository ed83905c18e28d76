package workload

import (
	"sort"
	"sync"

	"sortbench/pkg/common"
)

// Estimator produces an approximate position for a key in a sorted
// array. It stands in for the external index structure (learned model,
// tree, ...) that the benchmark corrects for; the contract guarantees a
// position in [0, len) but says nothing about accuracy. Implementations
// handed to a concurrent store must be safe for concurrent Predict
// calls.
type Estimator[K common.Key] interface {
	Predict(key K) int
}

// Oracle predicts the exact lower-bound position of a key. It is the
// zero-error baseline estimator.
type Oracle[K common.Key] struct {
	data []common.KeyValue[K]
}

func NewOracle[K common.Key](data []common.KeyValue[K]) *Oracle[K] {
	return &Oracle[K]{data: data}
}

func (o *Oracle[K]) Predict(key K) int {
	pos := sort.Search(len(o.data), func(i int) bool {
		return o.data[i].Key >= key
	})
	if pos == len(o.data) && pos > 0 {
		pos--
	}
	return pos
}

// NoisyOracle perturbs the oracle position by a signed random error of
// bounded magnitude, clamped into [0, len). It simulates an estimator of
// configurable quality while staying fully deterministic for a given
// seed. Predict is safe for concurrent use; the generator's state is
// guarded by a mutex.
type NoisyOracle[K common.Key] struct {
	oracle *Oracle[K]
	mu     sync.Mutex
	rand   *Rand
	maxErr int32
	length int
}

func NewNoisyOracle[K common.Key](data []common.KeyValue[K], r *Rand, maxErr int) *NoisyOracle[K] {
	if maxErr < 0 {
		maxErr = 0
	}
	return &NoisyOracle[K]{
		oracle: NewOracle(data),
		rand:   r,
		maxErr: int32(maxErr),
		length: len(data),
	}
}

func (e *NoisyOracle[K]) Predict(key K) int {
	pos := e.oracle.Predict(key)
	if e.maxErr > 0 {
		e.mu.Lock()
		err := e.rand.Int32Range(-e.maxErr, e.maxErr)
		e.mu.Unlock()
		pos += int(err)
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= e.length {
		pos = e.length - 1
	}
	return pos
}
