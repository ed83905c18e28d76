package core

import (
	"errors"

	"sortbench/pkg/common"
	"sortbench/pkg/core/structure"
	"sortbench/pkg/data"
	"sortbench/pkg/monitor"
	"sortbench/pkg/search"
	"sortbench/pkg/workload"
)

// Store owns an immutable sorted record array and answers exact-match
// lookups through a configurable correction strategy. A bloom filter
// over the keys short-circuits most absent-key lookups, whose correction
// walk cost is not bounded by estimator error.
//
// The array never changes after NewStore, so lookups need no locking.
type Store[K common.Key] struct {
	records  []common.KeyValue[K]
	bloom    *structure.BloomFilter
	est      workload.Estimator[K]
	strategy search.Strategy
	stats    *monitor.LookupStats
}

// NewStore wraps a sorted record array. The estimator may be nil, in
// which case every lookup starts from position 0.
func NewStore[K common.Key](records []common.KeyValue[K], strategy search.Strategy, est workload.Estimator[K]) (*Store[K], error) {
	if len(records) == 0 {
		return nil, errors.New("core: empty record array")
	}
	if !strategy.Valid() {
		return nil, errors.New("core: unknown strategy " + string(strategy))
	}
	for i := 1; i < len(records); i++ {
		if records[i].Key < records[i-1].Key {
			return nil, errors.New("core: records not sorted by key")
		}
	}

	bloom := structure.NewBloomFilter(uint(len(records)), 0.01)
	for _, kv := range records {
		bloom.Add(uint64(kv.Key))
	}

	return &Store[K]{
		records:  records,
		bloom:    bloom,
		est:      est,
		strategy: strategy,
		stats:    monitor.NewLookupStats(),
	}, nil
}

// Lookup answers an exact-match lookup with the store's configured
// strategy and estimator.
func (s *Store[K]) Lookup(key K) (search.Result, error) {
	s.stats.RecordLookup()

	if !s.bloom.Contains(uint64(key)) {
		s.stats.RecordNotFound()
		return search.Result{}, search.ErrNotFound
	}

	estimate := 0
	if s.est != nil {
		estimate = s.est.Predict(key)
	}
	return s.lookup(s.strategy, key, estimate)
}

// LookupWith answers a lookup with an explicit strategy and estimate,
// bypassing the store's estimator. The bloom filter still applies.
func (s *Store[K]) LookupWith(strategy search.Strategy, key K, estimate int) (search.Result, error) {
	s.stats.RecordLookup()

	if !s.bloom.Contains(uint64(key)) {
		s.stats.RecordNotFound()
		return search.Result{}, search.ErrNotFound
	}
	return s.lookup(strategy, key, estimate)
}

func (s *Store[K]) lookup(strategy search.Strategy, key K, estimate int) (search.Result, error) {
	res, err := search.Lookup(strategy, s.records, key, estimate)
	switch {
	case err == nil:
		s.stats.RecordHit()
	case errors.Is(err, search.ErrNotFound):
		s.stats.RecordNotFound()
	default:
		// Bad estimate or unknown strategy: a caller contract violation.
		s.stats.RecordFault()
	}
	return res, err
}

// Records exposes the underlying array. Callers must treat it as
// read-only.
func (s *Store[K]) Records() []common.KeyValue[K] {
	return s.records
}

func (s *Store[K]) Len() int {
	return len(s.records)
}

func (s *Store[K]) Strategy() search.Strategy {
	return s.strategy
}

// Estimator returns the store's estimator, or nil.
func (s *Store[K]) Estimator() workload.Estimator[K] {
	return s.est
}

// Stats merges lookup counters and bloom filter stats.
func (s *Store[K]) Stats() map[string]any {
	stats := make(map[string]any)
	for k, v := range s.stats.Snapshot() {
		stats[k] = v
	}
	stats["hit_ratio"] = s.stats.HitRatio()
	stats["records"] = len(s.records)
	stats["unique"] = data.IsUnique(s.records)
	for k, v := range s.bloom.Stats() {
		stats[k] = v
	}
	return stats
}
