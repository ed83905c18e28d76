package workload

import (
	"errors"
	"fmt"

	"sortbench/pkg/common"
	"sortbench/pkg/search"
)

// Lookups draws n present keys from the array and records the aggregate
// each strategy is expected to return, computed once via binary search.
func Lookups[K common.Key](r *Rand, records []common.KeyValue[K], n int) ([]common.Lookup[K], error) {
	if len(records) == 0 {
		return nil, errors.New("workload: cannot draw lookups from an empty array")
	}

	lookups := make([]common.Lookup[K], n)
	for i := range lookups {
		key := records[r.Intn(len(records))].Key
		res, err := search.Binary(records, key)
		if err != nil {
			return nil, fmt.Errorf("workload: expected aggregate for key %d: %w", key, err)
		}
		lookups[i] = common.Lookup[K]{Key: key, Expected: res.Sum}
	}
	return lookups, nil
}
