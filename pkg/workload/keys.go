package workload

import (
	"fmt"

	"sortbench/pkg/common"
	"sortbench/pkg/data"
)

// Distribution names a synthetic key distribution.
type Distribution string

const (
	// DistDense produces consecutive keys 0..n-1.
	DistDense Distribution = "dense"
	// DistUniform produces keys with uniformly random gaps, so estimator
	// error stays small and roughly constant.
	DistUniform Distribution = "uniform"
	// DistZOrder produces Morton-encoded random 3D points: clustered keys
	// with natural duplicates.
	DistZOrder Distribution = "zorder"
)

func (d Distribution) Valid() bool {
	switch d {
	case DistDense, DistUniform, DistZOrder:
		return true
	}
	return false
}

// Keys generates n sorted keys from the named distribution.
func Keys[K common.Key](r *Rand, dist Distribution, n int, maxGap uint32) ([]K, error) {
	switch dist {
	case DistDense:
		return DenseKeys[K](n), nil
	case DistUniform:
		return UniformKeys[K](r, n, maxGap), nil
	case DistZOrder:
		return ZOrderKeys[K](r, n), nil
	default:
		return nil, fmt.Errorf("workload: unknown distribution %q", string(dist))
	}
}

// DenseKeys returns the keys 0..n-1.
func DenseKeys[K common.Key](n int) []K {
	keys := make([]K, n)
	for i := range keys {
		keys[i] = K(i)
	}
	return keys
}

// UniformKeys returns n ascending keys separated by random gaps in
// [1, maxGap]. The result is sorted by construction and duplicate free.
func UniformKeys[K common.Key](r *Rand, n int, maxGap uint32) []K {
	if maxGap == 0 {
		maxGap = 1
	}
	keys := make([]K, n)
	var current K
	for i := range keys {
		current += K(r.Uint32Range(1, maxGap))
		keys[i] = current
	}
	return keys
}

// ZOrderKeys returns n sorted z-order keys of random 3D points. Distinct
// points can interleave to nearby keys and repeated points to equal ones,
// so the result usually contains duplicate runs.
func ZOrderKeys[K common.Key](r *Rand, n int) []K {
	keys := make([]K, n)
	for i := range keys {
		code, err := common.Encode3D(
			r.Uint32Range(0, 1023),
			r.Uint32Range(0, 1023),
			r.Uint32Range(0, 1023),
		)
		if err != nil {
			panic(err) // coordinates never exceed the 10-bit bound
		}
		keys[i] = K(code)
	}
	data.SortKeys(keys)
	return keys
}
