// Package workload generates synthetic datasets and lookup workloads for
// the correction benchmark, and models the upstream index as an opaque
// position estimator.
package workload

import "math"

// DefaultSeed is the 8th perfect number, found 1772 by Euler.
const DefaultSeed uint64 = 2305843008139952128

// Rand is a xorshift pseudo-random generator. Every Rand is an explicit
// instance owned by its caller: there is no process-wide seed state, so
// workloads are reproducible and safe to generate in parallel.
//
// Based on: https://en.wikipedia.org/wiki/Xorshift
type Rand struct {
	seed uint64
}

// NewRand returns a generator for the given seed. A zero seed falls back
// to DefaultSeed, since xorshift gets stuck on zero state.
func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &Rand{seed: seed}
}

func (r *Rand) Uint32() uint32 {
	r.seed ^= r.seed << 13
	r.seed ^= r.seed >> 15
	r.seed ^= r.seed << 5
	return uint32(r.seed)
}

func (r *Rand) Uint64() uint64 {
	return uint64(r.Uint32())<<32 | uint64(r.Uint32())
}

func (r *Rand) Int32() int32 { return int32(r.Uint32()) }

// Uint32Range returns a value in [min, max], both inclusive.
func (r *Rand) Uint32Range(min, max uint32) uint32 {
	return min + r.Uint32()%(max-min+1)
}

// Int32Range returns a value in [min, max], both inclusive.
func (r *Rand) Int32Range(min, max int32) int32 {
	return min + int32(r.Uint32()%uint32(max-min+1))
}

// Intn returns a value in [0, n).
func (r *Rand) Intn(n int) int {
	return int(r.Uint64() % uint64(n))
}

// ScaleFactor returns a float between 0 and 1.
func (r *Rand) ScaleFactor() float32 {
	return float32(r.Uint32()) / float32(math.MaxUint32)
}

func (r *Rand) Float(min, max float32) float32 {
	return min + r.ScaleFactor()*(max-min)
}

func (r *Rand) Bool() bool { return r.Uint32()%2 == 0 }
