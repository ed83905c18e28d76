package structure

import (
	"hash/fnv"
	"math"
	"sync"
)

// BloomFilter answers "definitely absent" for keys that were never added.
// The lookup store uses it to short-circuit correction searches for
// absent keys, whose walk cost is otherwise unbounded by estimator error.
type BloomFilter struct {
	bitset []bool
	k      uint
	m      uint
	count  uint
	lock   sync.RWMutex
}

// NewBloomFilter sizes the filter for n expected keys at false-positive
// probability p using the standard optimum:
//
//	m = -(n * ln(p)) / (ln(2)^2)
//	k = (m / n) * ln(2)
func NewBloomFilter(n uint, p float64) *BloomFilter {
	if n == 0 {
		n = 1
	}
	m := uint(math.Ceil(-float64(n) * math.Log(p) / (math.Ln2 * math.Ln2)))
	k := uint(math.Ceil((float64(m) / float64(n)) * math.Ln2))

	return &BloomFilter{
		bitset: make([]bool, m),
		k:      k,
		m:      m,
	}
}

func (bf *BloomFilter) Add(key uint64) {
	bf.lock.Lock()
	defer bf.lock.Unlock()

	h1, h2 := hash1(key), hash2(key)
	for i := uint(0); i < bf.k; i++ {
		pos := (h1 + uint32(i)*h2) % uint32(bf.m)
		bf.bitset[pos] = true
	}
	bf.count++
}

func (bf *BloomFilter) Contains(key uint64) bool {
	bf.lock.RLock()
	defer bf.lock.RUnlock()

	h1, h2 := hash1(key), hash2(key)
	for i := uint(0); i < bf.k; i++ {
		pos := (h1 + uint32(i)*h2) % uint32(bf.m)
		if !bf.bitset[pos] {
			return false
		}
	}
	return true
}

func (bf *BloomFilter) Stats() map[string]any {
	bf.lock.RLock()
	defer bf.lock.RUnlock()
	return map[string]any{
		"bloom_bits_size": bf.m,
		"bloom_hashes":    bf.k,
		"bloom_count":     bf.count,
	}
}

func hash1(n uint64) uint32 {
	h := fnv.New32a()
	h.Write([]byte{
		byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24),
		byte(n >> 32), byte(n >> 40), byte(n >> 48), byte(n >> 56),
	})
	return h.Sum32()
}

func hash2(n uint64) uint32 {
	return uint32(n ^ (n >> 32))
}
