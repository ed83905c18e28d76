package workload

import (
	"fmt"
	"sync"
	"testing"

	"sortbench/pkg/data"
)

func TestRandIsDeterministicPerSeed(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)
	for i := 0; i < 1000; i++ {
		if a.Uint32() != b.Uint32() {
			t.Fatalf("sequences diverged at step %d", i)
		}
	}

	c := NewRand(43)
	same := true
	a = NewRand(42)
	for i := 0; i < 16; i++ {
		if a.Uint32() != c.Uint32() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical prefixes")
	}
}

func TestRandZeroSeedFallsBack(t *testing.T) {
	r := NewRand(0)
	if r.Uint32() == 0 && r.Uint32() == 0 && r.Uint32() == 0 {
		t.Fatal("zero seed produced a stuck generator")
	}
}

func TestRandRanges(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 1000; i++ {
		if v := r.Uint32Range(10, 20); v < 10 || v > 20 {
			t.Fatalf("Uint32Range out of bounds: %d", v)
		}
		if v := r.Int32Range(-5, 5); v < -5 || v > 5 {
			t.Fatalf("Int32Range out of bounds: %d", v)
		}
		if v := r.Intn(13); v < 0 || v >= 13 {
			t.Fatalf("Intn out of bounds: %d", v)
		}
		if v := r.ScaleFactor(); v < 0 || v > 1 {
			t.Fatalf("ScaleFactor out of bounds: %f", v)
		}
	}
}

func TestDenseKeys(t *testing.T) {
	keys := DenseKeys[uint64](5)
	for i, k := range keys {
		if k != uint64(i) {
			t.Fatalf("key %d: expected %d, got %d", i, i, k)
		}
	}
}

func TestUniformKeysSortedAndUnique(t *testing.T) {
	keys := UniformKeys[uint64](NewRand(1), 10000, 16)
	if len(keys) != 10000 {
		t.Fatalf("expected 10000 keys, got %d", len(keys))
	}
	for i := 1; i < len(keys); i++ {
		gap := keys[i] - keys[i-1]
		if gap < 1 || gap > 16 {
			t.Fatalf("gap %d at index %d out of [1, 16]", gap, i)
		}
	}
	if !data.IsUniqueKeys(keys) {
		t.Fatal("expected uniform keys to be duplicate free")
	}
}

func TestZOrderKeysSortedWithinBounds(t *testing.T) {
	keys := ZOrderKeys[uint64](NewRand(1), 5000)
	for i, k := range keys {
		if k >= 1<<30 {
			t.Fatalf("key %d exceeds 30 bits: %d", i, k)
		}
		if i > 0 && k < keys[i-1] {
			t.Fatalf("keys not sorted at index %d", i)
		}
	}
}

func TestKeysUnknownDistribution(t *testing.T) {
	if _, err := Keys[uint64](NewRand(1), Distribution("normal"), 10, 1); err == nil {
		t.Fatal("expected error for unknown distribution")
	}
	if Distribution("normal").Valid() {
		t.Fatal("expected normal to be invalid")
	}
}

func TestOraclePredictsExactPosition(t *testing.T) {
	records := data.AddValues(UniformKeys[uint64](NewRand(3), 1000, 8))
	oracle := NewOracle(records)

	for i, kv := range records {
		if pos := oracle.Predict(kv.Key); pos != i {
			t.Fatalf("key %d: expected position %d, got %d", kv.Key, i, pos)
		}
	}
}

func TestNoisyOracleStaysBounded(t *testing.T) {
	records := data.AddValues(UniformKeys[uint64](NewRand(3), 1000, 8))
	oracle := NewOracle(records)
	noisy := NewNoisyOracle(records, NewRand(9), 50)

	for _, kv := range records {
		pos := noisy.Predict(kv.Key)
		if pos < 0 || pos >= len(records) {
			t.Fatalf("prediction %d outside [0, %d)", pos, len(records))
		}
		truth := oracle.Predict(kv.Key)
		if diff := pos - truth; diff < -50 || diff > 50 {
			t.Fatalf("prediction error %d exceeds bound 50", diff)
		}
	}
}

func TestNoisyOracleConcurrentPredict(t *testing.T) {
	records := data.AddValues(UniformKeys[uint64](NewRand(3), 1000, 8))
	noisy := NewNoisyOracle(records, NewRand(9), 50)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				kv := records[(g*1000+i)%len(records)]
				if pos := noisy.Predict(kv.Key); pos < 0 || pos >= len(records) {
					errs <- fmt.Errorf("prediction %d outside [0, %d)", pos, len(records))
					return
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent predict: %v", err)
	}
}

func TestLookupsCarryExpectedAggregates(t *testing.T) {
	records := data.AddValues([]uint64{1, 3, 3, 7})

	lookups, err := Lookups(NewRand(5), records, 100)
	if err != nil {
		t.Fatalf("build lookups: %v", err)
	}
	if len(lookups) != 100 {
		t.Fatalf("expected 100 lookups, got %d", len(lookups))
	}
	for _, lk := range lookups {
		var want uint64
		switch lk.Key {
		case 1:
			want = 0
		case 3:
			want = 1 + 2
		case 7:
			want = 3
		default:
			t.Fatalf("lookup key %d not drawn from the array", lk.Key)
		}
		if lk.Expected != want {
			t.Fatalf("key %d: expected aggregate %d, got %d", lk.Key, want, lk.Expected)
		}
	}
}

func TestLookupsEmptyArray(t *testing.T) {
	if _, err := Lookups[uint64](NewRand(5), nil, 10); err == nil {
		t.Fatal("expected error for empty array")
	}
}
