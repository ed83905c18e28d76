package search

import (
	"errors"
	"testing"

	"sortbench/pkg/common"
)

// pairs builds a record array from alternating key, value arguments.
func pairs(t *testing.T, kv ...uint64) []common.KeyValue[uint64] {
	t.Helper()
	if len(kv)%2 != 0 {
		t.Fatalf("pairs needs an even argument count, got %d", len(kv))
	}
	records := make([]common.KeyValue[uint64], 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		records = append(records, common.KeyValue[uint64]{Key: kv[i], Value: kv[i+1]})
	}
	return records
}

func TestBinaryAggregatesDuplicateRun(t *testing.T) {
	records := pairs(t, 1, 10, 3, 20, 3, 21, 7, 30)

	res, err := Binary(records, 3)
	if err != nil {
		t.Fatalf("binary search: %v", err)
	}
	if res.Sum != 41 || res.Count != 2 {
		t.Fatalf("expected sum=41 count=2, got sum=%d count=%d", res.Sum, res.Count)
	}
}

func TestBinaryNotFound(t *testing.T) {
	records := pairs(t, 1, 10, 3, 20, 3, 21, 7, 30)

	for _, key := range []uint64{0, 2, 4, 6, 8, 100} {
		if _, err := Binary(records, key); !errors.Is(err, ErrNotFound) {
			t.Fatalf("key %d: expected ErrNotFound, got %v", key, err)
		}
	}
}

func TestBinaryEmptyArray(t *testing.T) {
	if _, err := Binary([]common.KeyValue[uint64]{}, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty array, got %v", err)
	}
}

func TestAllStrategiesAgreeOnExample(t *testing.T) {
	records := pairs(t, 1, 10, 3, 20, 3, 21, 7, 30)

	for _, strategy := range Strategies {
		for estimate := 0; estimate < len(records); estimate++ {
			res, err := Lookup(strategy, records, 3, estimate)
			if err != nil {
				t.Fatalf("%s estimate=%d: %v", strategy, estimate, err)
			}
			if res.Sum != 41 || res.Count != 2 {
				t.Fatalf("%s estimate=%d: expected sum=41 count=2, got sum=%d count=%d",
					strategy, estimate, res.Sum, res.Count)
			}
		}
	}
}

func TestSingleRecordArray(t *testing.T) {
	records := pairs(t, 5, 100)

	for _, strategy := range Strategies {
		res, err := Lookup(strategy, records, 5, 0)
		if err != nil {
			t.Fatalf("%s: %v", strategy, err)
		}
		if res.Sum != 100 || res.Count != 1 {
			t.Fatalf("%s: expected sum=100 count=1, got sum=%d count=%d", strategy, res.Sum, res.Count)
		}
	}
}

// buildSpread returns a sorted array where every even key k in [0, 2n)
// appears (k/2)%3+1 times, so it mixes unique keys and duplicate runs of
// length 2 and 3, with odd keys absent throughout.
func buildSpread(n int) []common.KeyValue[uint64] {
	var records []common.KeyValue[uint64]
	value := uint64(0)
	for i := 0; i < n; i++ {
		key := uint64(2 * i)
		for c := 0; c <= i%3; c++ {
			records = append(records, common.KeyValue[uint64]{Key: key, Value: value})
			value++
		}
	}
	return records
}

func TestEstimateIndependence(t *testing.T) {
	records := buildSpread(24)

	for key := uint64(0); key < 48; key += 2 {
		want, err := Binary(records, key)
		if err != nil {
			t.Fatalf("binary key=%d: %v", key, err)
		}

		for estimate := 0; estimate < len(records); estimate++ {
			for _, fn := range []struct {
				name string
				call func() (Result, error)
			}{
				{"linear", func() (Result, error) { return LinearCorrect(records, key, estimate) }},
				{"exponential", func() (Result, error) { return ExponentialCorrect(records, key, estimate) }},
			} {
				got, err := fn.call()
				if err != nil {
					t.Fatalf("%s key=%d estimate=%d: %v", fn.name, key, estimate, err)
				}
				if got != want {
					t.Fatalf("%s key=%d estimate=%d: got %+v, want %+v", fn.name, key, estimate, got, want)
				}
			}
		}
	}
}

func TestCorrectionNotFound(t *testing.T) {
	records := buildSpread(16)

	// Odd keys never occur; probe below, between and above the key range.
	for _, key := range []uint64{1, 7, 15, 31, 1000} {
		for estimate := 0; estimate < len(records); estimate++ {
			if _, err := LinearCorrect(records, key, estimate); !errors.Is(err, ErrNotFound) {
				t.Fatalf("linear key=%d estimate=%d: expected ErrNotFound, got %v", key, estimate, err)
			}
			if _, err := ExponentialCorrect(records, key, estimate); !errors.Is(err, ErrNotFound) {
				t.Fatalf("exponential key=%d estimate=%d: expected ErrNotFound, got %v", key, estimate, err)
			}
		}
	}
}

func TestCorrectionEstimateOutOfRange(t *testing.T) {
	records := pairs(t, 1, 10, 3, 20)

	for _, estimate := range []int{-1, 2, 100} {
		if _, err := LinearCorrect(records, 3, estimate); !errors.Is(err, ErrEstimateOutOfRange) {
			t.Fatalf("linear estimate=%d: expected ErrEstimateOutOfRange, got %v", estimate, err)
		}
		if _, err := ExponentialCorrect(records, 3, estimate); !errors.Is(err, ErrEstimateOutOfRange) {
			t.Fatalf("exponential estimate=%d: expected ErrEstimateOutOfRange, got %v", estimate, err)
		}
	}

	// An empty array leaves no valid estimate at all.
	empty := []common.KeyValue[uint64]{}
	if _, err := LinearCorrect(empty, 3, 0); !errors.Is(err, ErrEstimateOutOfRange) {
		t.Fatalf("linear on empty: expected ErrEstimateOutOfRange, got %v", err)
	}
	if _, err := ExponentialCorrect(empty, 3, 0); !errors.Is(err, ErrEstimateOutOfRange) {
		t.Fatalf("exponential on empty: expected ErrEstimateOutOfRange, got %v", err)
	}
}

func TestRunTouchingArrayBoundaries(t *testing.T) {
	// Runs at index 0 and at the last index, probed from every estimate.
	records := pairs(t, 3, 1, 3, 2, 3, 4, 5, 8, 9, 16, 9, 32)

	cases := []struct {
		key uint64
		sum uint64
		cnt int
	}{
		{3, 7, 3},
		{5, 8, 1},
		{9, 48, 2},
	}
	for _, tc := range cases {
		for _, strategy := range Strategies {
			for estimate := 0; estimate < len(records); estimate++ {
				res, err := Lookup(strategy, records, tc.key, estimate)
				if err != nil {
					t.Fatalf("%s key=%d estimate=%d: %v", strategy, tc.key, estimate, err)
				}
				if res.Sum != tc.sum || res.Count != tc.cnt {
					t.Fatalf("%s key=%d estimate=%d: got sum=%d count=%d, want sum=%d count=%d",
						strategy, tc.key, estimate, res.Sum, res.Count, tc.sum, tc.cnt)
				}
			}
		}
	}
}

func TestBinaryRange(t *testing.T) {
	records := pairs(t, 1, 10, 3, 20, 3, 21, 7, 30, 9, 40)

	res, err := BinaryRange(records, 3, 0, 4)
	if err != nil {
		t.Fatalf("range search: %v", err)
	}
	if res.Sum != 41 || res.Count != 2 {
		t.Fatalf("expected sum=41 count=2, got sum=%d count=%d", res.Sum, res.Count)
	}

	// The run starts inside the range but extends past its end; the
	// aggregation still covers the full run.
	res, err = BinaryRange(records, 3, 0, 2)
	if err != nil {
		t.Fatalf("range search with run past end: %v", err)
	}
	if res.Sum != 41 || res.Count != 2 {
		t.Fatalf("expected sum=41 count=2, got sum=%d count=%d", res.Sum, res.Count)
	}

	// Key exists but outside the range: miss, despite the diagnostic probe.
	if _, err := BinaryRange(records, 7, 0, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for key outside range, got %v", err)
	}

	if _, err := BinaryRange(records, 2, 0, len(records)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for absent key, got %v", err)
	}

	for _, tc := range []struct{ start, end int }{{-1, 2}, {0, 6}, {3, 1}} {
		if _, err := BinaryRange(records, 3, tc.start, tc.end); !errors.Is(err, ErrEstimateOutOfRange) {
			t.Fatalf("range [%d, %d): expected ErrEstimateOutOfRange, got %v", tc.start, tc.end, err)
		}
	}
}

func TestLookupUnknownStrategy(t *testing.T) {
	records := pairs(t, 1, 10)

	if _, err := Lookup(Strategy("quantum"), records, 1, 0); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
	if Strategy("quantum").Valid() {
		t.Fatal("expected quantum to be invalid")
	}
	for _, s := range Strategies {
		if !s.Valid() {
			t.Fatalf("expected %s to be valid", s)
		}
	}
}

func TestDeterminism(t *testing.T) {
	records := buildSpread(32)

	for _, strategy := range Strategies {
		first, err := Lookup(strategy, records, 20, 5)
		if err != nil {
			t.Fatalf("%s: %v", strategy, err)
		}
		for i := 0; i < 10; i++ {
			got, err := Lookup(strategy, records, 20, 5)
			if err != nil {
				t.Fatalf("%s repeat %d: %v", strategy, i, err)
			}
			if got != first {
				t.Fatalf("%s repeat %d: got %+v, want %+v", strategy, i, got, first)
			}
		}
	}
}

func benchmarkRecords(n int) []common.KeyValue[uint64] {
	records := make([]common.KeyValue[uint64], n)
	key := uint64(0)
	for i := range records {
		key += uint64(i%7) + 1
		records[i] = common.KeyValue[uint64]{Key: key, Value: uint64(i)}
	}
	return records
}

func BenchmarkBinary(b *testing.B) {
	records := benchmarkRecords(1 << 20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := records[i%len(records)].Key
		if _, err := Binary(records, key); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLinearCorrect(b *testing.B) {
	records := benchmarkRecords(1 << 20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pos := i % len(records)
		// Estimate off by up to 64 positions.
		estimate := pos - 32 + i%64
		if estimate < 0 {
			estimate = 0
		}
		if estimate >= len(records) {
			estimate = len(records) - 1
		}
		if _, err := LinearCorrect(records, records[pos].Key, estimate); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExponentialCorrect(b *testing.B) {
	records := benchmarkRecords(1 << 20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pos := i % len(records)
		// Long-tailed estimate error up to 4096 positions.
		estimate := pos - 2048 + i%4096
		if estimate < 0 {
			estimate = 0
		}
		if estimate >= len(records) {
			estimate = len(records) - 1
		}
		if _, err := ExponentialCorrect(records, records[pos].Key, estimate); err != nil {
			b.Fatal(err)
		}
	}
}
