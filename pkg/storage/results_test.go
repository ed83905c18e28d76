package storage

import (
	"path/filepath"
	"testing"
	"time"

	"sortbench/pkg/bench"
)

func TestResultStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	s, err := OpenResultStore(path)
	if err != nil {
		t.Fatalf("open result store: %v", err)
	}
	defer s.Close()

	first := bench.Measurement{
		RunAt:    time.Unix(0, 1000),
		Strategy: "linear",
		Dataset:  "books_uint64",
		Lookups:  100,
		TotalNs:  5000,
		AvgNs:    50,
		Failures: 0,
	}
	second := bench.Measurement{
		RunAt:    time.Unix(0, 2000),
		Strategy: "exponential",
		Dataset:  "books_uint64",
		Lookups:  100,
		TotalNs:  4000,
		AvgNs:    40,
		Failures: 2,
	}

	if err := s.Append(first); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendBatch([]bench.Measurement{second}); err != nil {
		t.Fatalf("append batch: %v", err)
	}

	ms, err := s.LoadAll()
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(ms) != 2 {
		t.Fatalf("expected 2 measurements, got %d", len(ms))
	}
	if ms[0] != first {
		t.Fatalf("first measurement: got %+v, want %+v", ms[0], first)
	}
	if ms[1] != second {
		t.Fatalf("second measurement: got %+v, want %+v", ms[1], second)
	}
}

func TestResultStoreTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	s, err := OpenResultStore(path)
	if err != nil {
		t.Fatalf("open result store: %v", err)
	}
	defer s.Close()

	m := bench.Measurement{RunAt: time.Now(), Strategy: "binary", Dataset: "d", Lookups: 1}
	if err := s.Append(m); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := s.Truncate(); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	ms, err := s.LoadAll()
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(ms) != 0 {
		t.Fatalf("expected empty store after truncate, got %d measurements", len(ms))
	}
}

func TestResultStoreEmptyBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	s, err := OpenResultStore(path)
	if err != nil {
		t.Fatalf("open result store: %v", err)
	}
	defer s.Close()

	if err := s.AppendBatch(nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}
}
