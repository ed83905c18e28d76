package bench

import (
	"time"

	"sortbench/pkg/baseline"
	"sortbench/pkg/common"
	"sortbench/pkg/search"
	"sortbench/pkg/workload"
)

// Measurement is one run of a single strategy over a lookup set.
type Measurement struct {
	RunAt    time.Time
	Strategy string
	Dataset  string
	Lookups  int
	TotalNs  uint64
	AvgNs    float64
	Failures int // lookups whose aggregate did not match the expected sum
}

// Options configure a run.
type Options struct {
	Dataset string // dataset label recorded in the measurement
	PinCore int    // core to pin to; negative disables pinning
}

// Run measures one correction strategy over every lookup, verifying each
// aggregate against the expected sum. The estimator's prediction cost is
// part of the measured time, as it would be in a real index. A nil
// estimator always predicts position 0.
func Run[K common.Key](strategy search.Strategy, records []common.KeyValue[K], lookups []common.Lookup[K], est workload.Estimator[K], opts Options) (Measurement, error) {
	if opts.PinCore >= 0 {
		if err := PinToCore(opts.PinCore); err != nil {
			return Measurement{}, err
		}
	}

	failures := 0
	total := Timing(func() {
		for _, lk := range lookups {
			estimate := 0
			if est != nil {
				estimate = est.Predict(lk.Key)
			}
			res, err := search.Lookup(strategy, records, lk.Key, estimate)
			if err != nil || res.Sum != lk.Expected {
				failures++
			}
		}
	})

	return newMeasurement(string(strategy), opts.Dataset, len(lookups), total, failures), nil
}

// RunBaseline measures the B-tree baseline over the same lookup set.
func RunBaseline[K common.Key](ix *baseline.Index[K], lookups []common.Lookup[K], opts Options) (Measurement, error) {
	if opts.PinCore >= 0 {
		if err := PinToCore(opts.PinCore); err != nil {
			return Measurement{}, err
		}
	}

	failures := 0
	total := Timing(func() {
		for _, lk := range lookups {
			res, err := ix.Lookup(lk.Key)
			if err != nil || res.Sum != lk.Expected {
				failures++
			}
		}
	})

	return newMeasurement("btree", opts.Dataset, len(lookups), total, failures), nil
}

func newMeasurement(strategy, dataset string, lookups int, totalNs uint64, failures int) Measurement {
	m := Measurement{
		RunAt:    time.Now(),
		Strategy: strategy,
		Dataset:  dataset,
		Lookups:  lookups,
		TotalNs:  totalNs,
		Failures: failures,
	}
	if lookups > 0 {
		m.AvgNs = float64(totalNs) / float64(lookups)
	}
	return m
}
