package monitor

import (
	"sync/atomic"
)

// LookupStats counts lookup outcomes. All counters are atomic so lookups
// can record from any number of goroutines.
type LookupStats struct {
	LookupCount   uint64
	HitCount      uint64
	NotFoundCount uint64
	FaultCount    uint64 // caller contract violations (bad estimate or strategy)
}

func NewLookupStats() *LookupStats {
	return &LookupStats{}
}

func (ls *LookupStats) RecordLookup() {
	atomic.AddUint64(&ls.LookupCount, 1)
}

func (ls *LookupStats) RecordHit() {
	atomic.AddUint64(&ls.HitCount, 1)
}

func (ls *LookupStats) RecordNotFound() {
	atomic.AddUint64(&ls.NotFoundCount, 1)
}

func (ls *LookupStats) RecordFault() {
	atomic.AddUint64(&ls.FaultCount, 1)
}

func (ls *LookupStats) HitRatio() float64 {
	lookups := atomic.LoadUint64(&ls.LookupCount)
	if lookups == 0 {
		return 0.0
	}
	return float64(atomic.LoadUint64(&ls.HitCount)) / float64(lookups)
}

func (ls *LookupStats) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"lookups":   atomic.LoadUint64(&ls.LookupCount),
		"hits":      atomic.LoadUint64(&ls.HitCount),
		"not_found": atomic.LoadUint64(&ls.NotFoundCount),
		"faults":    atomic.LoadUint64(&ls.FaultCount),
	}
}
