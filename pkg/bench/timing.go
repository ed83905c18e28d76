// Package bench runs correction strategies over lookup workloads and
// measures them.
package bench

import "time"

// Timing measures the wall-clock duration of fn in nanoseconds.
func Timing(fn func()) uint64 {
	start := time.Now()
	fn()
	return uint64(time.Since(start).Nanoseconds())
}
