//go:build linux

package bench

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// PinToCore locks the calling goroutine to its OS thread and pins that
// thread to the given core, reducing scheduler noise in measurements.
// Measurements must then run on the same goroutine.
func PinToCore(core int) error {
	runtime.LockOSThread()

	var set unix.CPUSet
	set.Zero()
	set.Set(core % runtime.NumCPU())
	return unix.SchedSetaffinity(0, &set)
}
