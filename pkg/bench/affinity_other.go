//go:build !linux

package bench

import "errors"

// PinToCore reduces scheduler noise in measurements. Thread pinning is
// only supported under Linux.
func PinToCore(core int) error {
	return errors.New("bench: thread pinning is only supported under linux")
}
