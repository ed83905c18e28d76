package common

import "errors"

// Morton (z-order) encoding for 3D coordinates. Interleaved keys give
// synthetic datasets a clustered, duplicate-prone key distribution.

func Part1By2(n uint32) uint64 {
	x := uint64(n)
	x &= 0x000003ff
	x = (x ^ (x << 16)) & 0xff0000ff
	x = (x ^ (x << 8)) & 0x0300f00f
	x = (x ^ (x << 4)) & 0x030c30c3
	x = (x ^ (x << 2)) & 0x09249249
	return x
}

func Compact1By2(x uint64) uint32 {
	x &= 0x09249249
	x = (x ^ (x >> 2)) & 0x030c30c3
	x = (x ^ (x >> 4)) & 0x0300f00f
	x = (x ^ (x >> 8)) & 0xff0000ff
	x = (x ^ (x >> 16)) & 0x000003ff
	return uint32(x)
}

// Encode3D interleaves three 10-bit coordinates into a single z-order key.
func Encode3D(x, y, z uint32) (uint64, error) {
	if x > 1023 || y > 1023 || z > 1023 {
		return 0, errors.New("common: coordinate out of bounds (max 1023)")
	}
	return Part1By2(z)<<2 | Part1By2(y)<<1 | Part1By2(x), nil
}

// Decode3D recovers the coordinates of a z-order key.
func Decode3D(code uint64) (uint32, uint32, uint32) {
	return Compact1By2(code), Compact1By2(code >> 1), Compact1By2(code >> 2)
}
