// Package conv provides safe integer conversion helpers for the
// classifier's packed-integer and binary-codec paths.
//
// These functions perform bounds checking before narrowing integer conversions
// to prevent silent overflow. They panic on overflow since this indicates a
// programming error (a corrupt index or a packing bug upstream), never
// untrusted query input.
package conv

import "math"

// IntToUint32 safely converts an int to uint32, used for the prefix ids
// binary decoding recovers from its prefix-table loop counter.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// Uint64ToUint32 safely converts a uint64 prefix-table first/count value
// (as read from a memory-mapped binary ecurve file) to uint32.
// Panics if n > math.MaxUint32.
//
//go:inline
func Uint64ToUint32(n uint64) uint32 {
	if n > math.MaxUint32 {
		panic("integer overflow: uint64 value out of uint32 range")
	}
	return uint32(n)
}

// Int64ToInt safely converts an int64 class label (as read from a binary
// ecurve file) to a platform int. Panics if n is out of the platform int
// range.
func Int64ToInt(n int64) int {
	if int64(int(n)) != n {
		panic("integer overflow: int64 value out of int range")
	}
	return int(n)
}

// IntToInt64 widens an int class label to int64 for binary serialization.
func IntToInt64(n int) int64 {
	return int64(n)
}
