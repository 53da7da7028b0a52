// Package conv provides checked integer narrowing.
//
// The helpers panic on overflow: a value out of range means a program or
// input too large for the engine's internal limits, which is a programming
// error rather than a recoverable condition.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// Compare as uint so 32-bit platforms do not overflow on MaxUint32.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
