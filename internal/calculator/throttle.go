package calculator

import "math"

// ThrottleMultiplier returns max(floor, 1 - beta*smoothed/target).
// There is no upper clamp: a negative beta lets the multiplier exceed 1.
// target must be positive.
func ThrottleMultiplier(smoothed, beta float64, target uint64, floor float64) float64 {
	m := 1.0 - beta*smoothed/float64(target)
	if m < floor || math.IsNaN(m) {
		return floor
	}
	return m
}

// ApplyMultiplier returns floor(base*m) as an integer amount.
func ApplyMultiplier(base uint64, m float64) uint64 {
	return SaturatingUint64(math.Floor(float64(base) * m))
}

// SaturatingUint64 converts v to uint64, clamping to [0, MaxUint64].
// NaN maps to 0.
func SaturatingUint64(v float64) uint64 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= math.MaxUint64:
		return math.MaxUint64
	}
	return uint64(v)
}
