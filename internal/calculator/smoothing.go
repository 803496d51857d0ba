package calculator

// SpendDecay is the weight the previous smoothed spend keeps on each update.
const SpendDecay = 0.90

// SmoothSpend folds the latest windowed spend sum into the running EMA.
// A previous value of exactly 0 means the average has not been seeded yet and
// the sum is taken as-is.
func SmoothSpend(prev float64, windowSum uint64) float64 {
	sum := float64(windowSum)
	if prev == 0.0 {
		return sum
	}
	// Explicit conversions keep the compiler from fusing into an FMA, which
	// would change the last bit on some architectures.
	return float64(SpendDecay*prev) + float64((1-SpendDecay)*sum)
}
