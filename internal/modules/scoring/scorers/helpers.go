package scorers

import "math"

// round3 rounds a float to 3 decimal places
func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

// clamp bounds v to the [lo, hi] range
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
