package rebalancing

import "math"

// Sizing factor bounds.
const (
	convictionMin = 0.8
	convictionMax = 1.2

	priorityFactorMin = 0.9
	priorityFactorMax = 1.1

	volatilityFactorMin = 0.5
	volatilityBaseline  = 0.15

	// MaxSizeMultiple caps the final size relative to the base.
	MaxSizeMultiple = 1.5
)

// CalculatePositionSize sizes one position from its score, combined
// priority, and volatility.
//
// Three multiplicative factors adjust the base size:
//   - conviction: scales with the total score around the 0.5 midpoint
//   - priority: small tilt from the combined priority
//   - volatility: shrinks sizes for volatile names, never below half
//
// The result is clamped to [minSize, 1.5 * baseSize].
func CalculatePositionSize(baseSize, minSize, totalScore, combinedPriority float64, volatility *float64) float64 {
	conviction := clampFloat(convictionMin+(totalScore-0.5)*0.8, convictionMin, convictionMax)
	priorityFactor := clampFloat(priorityFactorMin+(combinedPriority/3.0)*0.2, priorityFactorMin, priorityFactorMax)

	volatilityFactor := 1.0
	if volatility != nil {
		volatilityFactor = math.Max(volatilityFactorMin, 1.0-(*volatility-volatilityBaseline)*0.5)
	}

	size := baseSize * conviction * priorityFactor * volatilityFactor

	return clampFloat(size, minSize, baseSize*MaxSizeMultiple)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
