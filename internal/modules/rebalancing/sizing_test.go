package rebalancing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePositionSize_NeutralInputs(t *testing.T) {
	// Score 0.5, priority 0, no volatility: conviction 0.8, priority 0.9
	size := CalculatePositionSize(500, 200, 0.5, 0, nil)
	assert.InDelta(t, 500*0.8*0.9, size, 1e-9)
}

func TestCalculatePositionSize_HighConviction(t *testing.T) {
	high := CalculatePositionSize(500, 200, 1.0, 3.0, nil)
	low := CalculatePositionSize(500, 200, 0.5, 0.5, nil)
	assert.Greater(t, high, low)
}

func TestCalculatePositionSize_Bounds(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		priority   float64
		volatility *float64
	}{
		{"max everything", 1.0, 10.0, nil},
		{"min everything", 0.0, 0.0, volPtr(2.0)},
		{"typical", 0.65, 0.7, volPtr(0.25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size := CalculatePositionSize(500, 200, tt.score, tt.priority, tt.volatility)
			assert.GreaterOrEqual(t, size, 200.0, "floored at min size")
			assert.LessOrEqual(t, size, 750.0, "capped at 1.5x base")
		})
	}
}

func TestCalculatePositionSize_VolatilityShrinks(t *testing.T) {
	calm := CalculatePositionSize(500, 100, 0.7, 1.0, volPtr(0.15))
	wild := CalculatePositionSize(500, 100, 0.7, 1.0, volPtr(0.60))
	assert.Greater(t, calm, wild)

	// Volatility factor never drops below half
	extreme := CalculatePositionSize(500, 100, 0.7, 1.0, volPtr(5.0))
	assert.InDelta(t, calm*0.5, extreme, 1e-9, "factor floors at 0.5")
}

func TestCalculatePositionSize_UnknownVolatilityIsNeutral(t *testing.T) {
	unknown := CalculatePositionSize(500, 100, 0.7, 1.0, nil)
	baseline := CalculatePositionSize(500, 100, 0.7, 1.0, volPtr(0.15))
	assert.InDelta(t, baseline, unknown, 1e-9, "unknown volatility applies no adjustment")
}

func volPtr(v float64) *float64 { return &v }
