package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func risingSeries(n int) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	return prices
}

func fallingSeries(n int) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = 200 - float64(i)
	}
	return prices
}

func TestCalculateRSI(t *testing.T) {
	up := CalculateRSI(risingSeries(50), 14)
	require.NotNil(t, up)
	assert.Greater(t, *up, 70.0, "steady gains should read overbought")

	down := CalculateRSI(fallingSeries(50), 14)
	require.NotNil(t, down)
	assert.Less(t, *down, 30.0, "steady losses should read oversold")
}

func TestCalculateRSI_InsufficientData(t *testing.T) {
	assert.Nil(t, CalculateRSI(risingSeries(10), 14))
}

func TestCalculateEMADistance(t *testing.T) {
	// Rising prices sit above their EMA
	up := CalculateEMADistance(risingSeries(250), 200)
	require.NotNil(t, up)
	assert.Greater(t, *up, 0.0)

	down := CalculateEMADistance(fallingSeries(250), 200)
	require.NotNil(t, down)
	assert.Less(t, *down, 0.0)
}

func TestCalculateEMADistance_InsufficientData(t *testing.T) {
	assert.Nil(t, CalculateEMADistance(risingSeries(100), 200))
}

func TestCalculateBollingerPosition(t *testing.T) {
	// A price spike lands near the upper band
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 100 + float64(i%3)
	}
	prices[len(prices)-1] = 110

	position := CalculateBollingerPosition(prices, 20, 2)
	require.NotNil(t, position)
	assert.Greater(t, *position, 0.8)
}

func TestCalculateBollingerPosition_InsufficientData(t *testing.T) {
	assert.Nil(t, CalculateBollingerPosition(risingSeries(10), 20, 2))
}
