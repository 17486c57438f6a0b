package formulas

import (
	"math"

	"github.com/markcheno/go-talib"
)

// CalculateRSI calculates the Relative Strength Index over the given
// length. Returns the most recent RSI value in the 0-100 range, or nil
// when the series is too short.
func CalculateRSI(closes []float64, length int) *float64 {
	if len(closes) < length+1 {
		return nil
	}

	rsi := talib.Rsi(closes, length)
	if len(rsi) == 0 {
		return nil
	}

	latest := rsi[len(rsi)-1]
	if isNaN(latest) {
		return nil
	}

	return &latest
}

// CalculateEMADistance calculates the relative distance of the current
// price from its exponential moving average.
//
//	Distance = (Current - EMA) / EMA
//
// Negative values mean the price trades below the EMA.
func CalculateEMADistance(closes []float64, length int) *float64 {
	if len(closes) < length {
		return nil
	}

	ema := talib.Ema(closes, length)
	if len(ema) == 0 {
		return nil
	}

	latest := ema[len(ema)-1]
	if isNaN(latest) || latest == 0 {
		return nil
	}

	current := closes[len(closes)-1]
	distance := (current - latest) / latest

	return &distance
}

// CalculateBollingerPosition calculates where the current price sits
// inside its Bollinger Bands. 0.0 is the lower band, 1.0 the upper band,
// values outside that range indicate a breakout.
func CalculateBollingerPosition(closes []float64, length int, stdDevs float64) *float64 {
	if len(closes) < length {
		return nil
	}

	upper, _, lower := talib.BBands(closes, length, stdDevs, stdDevs, talib.SMA)
	if len(upper) == 0 || len(lower) == 0 {
		return nil
	}

	up := upper[len(upper)-1]
	low := lower[len(lower)-1]
	if isNaN(up) || isNaN(low) {
		return nil
	}

	width := up - low
	if width == 0 {
		return nil
	}

	current := closes[len(closes)-1]
	position := (current - low) / width

	return &position
}

func isNaN(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
