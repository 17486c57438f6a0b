package formulas

// CalculateMaxDrawdown calculates the maximum drawdown from a price series.
//
// Drawdown Formula:
//
//	Drawdown = (Peak Value - Current Value) / Peak Value
//	Max Drawdown = Maximum of all drawdowns
//
// Returns the maximum drawdown as a positive percentage (0.25 = 25% loss
// from peak) or nil with fewer than two prices.
func CalculateMaxDrawdown(prices []float64) *float64 {
	if len(prices) < 2 {
		return nil
	}

	maxDrawdown := 0.0
	peak := prices[0]

	for _, price := range prices {
		if price > peak {
			peak = price
		}

		if peak > 0 {
			drawdown := (peak - price) / peak
			if drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	return &maxDrawdown
}

// Calculate52WeekHigh finds the 52-week high price from daily closes.
func Calculate52WeekHigh(prices []float64) *float64 {
	if len(prices) == 0 {
		return nil
	}

	// Take last 252 trading days (approximately 52 weeks)
	startIdx := 0
	if len(prices) > TradingDaysPerYear {
		startIdx = len(prices) - TradingDaysPerYear
	}

	relevant := prices[startIdx:]
	high := relevant[0]

	for _, price := range relevant {
		if price > high {
			high = price
		}
	}

	return &high
}

// CalculateDistanceFrom52WeekHigh calculates how far below the 52-week high
// the current price is. Returns a positive percentage if below the high
// (e.g., 0.20 = 20% below high).
func CalculateDistanceFrom52WeekHigh(prices []float64) *float64 {
	if len(prices) == 0 {
		return nil
	}

	high := Calculate52WeekHigh(prices)
	if high == nil || *high == 0 {
		return nil
	}

	currentPrice := prices[len(prices)-1]
	distance := (*high - currentPrice) / *high

	return &distance
}
