package formulas

import "math"

// MonthlyPrice represents a monthly price data point
type MonthlyPrice struct {
	YearMonth   string  `json:"year_month"`
	AvgAdjClose float64 `json:"avg_adj_close"`
}

// MinMonthsForCAGR is the minimum number of monthly points required.
const MinMonthsForCAGR = 12

// CalculateCAGR calculates the compound annual growth rate over the
// trailing window of monthly prices.
//
//	CAGR = (end / start)^(1/years) - 1
//
// The window is the last `months` points, clamped to the series
// length. Series shorter than a year, or windows containing
// non-positive prices, return nil. Windows under three months return
// the simple return instead, since annualizing them would explode it.
func CalculateCAGR(prices []MonthlyPrice, months int) *float64 {
	if len(prices) < MinMonthsForCAGR {
		return nil
	}

	if months > len(prices) {
		months = len(prices)
	}
	window := prices[len(prices)-months:]

	start := window[0].AvgAdjClose
	end := window[len(window)-1].AvgAdjClose
	if start <= 0 || end <= 0 {
		return nil
	}

	years := float64(months) / 12.0
	if years < 0.25 {
		simple := end/start - 1
		return &simple
	}

	cagr := math.Pow(end/start, 1/years) - 1
	return &cagr
}
