package domain

import "context"

// MonthlyPrice is an aggregated month of adjusted closes, used by the
// CAGR and consistency calculations.
type MonthlyPrice struct {
	YearMonth   string  `json:"year_month"`
	AvgAdjClose float64 `json:"avg_adj_close"`
}

// MarketDataProvider supplies the raw inputs the scoring pipeline
// needs. Implementations are expected to be safe for concurrent use;
// the scoring service calls them from multiple workers.
type MarketDataProvider interface {
	// DailyBars returns daily OHLCV bars for the symbol, oldest
	// first.
	DailyBars(ctx context.Context, symbol string) ([]PriceBar, error)

	// MonthlyPrices returns monthly average adjusted closes, oldest
	// first.
	MonthlyPrices(ctx context.Context, symbol string) ([]MonthlyPrice, error)

	// Fundamentals returns the fundamental snapshot for the symbol.
	Fundamentals(ctx context.Context, symbol string) (*Fundamentals, error)

	// AnalystData returns aggregated analyst sentiment, or nil when
	// no coverage exists.
	AnalystData(ctx context.Context, symbol string) (*AnalystData, error)

	// CurrentPrice returns the latest price in EUR.
	CurrentPrice(ctx context.Context, symbol string) (float64, error)
}
