// Package domain holds the shared value types that flow between the
// scoring, rebalancing, and sequences modules.
//
// CURRENCY INVARIANT: every monetary value in these types is expressed
// in EUR. Conversion from trading currencies happens at the data
// provider boundary, never inside the engine.
package domain

// PriceBar is a single daily OHLCV bar.
type PriceBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Closes extracts the close series from a slice of bars, oldest first.
func Closes(bars []PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}
	return closes
}

// Fundamentals holds the fundamental snapshot for a security. All
// fields are optional; nil means the data source did not report the
// value.
type Fundamentals struct {
	ProfitMargin  *float64 `json:"profit_margin,omitempty"`
	DebtToEquity  *float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio  *float64 `json:"current_ratio,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"`
	PERatio       *float64 `json:"pe_ratio,omitempty"`
	ForwardPE     *float64 `json:"forward_pe,omitempty"`
	MarketCap     *float64 `json:"market_cap,omitempty"`
}

// AnalystData holds aggregated analyst sentiment for a security.
type AnalystData struct {
	// RecommendationKey is the consensus recommendation
	// (strong_buy, buy, hold, underperform, sell).
	RecommendationKey string `json:"recommendation_key"`

	// TargetUpside is (mean target price - current price) / current
	// price. Nil when no target is published.
	TargetUpside *float64 `json:"target_upside,omitempty"`
}

// Security identifies a scoreable instrument.
type Security struct {
	Symbol             string  `json:"symbol"`
	Name               string  `json:"name"`
	Geography          string  `json:"geography"`
	Industry           string  `json:"industry"`
	MinLot             int     `json:"min_lot"`
	PriorityMultiplier float64 `json:"priority_multiplier"`
}

// Position is a current holding inside the portfolio snapshot.
type Position struct {
	Symbol       string  `json:"symbol"`
	Quantity     float64 `json:"quantity"`
	ValueEUR     float64 `json:"value_eur"`
	CostBasisEUR float64 `json:"cost_basis_eur"`
}

// PortfolioContext is an immutable snapshot of the portfolio used by
// the allocation-fit scorer and the rebalancing selector. Gap weights
// are positive when the bucket is underweight relative to target.
type PortfolioContext struct {
	// GeoWeights maps geography name to gap weight in [-1, 1].
	GeoWeights map[string]float64 `json:"geo_weights"`

	// IndustryWeights maps industry name to gap weight in [-1, 1].
	IndustryWeights map[string]float64 `json:"industry_weights"`

	// Positions maps symbol to the current holding.
	Positions map[string]Position `json:"positions"`

	// TotalValueEUR is the total portfolio value.
	TotalValueEUR float64 `json:"total_value_eur"`
}

// Trade sides.
const (
	TradeSideBuy  = "BUY"
	TradeSideSell = "SELL"
)

// TradeRecommendation is a single sized trade produced by the
// rebalancing selector.
type TradeRecommendation struct {
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	Side           string  `json:"side"`
	Quantity       int     `json:"quantity"`
	EstimatedPrice float64 `json:"estimated_price"`
	EstimatedValue float64 `json:"estimated_value"`
	Reason         string  `json:"reason"`
}
