// Package rebalancing turns scored securities into concrete, sized
// buy recommendations under cash and trade-count constraints.
package rebalancing

import (
	"github.com/aristath/helmsman/internal/domain"
	"github.com/aristath/helmsman/internal/modules/scoring"
)

// Candidate is a scored security considered for buying.
type Candidate struct {
	Security domain.Security
	Score    scoring.CalculatedStockScore

	// Volatility is annualized volatility, nil when unknown.
	Volatility *float64
}

// RankedCandidate is a candidate with its combined priority attached.
type RankedCandidate struct {
	Candidate
	CombinedPriority float64
}

// Config holds the selector thresholds. All monetary values are EUR.
type Config struct {
	// MinCashThreshold is the cash level below which no buying
	// happens at all.
	MinCashThreshold float64

	// MinStockScore filters out weakly scored candidates.
	MinStockScore float64

	// MinTradeSize stops the loop once remaining cash cannot fund a
	// meaningful trade.
	MinTradeSize float64

	// MaxTrades caps recommendations per run. Zero means unlimited.
	MaxTrades int

	// BasePositionSize is the nominal investment per position before
	// dynamic sizing.
	BasePositionSize float64

	// MinPositionSize floors the dynamically sized investment.
	MinPositionSize float64
}
