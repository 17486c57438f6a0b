package sequences

import "github.com/aristath/helmsman/internal/domain"

// FeasibilityChecker decides whether a sequence can actually be
// executed with the cash on hand after transaction costs.
type FeasibilityChecker struct {
	availableCashEUR float64
	minTradeValueEUR float64
	fixedCostEUR     float64
	percentCost      float64
}

// NewFeasibilityChecker creates a new feasibility checker
func NewFeasibilityChecker(cfg GenerationConfig) *FeasibilityChecker {
	return &FeasibilityChecker{
		availableCashEUR: cfg.AvailableCashEUR,
		minTradeValueEUR: cfg.MinTradeValueEUR,
		fixedCostEUR:     cfg.FixedCostEUR,
		percentCost:      cfg.PercentCost,
	}
}

// IsFeasible checks a normalized sequence against cash and minimum
// trade value constraints.
//
// Buys must be fully funded by available cash plus the net proceeds of
// the sequence's sells. Costs cut both ways: buys cost their value
// plus fees, sells generate their value minus fees.
func (fc *FeasibilityChecker) IsFeasible(actions []ActionCandidate) bool {
	cashRequired := 0.0
	cashGenerated := 0.0

	for _, action := range actions {
		if action.ValueEUR < fc.minTradeValueEUR {
			return false
		}

		cost := fc.fixedCostEUR + action.ValueEUR*fc.percentCost
		if action.Side == domain.TradeSideBuy {
			cashRequired += action.ValueEUR + cost
		} else {
			cashGenerated += action.ValueEUR - cost
		}
	}

	return cashRequired-cashGenerated <= fc.availableCashEUR
}
