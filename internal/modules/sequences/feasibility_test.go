package sequences

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/helmsman/internal/domain"
)

func TestFeasibility_BuyWithinCash(t *testing.T) {
	checker := NewFeasibilityChecker(GenerationConfig{AvailableCashEUR: 1000})

	actions := []ActionCandidate{action("A", domain.TradeSideBuy, 900, 0.5)}
	assert.True(t, checker.IsFeasible(actions))
}

func TestFeasibility_OneCentOverBudget(t *testing.T) {
	checker := NewFeasibilityChecker(GenerationConfig{AvailableCashEUR: 1000})

	actions := []ActionCandidate{action("A", domain.TradeSideBuy, 1000.01, 0.5)}
	assert.False(t, checker.IsFeasible(actions), "a cent over budget is infeasible")
}

func TestFeasibility_SellsFundBuys(t *testing.T) {
	checker := NewFeasibilityChecker(GenerationConfig{AvailableCashEUR: 100})

	actions := []ActionCandidate{
		action("S", domain.TradeSideSell, 1000, 0.5),
		action("B", domain.TradeSideBuy, 1050, 0.5),
	}
	assert.True(t, checker.IsFeasible(actions), "sell proceeds cover the buy")
}

func TestFeasibility_TransactionCostsCutBothWays(t *testing.T) {
	cfg := GenerationConfig{
		AvailableCashEUR: 0,
		FixedCostEUR:     2,
		PercentCost:      0.01,
	}
	checker := NewFeasibilityChecker(cfg)

	// Sell nets 1000 - 2 - 10 = 988; buy needs 980 + 2 + 9.8 = 991.8
	actions := []ActionCandidate{
		action("S", domain.TradeSideSell, 1000, 0.5),
		action("B", domain.TradeSideBuy, 980, 0.5),
	}
	assert.False(t, checker.IsFeasible(actions))

	// With a small cash buffer it clears
	checker = NewFeasibilityChecker(GenerationConfig{
		AvailableCashEUR: 5,
		FixedCostEUR:     2,
		PercentCost:      0.01,
	})
	assert.True(t, checker.IsFeasible(actions))
}

func TestFeasibility_MinTradeValue(t *testing.T) {
	checker := NewFeasibilityChecker(GenerationConfig{
		AvailableCashEUR: 10000,
		MinTradeValueEUR: 100,
	})

	tiny := []ActionCandidate{action("T", domain.TradeSideBuy, 99.99, 0.5)}
	assert.False(t, checker.IsFeasible(tiny), "dust trades are rejected")

	ok := []ActionCandidate{action("T", domain.TradeSideBuy, 100, 0.5)}
	assert.True(t, checker.IsFeasible(ok))
}

func TestFeasibility_SellOnlyAlwaysFeasible(t *testing.T) {
	checker := NewFeasibilityChecker(GenerationConfig{AvailableCashEUR: 0})

	actions := []ActionCandidate{action("S", domain.TradeSideSell, 500, 0.5)}
	assert.True(t, checker.IsFeasible(actions))
}
