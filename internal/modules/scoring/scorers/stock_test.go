package scorers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/helmsman/internal/domain"
	"github.com/aristath/helmsman/internal/modules/scoring"
)

func TestStockScorer_NoData(t *testing.T) {
	scorer := NewStockScorer()

	result := scorer.Calculate(domain.Security{Symbol: "EMPTY"}, scoring.CalculatorInputs{})

	// Every component neutral, no allocation fit: 0.425/0.85
	assert.InDelta(t, 0.5, result.TotalScore, 1e-9)
	assert.Nil(t, result.AllocationFit)
	assert.Nil(t, result.Analyst)
	require.NotNil(t, result.Quality)
	require.NotNil(t, result.Opportunity)
	assert.False(t, result.CalculatedAt.IsZero())
}

func TestStockScorer_RenormalizationWithoutAllocationFit(t *testing.T) {
	scorer := NewStockScorer()
	security := domain.Security{Symbol: "TST", Geography: "Europe"}

	inputs := scoring.CalculatorInputs{
		MonthlyPrices: growthMonthly(120, 0.11),
		DailyPrices:   steadyDaily(300, 0.0004),
		AnalystData:   &domain.AnalystData{RecommendationKey: "buy", TargetUpside: ptr(0.15)},
	}

	without := scorer.Calculate(security, inputs)
	require.Nil(t, without.AllocationFit)

	inputs.PortfolioContext = testContext()
	with := scorer.Calculate(security, inputs)
	require.NotNil(t, with.AllocationFit)

	// Both totals must stay inside [0, 1]
	assert.GreaterOrEqual(t, without.TotalScore, 0.0)
	assert.LessOrEqual(t, without.TotalScore, 1.0)
	assert.GreaterOrEqual(t, with.TotalScore, 0.0)
	assert.LessOrEqual(t, with.TotalScore, 1.0)

	// The renormalized base equals the weighted base divided by 0.85
	base := with.Quality.Score*scoring.ScoreWeightQuality +
		with.Opportunity.Score*scoring.ScoreWeightOpportunity +
		with.Analyst.Score*scoring.ScoreWeightAnalyst
	assert.InDelta(t, base/scoring.ScoreWeightBase, without.TotalScore, 0.005)
}

func TestStockScorer_VolatilityPopulated(t *testing.T) {
	scorer := NewStockScorer()

	scored := scorer.Calculate(domain.Security{Symbol: "TST"}, scoring.CalculatorInputs{
		DailyPrices: steadyDaily(300, 0.0004),
	})
	require.NotNil(t, scored.Volatility, "daily history should yield a volatility for sizing")
	assert.Greater(t, *scored.Volatility, 0.0)

	short := scorer.Calculate(domain.Security{Symbol: "TST"}, scoring.CalculatorInputs{
		DailyPrices: []float64{100},
	})
	assert.Nil(t, short.Volatility, "one close is not enough to estimate volatility")
}

func TestStockScorer_Idempotent(t *testing.T) {
	scorer := NewStockScorer()
	security := domain.Security{Symbol: "TST", Geography: "Europe"}

	inputs := scoring.CalculatorInputs{
		MonthlyPrices:    growthMonthly(120, 0.11),
		DailyPrices:      steadyDaily(300, 0.0004),
		AnalystData:      &domain.AnalystData{RecommendationKey: "buy", TargetUpside: ptr(0.15)},
		PortfolioContext: testContext(),
	}

	first := scorer.Calculate(security, inputs)
	second := scorer.Calculate(security, inputs)

	assert.Equal(t, first.TotalScore, second.TotalScore)
	assert.Equal(t, first.Quality.Components, second.Quality.Components)
	assert.Equal(t, first.Opportunity.Components, second.Opportunity.Components)
	assert.Equal(t, first.AllocationFit.Components, second.AllocationFit.Components)
}

func TestStockScorer_MissingAnalystIsNeutral(t *testing.T) {
	scorer := NewStockScorer()
	security := domain.Security{Symbol: "TST"}

	inputs := scoring.CalculatorInputs{
		MonthlyPrices: growthMonthly(60, 0.10),
		DailyPrices:   steadyDaily(300, 0.0004),
	}

	covered := inputs
	covered.AnalystData = &domain.AnalystData{RecommendationKey: "hold"}

	uncovered := scorer.Calculate(security, inputs)
	withHold := scorer.Calculate(security, covered)

	// A hold recommendation scores exactly neutral, same as no coverage
	assert.InDelta(t, withHold.TotalScore, uncovered.TotalScore, 1e-9)
}
