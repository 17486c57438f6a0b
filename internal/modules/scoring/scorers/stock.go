package scorers

import (
	"time"

	"github.com/aristath/helmsman/internal/domain"
	"github.com/aristath/helmsman/internal/modules/scoring"
	"github.com/aristath/helmsman/pkg/formulas"
)

// StockScorer combines the component scores into one total.
type StockScorer struct {
	quality     *QualityScorer
	opportunity *OpportunityScorer
	analyst     *AnalystScorer
	allocation  *AllocationFitScorer
}

// NewStockScorer creates a new combined stock scorer
func NewStockScorer() *StockScorer {
	return &StockScorer{
		quality:     NewQualityScorer(),
		opportunity: NewOpportunityScorer(),
		analyst:     NewAnalystScorer(),
		allocation:  NewAllocationFitScorer(),
	}
}

// Calculate combines quality, opportunity, analyst, and allocation-fit
// into a single total score.
//
// Weights: 35% quality, 35% opportunity, 15% analyst, 15% allocation
// fit. When allocation fit cannot be calculated the remaining three
// are renormalized so the total still spans [0, 1]. Any missing
// component contributes a neutral 0.5.
func (ss *StockScorer) Calculate(security domain.Security, inputs scoring.CalculatorInputs) scoring.CalculatedStockScore {
	quality := ss.quality.Calculate(inputs.MonthlyPrices, inputs.DailyPrices, inputs.Fundamentals, inputs.TargetAnnualReturn)
	opportunity := ss.opportunity.Calculate(inputs.DailyPrices, inputs.Fundamentals, inputs.MarketAvgPE)
	analyst := ss.analyst.Calculate(inputs.AnalystData)
	allocationFit := ss.allocation.Calculate(security, quality.Score, opportunity.Score, inputs.PortfolioContext)

	analystValue := scoring.NeutralScore
	if analyst != nil {
		analystValue = analyst.Score
	}

	weighted := quality.Score*scoring.ScoreWeightQuality +
		opportunity.Score*scoring.ScoreWeightOpportunity +
		analystValue*scoring.ScoreWeightAnalyst

	var total float64
	if allocationFit != nil {
		total = weighted + allocationFit.Score*scoring.ScoreWeightAllocationFit
	} else {
		total = weighted / scoring.ScoreWeightBase
	}

	return scoring.CalculatedStockScore{
		Symbol:        security.Symbol,
		Quality:       &quality,
		Opportunity:   &opportunity,
		Analyst:       analyst,
		AllocationFit: allocationFit,
		TotalScore:    round3(total),
		Volatility:    formulas.CalculateVolatility(inputs.DailyPrices),
		CalculatedAt:  time.Now().UTC(),
	}
}
