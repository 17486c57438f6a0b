package scorers

import (
	"math"
	"strings"

	"github.com/aristath/helmsman/internal/domain"
	"github.com/aristath/helmsman/internal/modules/scoring"
)

// AllocationFitScorer calculates how well a buy fits the current
// portfolio shape.
type AllocationFitScorer struct{}

// NewAllocationFitScorer creates a new allocation-fit scorer
func NewAllocationFitScorer() *AllocationFitScorer {
	return &AllocationFitScorer{}
}

// Calculate calculates the allocation-fit score.
// Components:
// - Geography gap (40%): boost underweight regions
// - Industry gap (30%): boost underweight sectors
// - Averaging down (30%): bonus for quality dips already owned
//
// Returns nil when the security has no geography or no portfolio
// context exists; the combined scorer then renormalizes without it.
func (afs *AllocationFitScorer) Calculate(
	security domain.Security,
	qualityScore float64,
	opportunityScore float64,
	portfolioContext *domain.PortfolioContext,
) *scoring.AllocationFitScore {
	if portfolioContext == nil || security.Geography == "" {
		return nil
	}

	geoGapScore := calculateGeoGapScore(security.Geography, portfolioContext)
	industryGapScore := calculateIndustryGapScore(security.Industry, portfolioContext)
	averagingDownScore := calculateAveragingDownScore(security.Symbol, qualityScore, opportunityScore, portfolioContext)

	totalScore := geoGapScore*scoring.AllocationWeightGeography +
		industryGapScore*scoring.AllocationWeightIndustry +
		averagingDownScore*scoring.AllocationWeightAveragingDown
	totalScore = math.Min(1.0, totalScore)

	return &scoring.AllocationFitScore{
		Score: round3(totalScore),
		Components: map[string]float64{
			"geography":      round3(geoGapScore),
			"industry":       round3(industryGapScore),
			"averaging_down": round3(averagingDownScore),
		},
	}
}

// calculateGeoGapScore converts a geography gap weight into a score.
// weight=+1 (very underweight) scores 0.9, weight=-1 scores 0.1.
func calculateGeoGapScore(geography string, portfolioContext *domain.PortfolioContext) float64 {
	geoWeight := 0.0
	if portfolioContext.GeoWeights != nil {
		geoWeight = portfolioContext.GeoWeights[geography]
	}

	return clamp(0.5+geoWeight*0.4, 0.1, 0.9)
}

// calculateIndustryGapScore averages the gap score over all of the
// security's comma-separated industries.
func calculateIndustryGapScore(industry string, portfolioContext *domain.PortfolioContext) float64 {
	if industry == "" {
		return 0.5
	}

	industries := strings.Split(industry, ",")

	sum := 0.0
	count := 0
	for _, ind := range industries {
		ind = strings.TrimSpace(ind)
		if ind == "" {
			continue
		}

		indWeight := 0.0
		if portfolioContext.IndustryWeights != nil {
			indWeight = portfolioContext.IndustryWeights[ind]
		}

		sum += clamp(0.5+indWeight*0.4, 0.1, 0.9)
		count++
	}

	if count == 0 {
		return 0.5
	}

	return sum / float64(count)
}

// calculateAveragingDownScore rewards buying more of quality positions
// that have dipped. Positions we do not own are neutral.
func calculateAveragingDownScore(
	symbol string,
	qualityScore float64,
	opportunityScore float64,
	portfolioContext *domain.PortfolioContext,
) float64 {
	position, owned := portfolioContext.Positions[symbol]
	if !owned || position.ValueEUR <= 0 {
		return 0.5
	}

	avgDownPotential := qualityScore * opportunityScore

	score := 0.3
	if avgDownPotential >= 0.5 {
		score = 0.7 + (avgDownPotential-0.5)*0.6
	} else if avgDownPotential >= 0.3 {
		score = 0.5 + (avgDownPotential-0.3)*1.0
	}

	score = applyCostBasisBonus(position, score)
	score = applyConcentrationPenalty(position, score, portfolioContext)

	return score
}

// applyCostBasisBonus boosts the score when the position trades below
// its cost basis. Deep losses past the threshold get no boost at all;
// those look like broken theses rather than dips.
func applyCostBasisBonus(position domain.Position, score float64) float64 {
	if position.CostBasisEUR <= 0 {
		return score
	}

	priceVsCost := (position.ValueEUR - position.CostBasisEUR) / position.CostBasisEUR
	if priceVsCost >= 0 {
		return score
	}

	lossPct := math.Abs(priceVsCost)
	if lossPct <= scoring.CostBasisBoostThreshold {
		boost := math.Min(scoring.MaxCostBasisBoost, lossPct*2)
		return math.Min(1.0, score+boost)
	}

	return score
}

// applyConcentrationPenalty reduces enthusiasm for positions that are
// already a large share of the portfolio.
func applyConcentrationPenalty(position domain.Position, score float64, portfolioContext *domain.PortfolioContext) float64 {
	if portfolioContext.TotalValueEUR <= 0 {
		return score
	}

	positionPct := position.ValueEUR / portfolioContext.TotalValueEUR

	if positionPct > scoring.ConcentrationHigh {
		return score * 0.7
	} else if positionPct > scoring.ConcentrationMed {
		return score * 0.9
	}

	return score
}
