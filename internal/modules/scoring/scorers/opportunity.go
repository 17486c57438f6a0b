package scorers

import (
	"math"

	"github.com/aristath/helmsman/internal/domain"
	"github.com/aristath/helmsman/internal/modules/scoring"
	"github.com/aristath/helmsman/pkg/formulas"
)

// OpportunityScorer measures whether now is a good time to buy.
type OpportunityScorer struct{}

// NewOpportunityScorer creates a new opportunity scorer
func NewOpportunityScorer() *OpportunityScorer {
	return &OpportunityScorer{}
}

// Calculate calculates the opportunity score.
// Components:
// - Below 52-week high (30%): discount from the recent peak
// - EMA distance (25%): price vs the 200-day EMA
// - P/E vs market (25%): valuation against the market average
// - RSI (10%): oversold/overbought momentum
// - Bollinger position (10%): position inside the bands
//
// With fewer than 50 daily closes the score is neutral (0.5).
func (os *OpportunityScorer) Calculate(
	dailyPrices []float64,
	fundamentals *domain.Fundamentals,
	marketAvgPE float64,
) scoring.OpportunityScore {
	if len(dailyPrices) < scoring.MinDaysForOpportunity {
		return neutralOpportunity()
	}

	if marketAvgPE <= 0 {
		marketAvgPE = scoring.DefaultMarketAvgPE
	}

	// Below 52-week high (30%)
	distance := formulas.CalculateDistanceFrom52WeekHigh(dailyPrices)
	highScore := scoreBelow52WeekHigh(distance)

	// EMA distance (25%)
	emaDistance := formulas.CalculateEMADistance(dailyPrices, scoring.EMALength)
	emaScore := scoreEMADistance(emaDistance)

	// P/E vs market (25%)
	peScore := scorePERatio(fundamentals, marketAvgPE)

	// RSI (10%)
	rsi := formulas.CalculateRSI(dailyPrices, scoring.RSILength)
	rsiScore := scoreRSI(rsi)

	// Bollinger position (10%)
	bollinger := formulas.CalculateBollingerPosition(dailyPrices, scoring.BollingerLength, scoring.BollingerStd)
	bollingerScore := scoreBollinger(bollinger)

	totalScore := highScore*scoring.OpportunityWeight52WHigh +
		emaScore*scoring.OpportunityWeightEMA +
		peScore*scoring.OpportunityWeightPE +
		rsiScore*scoring.OpportunityWeightRSI +
		bollingerScore*scoring.OpportunityWeightBollinger

	components := map[string]float64{
		"below_52w_high": round3(highScore),
		"ema_distance":   round3(emaScore),
		"pe_ratio":       round3(peScore),
		"rsi":            round3(rsiScore),
		"bollinger":      round3(bollingerScore),
	}

	return scoring.OpportunityScore{
		Score:      round3(totalScore),
		Components: components,
	}
}

func neutralOpportunity() scoring.OpportunityScore {
	return scoring.OpportunityScore{
		Score: scoring.NeutralScore,
		Components: map[string]float64{
			"below_52w_high": scoring.NeutralScore,
			"ema_distance":   scoring.NeutralScore,
			"pe_ratio":       scoring.NeutralScore,
			"rsi":            scoring.NeutralScore,
			"bollinger":      scoring.NeutralScore,
		},
	}
}

// scoreBelow52WeekHigh rewards prices trading well below their recent
// peak. A stock at its high scores 0.3, deep discounts score 1.0.
func scoreBelow52WeekHigh(distance *float64) float64 {
	if distance == nil {
		return scoring.NeutralScore
	}

	pct := *distance
	switch {
	case pct >= scoring.BelowHighExcellent:
		return 1.0
	case pct >= scoring.BelowHighGood:
		return 0.8 + (pct-scoring.BelowHighGood)/(scoring.BelowHighExcellent-scoring.BelowHighGood)*0.2
	case pct >= scoring.BelowHighOK:
		return 0.5 + (pct-scoring.BelowHighOK)/(scoring.BelowHighGood-scoring.BelowHighOK)*0.3
	case pct >= 0:
		return 0.3 + pct/scoring.BelowHighOK*0.2
	default:
		return 0.3
	}
}

// scoreEMADistance rewards prices below the long EMA
func scoreEMADistance(distance *float64) float64 {
	if distance == nil {
		return scoring.NeutralScore
	}

	pct := *distance
	switch {
	case pct <= scoring.EMAVeryBelow:
		return 1.0
	case pct <= scoring.EMABelow:
		return 0.7 + (math.Abs(pct)-0.05)/0.05*0.3
	case pct <= 0:
		return 0.5 + math.Abs(pct)/0.05*0.2
	case pct >= scoring.EMAVeryAbove:
		return 0.2
	default:
		return 0.5 - pct/scoring.EMAVeryAbove*0.3
	}
}

// scorePERatio compares the security's P/E against the market average.
// Missing or negative P/E is neutral.
func scorePERatio(f *domain.Fundamentals, marketAvgPE float64) float64 {
	if f == nil || f.PERatio == nil || *f.PERatio <= 0 {
		return scoring.NeutralScore
	}

	ratio := *f.PERatio / marketAvgPE
	switch {
	case ratio <= 0.5:
		return 1.0
	case ratio <= 1.0:
		return 0.5 + (1.0-ratio)
	case ratio <= 2.0:
		return math.Max(0.0, 0.5-(ratio-1.0)*0.5)
	default:
		return 0.0
	}
}

// scoreRSI maps RSI into [0, 1] with oversold readings scoring high
func scoreRSI(rsi *float64) float64 {
	if rsi == nil {
		return scoring.NeutralScore
	}

	r := *rsi
	switch {
	case r <= scoring.RSIOversold:
		return 1.0
	case r >= scoring.RSIOverbought:
		return 0.0
	default:
		return 1.0 - (r-scoring.RSIOversold)/(scoring.RSIOverbought-scoring.RSIOversold)
	}
}

// scoreBollinger rewards prices near the lower band
func scoreBollinger(position *float64) float64 {
	if position == nil {
		return scoring.NeutralScore
	}

	return clamp(1.0-*position, 0.0, 1.0)
}
