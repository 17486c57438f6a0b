package scorers

import (
	"math"

	"github.com/aristath/helmsman/internal/domain"
	"github.com/aristath/helmsman/internal/modules/scoring"
	"github.com/aristath/helmsman/pkg/formulas"
)

// QualityScorer measures how good a business is to own long term.
type QualityScorer struct{}

// NewQualityScorer creates a new quality scorer
func NewQualityScorer() *QualityScorer {
	return &QualityScorer{}
}

// Calculate calculates the quality score.
// Components:
// - Growth (40%): bell curve on 5-year CAGR, peaking at the target return
// - Consistency (20%): agreement between 10-year and 5-year CAGR
// - Financial strength (20%): margins, leverage, liquidity
// - Sharpe (10%): risk-adjusted returns from daily prices
// - Max drawdown (10%): worst historical loss from peak
// A dividend bonus is added after weighting, capped at 1.0.
//
// With fewer than 24 monthly points every component falls back to
// neutral (0.5) and no bonus applies.
func (qs *QualityScorer) Calculate(
	monthlyPrices []domain.MonthlyPrice,
	dailyPrices []float64,
	fundamentals *domain.Fundamentals,
	targetAnnualReturn float64,
) scoring.QualityScore {
	if len(monthlyPrices) < scoring.MinMonthsForQuality {
		return neutralQuality()
	}

	if targetAnnualReturn <= 0 {
		targetAnnualReturn = scoring.DefaultTargetAnnualReturn
	}

	formulaPrices := toFormulaPrices(monthlyPrices)

	// Growth (40%): bell curve on trailing 5-year CAGR
	cagr5y := formulas.CalculateCAGR(formulaPrices, 60)
	if cagr5y == nil {
		cagr5y = formulas.CalculateCAGR(formulaPrices, len(formulaPrices))
	}
	cagrValue := 0.0
	if cagr5y != nil {
		cagrValue = *cagr5y
	}
	growthScore := scoreBellCurve(cagrValue, targetAnnualReturn)

	// Consistency (20%): compare 10-year and 5-year CAGR. Without a
	// full decade of history the comparison is meaningless.
	var cagr10y *float64
	if len(formulaPrices) >= 120 {
		cagr10y = formulas.CalculateCAGR(formulaPrices, 120)
	}
	consistencyScore := scoreConsistency(cagr10y, cagr5y)

	// Financial strength (20%)
	strengthScore := scoreFinancialStrength(fundamentals)

	// Sharpe (10%)
	var sharpeRatio *float64
	if len(dailyPrices) >= scoring.MinDaysForOpportunity {
		sharpeRatio = formulas.CalculateSharpeFromPrices(dailyPrices, 0.02)
	}
	sharpeScore := scoreSharpe(sharpeRatio)

	// Max drawdown (10%)
	drawdown := formulas.CalculateMaxDrawdown(dailyPrices)
	drawdownScore := scoreDrawdown(drawdown)

	totalScore := growthScore*scoring.QualityWeightGrowth +
		consistencyScore*scoring.QualityWeightConsistency +
		strengthScore*scoring.QualityWeightFinancialStrength +
		sharpeScore*scoring.QualityWeightSharpe +
		drawdownScore*scoring.QualityWeightMaxDrawdown

	bonus := dividendBonus(fundamentals)
	totalScore = math.Min(1.0, totalScore+bonus)

	components := map[string]float64{
		"growth":             round3(growthScore),
		"consistency":        round3(consistencyScore),
		"financial_strength": round3(strengthScore),
		"sharpe":             round3(sharpeScore),
		"max_drawdown":       round3(drawdownScore),
		"dividend_bonus":     round3(bonus),
		"cagr_raw":           round3(cagrValue),
	}

	return scoring.QualityScore{
		Score:      round3(totalScore),
		Components: components,
	}
}

func neutralQuality() scoring.QualityScore {
	return scoring.QualityScore{
		Score: scoring.NeutralScore,
		Components: map[string]float64{
			"growth":             scoring.NeutralScore,
			"consistency":        scoring.NeutralScore,
			"financial_strength": scoring.NeutralScore,
			"sharpe":             scoring.NeutralScore,
			"max_drawdown":       scoring.NeutralScore,
			"dividend_bonus":     0.0,
		},
	}
}

func toFormulaPrices(monthly []domain.MonthlyPrice) []formulas.MonthlyPrice {
	prices := make([]formulas.MonthlyPrice, len(monthly))
	for i, m := range monthly {
		prices[i] = formulas.MonthlyPrice{YearMonth: m.YearMonth, AvgAdjClose: m.AvgAdjClose}
	}
	return prices
}

// scoreBellCurve scores growth using an asymmetric Gaussian centered
// at the target. Growth far above the peak is penalized gently, growth
// below it steeply. Non-positive growth lands on the floor.
func scoreBellCurve(value, peak float64) float64 {
	if value <= 0 {
		return scoring.BellCurveFloor
	}

	sigma := scoring.BellCurveSigmaLeft
	if value >= peak {
		sigma = scoring.BellCurveSigmaRight
	}

	rawScore := math.Exp(-math.Pow(value-peak, 2) / (2 * math.Pow(sigma, 2)))

	return scoring.BellCurveFloor + rawScore*(1-scoring.BellCurveFloor)
}

// scoreConsistency rewards securities whose long and medium horizon
// growth rates agree.
func scoreConsistency(cagr10y, cagr5y *float64) float64 {
	if cagr10y == nil || cagr5y == nil {
		return scoring.NeutralConsistency
	}

	diff := math.Abs(*cagr10y - *cagr5y)
	switch {
	case diff < scoring.ConsistencyTight:
		return 1.0
	case diff < scoring.ConsistencyOK:
		return 0.8
	default:
		return math.Max(scoring.ConsistencyFloor, 1.0-diff*4)
	}
}

// scoreFinancialStrength blends margins, leverage, and liquidity.
// Unreported values fall back to conservative defaults rather than
// failing the score.
func scoreFinancialStrength(f *domain.Fundamentals) float64 {
	marginScore := 0.5
	if f != nil && f.ProfitMargin != nil {
		m := *f.ProfitMargin
		if m >= 0 {
			marginScore = math.Min(1.0, 0.5+m*2.5)
		} else {
			marginScore = math.Max(0.0, 0.5+m*2)
		}
	}

	de := scoring.DebtEquityDefault
	if f != nil && f.DebtToEquity != nil {
		de = *f.DebtToEquity
	}
	deScore := math.Max(0.0, 1.0-de/scoring.DebtEquityCap)

	cr := scoring.CurrentRatioDefault
	if f != nil && f.CurrentRatio != nil {
		cr = math.Min(*f.CurrentRatio, scoring.CurrentRatioCap)
	}
	crScore := math.Min(1.0, cr/2.0)

	return marginScore*scoring.StrengthWeightProfitMargin +
		deScore*scoring.StrengthWeightDebtEquity +
		crScore*scoring.StrengthWeightCurrentRatio
}

// scoreSharpe maps a Sharpe ratio into [0, 1]
func scoreSharpe(sharpe *float64) float64 {
	if sharpe == nil {
		return scoring.NeutralScore
	}

	s := *sharpe
	switch {
	case s >= scoring.SharpeExcellent:
		return 1.0
	case s >= scoring.SharpeGood:
		return 0.7 + (s-1.0)*0.3
	case s >= scoring.SharpeOK:
		return 0.4 + (s-0.5)*0.6
	case s >= 0:
		return s * 0.8
	default:
		return 0.0
	}
}

// scoreDrawdown maps a max drawdown percentage into [0, 1]
func scoreDrawdown(drawdown *float64) float64 {
	if drawdown == nil {
		return scoring.NeutralScore
	}

	dd := *drawdown
	switch {
	case dd <= scoring.DrawdownExcellent:
		return 1.0
	case dd <= scoring.DrawdownGood:
		return 0.8 + (scoring.DrawdownGood-dd)*2
	case dd <= scoring.DrawdownOK:
		return 0.6 + (scoring.DrawdownOK-dd)*2
	case dd <= scoring.DrawdownPoor:
		return 0.2 + (scoring.DrawdownPoor-dd)*2
	default:
		return math.Max(0.0, 0.2-(dd-scoring.DrawdownPoor))
	}
}

// dividendBonus rewards income on top of the weighted components
func dividendBonus(f *domain.Fundamentals) float64 {
	if f == nil || f.DividendYield == nil {
		return 0.0
	}

	yield := *f.DividendYield
	switch {
	case yield >= scoring.HighDividendThreshold:
		return scoring.HighDividendBonus
	case yield >= scoring.MidDividendThreshold:
		return scoring.MidDividendBonus
	case yield > 0:
		return scoring.LowDividendBonus
	default:
		return 0.0
	}
}
