package scoring

// Scoring constants. All component weights and thresholds used by the
// quality, opportunity, analyst, and allocation-fit scorers live here
// so the formulas stay readable.

// =============================================================================
// Quality Score Constants
// =============================================================================

const (
	// Bell curve target for annualized growth
	DefaultTargetAnnualReturn = 0.11

	// Bell curve shape parameters (asymmetric Gaussian)
	BellCurveSigmaLeft  = 0.06 // Steeper rise (0% to peak)
	BellCurveSigmaRight = 0.10 // Gentler fall (peak to high growth)
	BellCurveFloor      = 0.15 // Minimum score for any positive return

	// Dividend thresholds for the quality bonus
	HighDividendThreshold = 0.06 // 6%+ yield gets max bonus
	MidDividendThreshold  = 0.03 // 3%+ yield gets mid bonus
	LowDividendBonus      = 0.03
	MidDividendBonus      = 0.07
	HighDividendBonus     = 0.10

	// Quality score component weights (must sum to 1.0)
	QualityWeightGrowth            = 0.40
	QualityWeightConsistency       = 0.20
	QualityWeightFinancialStrength = 0.20
	QualityWeightSharpe            = 0.10
	QualityWeightMaxDrawdown       = 0.10

	// Financial strength component weights (must sum to 1.0)
	StrengthWeightProfitMargin = 0.40
	StrengthWeightDebtEquity   = 0.30
	StrengthWeightCurrentRatio = 0.30

	// Financial strength defaults and caps
	DebtEquityCap       = 200.0 // D/E at or above this scores 0
	DebtEquityDefault   = 50.0  // Assumed D/E when unreported
	CurrentRatioCap     = 3.0   // Current ratio is capped here
	CurrentRatioDefault = 1.0   // Assumed current ratio when unreported

	// Sharpe ratio thresholds
	SharpeExcellent = 2.0 // Score = 1.0
	SharpeGood      = 1.0 // Score = 0.7+
	SharpeOK        = 0.5 // Score = 0.4+

	// Max drawdown thresholds (as positive percentages)
	DrawdownExcellent = 0.10 // <10% drawdown = 1.0
	DrawdownGood      = 0.20 // <20% drawdown = 0.8+
	DrawdownOK        = 0.30 // <30% drawdown = 0.6+
	DrawdownPoor      = 0.50 // <50% drawdown = 0.2+

	// Consistency thresholds on |CAGR(10y) - CAGR(5y)|
	ConsistencyTight = 0.02 // <2% divergence = 1.0
	ConsistencyOK    = 0.05 // <5% divergence = 0.8
	ConsistencyFloor = 0.40

	// NeutralConsistency applies when no 10-year history exists.
	NeutralConsistency = 0.60
)

// =============================================================================
// Opportunity Score Constants
// =============================================================================

const (
	// Market average P/E for relative valuation
	DefaultMarketAvgPE = 22.0

	// 52-week high thresholds
	BelowHighExcellent = 0.30 // 30%+ below = 1.0
	BelowHighGood      = 0.20 // 20-30% below = 0.8-1.0
	BelowHighOK        = 0.10 // 10-20% below = 0.5-0.8

	// EMA distance thresholds
	EMAVeryBelow = -0.10 // 10%+ below EMA = 1.0
	EMABelow     = -0.05 // 5-10% below = 0.7-1.0
	EMAVeryAbove = 0.10  // 10%+ above = 0.2

	// RSI thresholds
	RSIOversold   = 30.0 // Below = 1.0 (buy signal)
	RSIOverbought = 70.0 // Above = 0.0

	// Opportunity score component weights (must sum to 1.0)
	OpportunityWeight52WHigh   = 0.30
	OpportunityWeightEMA       = 0.25
	OpportunityWeightPE        = 0.25
	OpportunityWeightRSI       = 0.10
	OpportunityWeightBollinger = 0.10
)

// =============================================================================
// Analyst Score Constants
// =============================================================================

const (
	AnalystWeightRecommendation = 0.60
	AnalystWeightTarget         = 0.40
)

// =============================================================================
// Combined Score Weights
// =============================================================================

const (
	// Final score weights (must sum to 1.0)
	ScoreWeightQuality       = 0.35
	ScoreWeightOpportunity   = 0.35
	ScoreWeightAnalyst       = 0.15
	ScoreWeightAllocationFit = 0.15

	// Without allocation fit the other three sum to 0.85 and the
	// combined score is renormalized by this base.
	ScoreWeightBase = 0.85

	// NeutralScore substitutes for any component that could not be
	// calculated.
	NeutralScore = 0.5
)

// =============================================================================
// Allocation Fit Constants
// =============================================================================

const (
	// Allocation fit component weights (must sum to 1.0)
	AllocationWeightGeography     = 0.40
	AllocationWeightIndustry      = 0.30
	AllocationWeightAveragingDown = 0.30

	// Averaging down boost for positions underwater
	MaxCostBasisBoost       = 0.40 // Max boost at 20% loss
	CostBasisBoostThreshold = 0.20 // No boost beyond 20% loss

	// Concentration limits
	ConcentrationHigh = 0.10 // >10% of portfolio = reduce enthusiasm
	ConcentrationMed  = 0.05 // 5-10% = slight reduction
)

// =============================================================================
// Technical Indicator Parameters
// =============================================================================

const (
	EMALength       = 200
	RSILength       = 14
	BollingerLength = 20
	BollingerStd    = 2.0

	// Minimum data requirements
	MinDaysForOpportunity = 50
	MinMonthsForQuality   = 24
)
