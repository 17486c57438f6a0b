package scoring

import "time"

// QualityScore is the result of quality scoring for one security.
type QualityScore struct {
	Components map[string]float64 `json:"components"`
	Score      float64            `json:"score"`
}

// OpportunityScore is the result of opportunity scoring.
type OpportunityScore struct {
	Components map[string]float64 `json:"components"`
	Score      float64            `json:"score"`
}

// AnalystScore is the result of analyst sentiment scoring.
type AnalystScore struct {
	Components map[string]float64 `json:"components"`
	Score      float64            `json:"score"`
}

// AllocationFitScore is the result of allocation-fit scoring. It is
// only produced when a portfolio context is available.
type AllocationFitScore struct {
	Components map[string]float64 `json:"components"`
	Score      float64            `json:"score"`
}

// CalculatedStockScore is the combined score for one security.
type CalculatedStockScore struct {
	Symbol        string              `json:"symbol"`
	Quality       *QualityScore       `json:"quality,omitempty"`
	Opportunity   *OpportunityScore   `json:"opportunity,omitempty"`
	Analyst       *AnalystScore       `json:"analyst,omitempty"`
	AllocationFit *AllocationFitScore `json:"allocation_fit,omitempty"`
	TotalScore    float64             `json:"total_score"`

	// Volatility is annualized volatility from the daily closes, nil
	// when the series was too short. Position sizing reuses it.
	Volatility *float64 `json:"volatility,omitempty"`

	CalculatedAt time.Time `json:"calculated_at"`
}
