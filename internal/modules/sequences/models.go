// Package sequences generates candidate trading sequences from
// per-category opportunities, deduplicates them, and streams the
// feasible ones out in batches.
package sequences

// OpportunityCategory classifies where a candidate action came from.
type OpportunityCategory string

// Opportunity categories.
const (
	CategoryProfitTaking    OpportunityCategory = "profit_taking"
	CategoryAveragingDown   OpportunityCategory = "averaging_down"
	CategoryRebalanceSells  OpportunityCategory = "rebalance_sells"
	CategoryRebalanceBuys   OpportunityCategory = "rebalance_buys"
	CategoryOpportunityBuys OpportunityCategory = "opportunity_buys"
)

// AllCategories lists every category in canonical order.
func AllCategories() []OpportunityCategory {
	return []OpportunityCategory{
		CategoryProfitTaking,
		CategoryAveragingDown,
		CategoryRebalanceSells,
		CategoryRebalanceBuys,
		CategoryOpportunityBuys,
	}
}

// ActionCandidate is a single potential trade action.
type ActionCandidate struct {
	Symbol   string   `json:"symbol"`
	Name     string   `json:"name"`
	Side     string   `json:"side"` // BUY or SELL
	Quantity int      `json:"quantity"`
	Price    float64  `json:"price"`
	ValueEUR float64  `json:"value_eur"`
	Currency string   `json:"currency"`
	Priority float64  `json:"priority"`
	Reason   string   `json:"reason"`
	Tags     []string `json:"tags,omitempty"`
}

// OpportunitiesByCategory groups candidates by category.
type OpportunitiesByCategory map[OpportunityCategory][]ActionCandidate

// ActionSequence is an ordered set of actions meant to execute
// together. Actions are normalized SELL-first.
type ActionSequence struct {
	Actions      []ActionCandidate `json:"actions"`
	Priority     float64           `json:"priority"`
	Depth        int               `json:"depth"`
	Category     string            `json:"category"`
	SequenceHash string            `json:"sequence_hash"`
}

// GenerationConfig contains parameters for sequence generation.
type GenerationConfig struct {
	// MaxDepth is the maximum number of actions per sequence.
	MaxDepth int

	// PerCategoryCap keeps only the top-N candidates per category
	// before combining. Zero means no cap.
	PerCategoryCap int

	// Weighted pools candidates across categories into one candidate
	// set. When false each category yields its own sequences.
	Weighted bool

	// AvailableCashEUR is cash on hand for feasibility checks.
	AvailableCashEUR float64

	// MinTradeValueEUR drops sequences containing trades too small
	// to be worth their costs.
	MinTradeValueEUR float64

	// FixedCostEUR and PercentCost model per-trade transaction costs.
	FixedCostEUR float64
	PercentCost  float64

	// BatchSize is how many sequences each stream batch carries.
	BatchSize int
}

// DefaultGenerationConfig returns sensible defaults for generation.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		MaxDepth:       4,
		PerCategoryCap: 10,
		BatchSize:      100,
	}
}
