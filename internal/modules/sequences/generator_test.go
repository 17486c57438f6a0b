package sequences

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/helmsman/internal/domain"
)

func action(symbol, side string, value, priority float64) ActionCandidate {
	return ActionCandidate{
		Symbol:   symbol,
		Name:     symbol + " Corp",
		Side:     side,
		Quantity: 10,
		Price:    value / 10,
		ValueEUR: value,
		Currency: "EUR",
		Priority: priority,
	}
}

func collectAll(t *testing.T, opportunities OpportunitiesByCategory, cfg GenerationConfig) []ActionSequence {
	t.Helper()
	return NewService(zerolog.Nop()).GenerateAll(opportunities, cfg)
}

func TestGenerator_SingleCategoryDepths(t *testing.T) {
	opportunities := OpportunitiesByCategory{
		CategoryOpportunityBuys: {
			action("A", domain.TradeSideBuy, 100, 0.9),
			action("B", domain.TradeSideBuy, 100, 0.8),
			action("C", domain.TradeSideBuy, 100, 0.7),
		},
	}

	cfg := GenerationConfig{MaxDepth: 2, AvailableCashEUR: 10000, BatchSize: 10}
	sequences := collectAll(t, opportunities, cfg)

	// 3 singles + 3 pairs
	assert.Len(t, sequences, 6)
	for _, seq := range sequences {
		assert.LessOrEqual(t, seq.Depth, 2)
		assert.Equal(t, string(CategoryOpportunityBuys), seq.Category)
	}
}

func TestGenerator_PerCategoryModeDoesNotMix(t *testing.T) {
	opportunities := OpportunitiesByCategory{
		CategoryProfitTaking: {
			action("SELL1", domain.TradeSideSell, 500, 0.9),
		},
		CategoryOpportunityBuys: {
			action("BUY1", domain.TradeSideBuy, 300, 0.8),
		},
	}

	cfg := GenerationConfig{MaxDepth: 2, AvailableCashEUR: 10000, BatchSize: 10}
	sequences := collectAll(t, opportunities, cfg)

	require.Len(t, sequences, 2, "no cross-category pairs without weighted mode")
	for _, seq := range sequences {
		assert.Equal(t, 1, seq.Depth)
	}
}

func TestGenerator_WeightedModeMixesCategories(t *testing.T) {
	opportunities := OpportunitiesByCategory{
		CategoryProfitTaking: {
			action("SELL1", domain.TradeSideSell, 500, 0.9),
		},
		CategoryOpportunityBuys: {
			action("BUY1", domain.TradeSideBuy, 300, 0.8),
		},
	}

	cfg := GenerationConfig{MaxDepth: 2, Weighted: true, AvailableCashEUR: 10000, BatchSize: 10}
	sequences := collectAll(t, opportunities, cfg)

	require.Len(t, sequences, 3, "two singles plus the mixed pair")

	var foundPair bool
	for _, seq := range sequences {
		if seq.Depth == 2 {
			foundPair = true
			assert.Equal(t, "weighted", seq.Category)
		}
	}
	assert.True(t, foundPair)
}

func TestGenerator_PerCategoryCap(t *testing.T) {
	candidates := make([]ActionCandidate, 6)
	for i := range candidates {
		candidates[i] = action(string(rune('A'+i)), domain.TradeSideBuy, 100, float64(i)/10)
	}

	opportunities := OpportunitiesByCategory{CategoryOpportunityBuys: candidates}
	cfg := GenerationConfig{MaxDepth: 1, PerCategoryCap: 2, AvailableCashEUR: 10000, BatchSize: 10}

	sequences := collectAll(t, opportunities, cfg)
	require.Len(t, sequences, 2, "cap keeps only the top two candidates")

	// The two highest priorities survive
	symbols := map[string]bool{}
	for _, seq := range sequences {
		symbols[seq.Actions[0].Symbol] = true
	}
	assert.True(t, symbols["F"])
	assert.True(t, symbols["E"])
}

func TestNormalizeSequence_SellBeforeBuy(t *testing.T) {
	actions := []ActionCandidate{
		action("BBB", domain.TradeSideBuy, 100, 0.5),
		action("ZZZ", domain.TradeSideSell, 100, 0.5),
		action("AAA", domain.TradeSideSell, 100, 0.5),
	}

	normalized := normalizeSequence(actions)
	require.Len(t, normalized, 3)
	assert.Equal(t, "AAA", normalized[0].Symbol)
	assert.Equal(t, "ZZZ", normalized[1].Symbol)
	assert.Equal(t, "BBB", normalized[2].Symbol)
}

func TestComputeSequenceHash_OrderIndependent(t *testing.T) {
	sell := action("S", domain.TradeSideSell, 100, 0.5)
	buy := action("B", domain.TradeSideBuy, 100, 0.5)

	h1 := computeSequenceHash(normalizeSequence([]ActionCandidate{sell, buy}))
	h2 := computeSequenceHash(normalizeSequence([]ActionCandidate{buy, sell}))
	assert.Equal(t, h1, h2)

	other := action("X", domain.TradeSideBuy, 100, 0.5)
	h3 := computeSequenceHash(normalizeSequence([]ActionCandidate{sell, other}))
	assert.NotEqual(t, h1, h3)
}

func TestGenerator_DeduplicatesAcrossCategories(t *testing.T) {
	// The same action appearing in two categories yields one sequence
	shared := action("DUP", domain.TradeSideBuy, 100, 0.5)

	opportunities := OpportunitiesByCategory{
		CategoryRebalanceBuys:   {shared},
		CategoryOpportunityBuys: {shared},
	}

	cfg := GenerationConfig{MaxDepth: 1, AvailableCashEUR: 10000, BatchSize: 10}
	sequences := collectAll(t, opportunities, cfg)
	assert.Len(t, sequences, 1)
}

func TestGenerator_SortedByPriority(t *testing.T) {
	opportunities := OpportunitiesByCategory{
		CategoryOpportunityBuys: {
			action("LOW", domain.TradeSideBuy, 100, 0.2),
			action("HIGH", domain.TradeSideBuy, 100, 0.9),
		},
	}

	cfg := GenerationConfig{MaxDepth: 1, AvailableCashEUR: 10000, BatchSize: 10}
	sequences := collectAll(t, opportunities, cfg)

	require.Len(t, sequences, 2)
	assert.Equal(t, "HIGH", sequences[0].Actions[0].Symbol)
}
