package sequences

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/helmsman/internal/domain"
)

// buyUniverse builds n independent buy candidates.
func buyUniverse(n int) OpportunitiesByCategory {
	candidates := make([]ActionCandidate, n)
	for i := range candidates {
		candidates[i] = action(string(rune('A'+i)), domain.TradeSideBuy, 100, float64(n-i)/float64(n))
	}
	return OpportunitiesByCategory{CategoryOpportunityBuys: candidates}
}

func TestBatchStream_ExactBatching(t *testing.T) {
	// 5 candidates at depth 1 = 5 sequences, batches of 2 = 3 batches
	cfg := GenerationConfig{MaxDepth: 1, AvailableCashEUR: 10000, BatchSize: 2}
	stream := NewGenerator(zerolog.Nop()).Stream(buyUniverse(5), cfg)
	defer stream.Close()

	b1, ok := stream.Next()
	require.True(t, ok)
	assert.Equal(t, 1, b1.Number)
	assert.Len(t, b1.Sequences, 2)
	assert.True(t, b1.MoreAvailable)
	assert.Equal(t, 0, b1.TotalBatches, "total unknown before exhaustion")

	b2, ok := stream.Next()
	require.True(t, ok)
	assert.Len(t, b2.Sequences, 2)
	assert.True(t, b2.MoreAvailable)

	b3, ok := stream.Next()
	require.True(t, ok)
	assert.Len(t, b3.Sequences, 1)
	assert.False(t, b3.MoreAvailable, "lookahead knows this is the last batch")
	assert.Equal(t, 3, b3.TotalBatches)

	_, ok = stream.Next()
	assert.False(t, ok)
}

func TestBatchStream_ExactMultiple(t *testing.T) {
	// 4 sequences in batches of 2: the second batch must already know
	// it is final
	cfg := GenerationConfig{MaxDepth: 1, AvailableCashEUR: 10000, BatchSize: 2}
	stream := NewGenerator(zerolog.Nop()).Stream(buyUniverse(4), cfg)
	defer stream.Close()

	b1, _ := stream.Next()
	assert.True(t, b1.MoreAvailable)

	b2, ok := stream.Next()
	require.True(t, ok)
	assert.False(t, b2.MoreAvailable)
	assert.Equal(t, 2, b2.TotalBatches)

	_, ok = stream.Next()
	assert.False(t, ok)
}

func TestBatchStream_EmptyResult(t *testing.T) {
	cfg := GenerationConfig{MaxDepth: 1, AvailableCashEUR: 10, MinTradeValueEUR: 1000, BatchSize: 2}
	stream := NewGenerator(zerolog.Nop()).Stream(buyUniverse(3), cfg)
	defer stream.Close()

	_, ok := stream.Next()
	assert.False(t, ok, "everything pruned yields no batches")
}

func TestBatchStream_CloseStopsGeneration(t *testing.T) {
	// A large weighted universe would produce far more than one batch;
	// closing early must not hang or leak the producer.
	cfg := GenerationConfig{MaxDepth: 4, Weighted: true, AvailableCashEUR: 1e9, BatchSize: 10}
	stream := NewGenerator(zerolog.Nop()).Stream(buyUniverse(15), cfg)

	batch, ok := stream.Next()
	require.True(t, ok)
	assert.Len(t, batch.Sequences, 10)

	stream.Close()

	_, ok = stream.Next()
	assert.False(t, ok, "closed stream yields nothing")

	// Close twice is safe
	stream.Close()
}

func TestBatchStream_LazyDoesNotMaterializeEverything(t *testing.T) {
	// 20 candidates at depth 4 is thousands of combinations; pulling a
	// single small batch must return promptly with exactly BatchSize
	// sequences.
	cfg := GenerationConfig{MaxDepth: 4, Weighted: true, AvailableCashEUR: 1e9, BatchSize: 5}
	stream := NewGenerator(zerolog.Nop()).Stream(buyUniverse(20), cfg)
	defer stream.Close()

	batch, ok := stream.Next()
	require.True(t, ok)
	assert.Len(t, batch.Sequences, 5)
	assert.True(t, batch.MoreAvailable)
}
