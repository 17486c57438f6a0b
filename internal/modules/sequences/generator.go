package sequences

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/rs/zerolog"

	"github.com/aristath/helmsman/internal/domain"
)

// Generator lazily enumerates all valid combinations of candidate
// actions:
// - caps each category to its top candidates by priority
// - generates subsets of size 1 to max depth
// - normalizes action order and deduplicates with an
//   order-independent hash
// - prunes sequences that fail the cash feasibility check
//
// Sequences are produced on demand through a BatchStream; nothing is
// materialized beyond the current batch and its lookahead.
type Generator struct {
	log zerolog.Logger
}

// NewGenerator creates a new sequence generator
func NewGenerator(log zerolog.Logger) *Generator {
	return &Generator{
		log: log.With().Str("module", "sequences").Logger(),
	}
}

// candidatePool is one enumeration unit: a named set of candidates.
type candidatePool struct {
	category   string
	candidates []ActionCandidate
}

// Stream starts lazy generation and returns a batch stream over the
// results. The caller must Close the stream when done.
func (g *Generator) Stream(opportunities OpportunitiesByCategory, cfg GenerationConfig) *BatchStream {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultGenerationConfig().MaxDepth
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultGenerationConfig().BatchSize
	}

	pools := g.buildPools(opportunities, cfg)
	checker := NewFeasibilityChecker(cfg)

	out := make(chan ActionSequence)
	quit := make(chan struct{})

	go func() {
		defer close(out)
		g.produce(out, quit, pools, cfg, checker)
	}()

	return newBatchStream(out, quit, cfg.BatchSize)
}

// buildPools applies the per-category cap and groups candidates into
// enumeration pools. Weighted mode pools everything together so
// sequences can mix categories.
func (g *Generator) buildPools(opportunities OpportunitiesByCategory, cfg GenerationConfig) []candidatePool {
	var pools []candidatePool

	if cfg.Weighted {
		var all []ActionCandidate
		for _, category := range AllCategories() {
			all = append(all, capByPriority(opportunities[category], cfg.PerCategoryCap)...)
		}
		sortByPriority(all)
		if len(all) > 0 {
			pools = append(pools, candidatePool{category: "weighted", candidates: all})
		}
		return pools
	}

	for _, category := range AllCategories() {
		capped := capByPriority(opportunities[category], cfg.PerCategoryCap)
		if len(capped) > 0 {
			pools = append(pools, candidatePool{category: string(category), candidates: capped})
		}
	}

	return pools
}

// produce enumerates every pool depth by depth, pushing sequences to
// out until exhaustion or until quit closes.
func (g *Generator) produce(
	out chan<- ActionSequence,
	quit <-chan struct{},
	pools []candidatePool,
	cfg GenerationConfig,
	checker *FeasibilityChecker,
) {
	seen := make(map[string]bool)
	produced := 0
	pruned := 0

	for _, pool := range pools {
		maxDepth := cfg.MaxDepth
		if maxDepth > len(pool.candidates) {
			maxDepth = len(pool.candidates)
		}

		for depth := 1; depth <= maxDepth; depth++ {
			done := !forEachCombination(pool.candidates, depth, func(combo []ActionCandidate) bool {
				normalized := normalizeSequence(combo)

				hash := computeSequenceHash(normalized)
				if seen[hash] {
					return true
				}
				seen[hash] = true

				if !checker.IsFeasible(normalized) {
					pruned++
					return true
				}

				seq := ActionSequence{
					Actions:      normalized,
					Priority:     computePriority(normalized),
					Depth:        len(normalized),
					Category:     pool.category,
					SequenceHash: hash,
				}

				select {
				case out <- seq:
					produced++
					return true
				case <-quit:
					return false
				}
			})
			if done {
				g.log.Debug().Msg("generation cancelled by consumer")
				return
			}
		}
	}

	g.log.Info().
		Int("sequences", produced).
		Int("pruned_infeasible", pruned).
		Msg("sequence generation complete")
}

// forEachCombination visits all k-element subsets of items in
// lexicographic index order. The visit callback returns false to
// abort; the function then returns false as well.
func forEachCombination(items []ActionCandidate, k int, visit func([]ActionCandidate) bool) bool {
	n := len(items)
	if k > n || k <= 0 {
		return true
	}

	indices := make([]int, k)
	for i := range indices {
		indices[i] = i
	}

	for {
		combo := make([]ActionCandidate, k)
		for i, idx := range indices {
			combo[i] = items[idx]
		}
		if !visit(combo) {
			return false
		}

		// Find rightmost index that can be incremented
		i := k - 1
		for i >= 0 && indices[i] == n-k+i {
			i--
		}
		if i < 0 {
			return true
		}

		indices[i]++
		for j := i + 1; j < k; j++ {
			indices[j] = indices[j-1] + 1
		}
	}
}

// capByPriority keeps the top-n candidates by priority. Zero or
// negative n keeps everything.
func capByPriority(candidates []ActionCandidate, n int) []ActionCandidate {
	if len(candidates) == 0 {
		return nil
	}

	sorted := make([]ActionCandidate, len(candidates))
	copy(sorted, candidates)
	sortByPriority(sorted)

	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted
}

func sortByPriority(candidates []ActionCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})
}

// normalizeSequence sorts actions SELL first, then BUY, with symbol
// as tiebreaker. "SELL A + BUY B" and "BUY B + SELL A" normalize to
// the same order and therefore the same hash.
func normalizeSequence(actions []ActionCandidate) []ActionCandidate {
	result := make([]ActionCandidate, len(actions))
	copy(result, actions)

	sort.Slice(result, func(i, j int) bool {
		if result[i].Side != result[j].Side {
			return result[i].Side == domain.TradeSideSell
		}
		return result[i].Symbol < result[j].Symbol
	})

	return result
}

// computeSequenceHash creates a deterministic MD5 hash over the
// normalized (symbol, side, quantity) tuples.
func computeSequenceHash(actions []ActionCandidate) string {
	type tuple struct {
		Symbol   string `json:"symbol"`
		Side     string `json:"side"`
		Quantity int    `json:"quantity"`
	}

	tuples := make([]tuple, len(actions))
	for i, action := range actions {
		tuples[i] = tuple{
			Symbol:   action.Symbol,
			Side:     action.Side,
			Quantity: action.Quantity,
		}
	}

	jsonBytes, err := json.Marshal(tuples)
	if err != nil {
		return ""
	}

	hash := md5.Sum(jsonBytes)
	return hex.EncodeToString(hash[:])
}

// computePriority is the average of the individual action priorities
func computePriority(actions []ActionCandidate) float64 {
	if len(actions) == 0 {
		return 0
	}

	var total float64
	for _, a := range actions {
		total += a.Priority
	}
	return total / float64(len(actions))
}
