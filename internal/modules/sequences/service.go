package sequences

import (
	"sort"

	"github.com/rs/zerolog"
)

// Service is the entry point for sequence generation.
type Service struct {
	generator *Generator
	log       zerolog.Logger
}

// NewService creates a new sequences service
func NewService(log zerolog.Logger) *Service {
	return &Service{
		generator: NewGenerator(log),
		log:       log.With().Str("module", "sequences").Logger(),
	}
}

// Stream lazily generates sequences and returns a batch stream. The
// caller owns the stream and must Close it.
func (s *Service) Stream(opportunities OpportunitiesByCategory, cfg GenerationConfig) *BatchStream {
	total := 0
	for _, candidates := range opportunities {
		total += len(candidates)
	}

	s.log.Info().
		Int("candidates", total).
		Int("max_depth", cfg.MaxDepth).
		Bool("weighted", cfg.Weighted).
		Msg("starting sequence generation")

	return s.generator.Stream(opportunities, cfg)
}

// GenerateAll materializes every feasible sequence, sorted by priority
// descending. Convenient for small candidate sets; large universes
// should use Stream instead.
func (s *Service) GenerateAll(opportunities OpportunitiesByCategory, cfg GenerationConfig) []ActionSequence {
	stream := s.Stream(opportunities, cfg)
	defer stream.Close()

	var sequences []ActionSequence
	for {
		batch, ok := stream.Next()
		if !ok {
			break
		}
		sequences = append(sequences, batch.Sequences...)
	}

	sort.SliceStable(sequences, func(i, j int) bool {
		return sequences[i].Priority > sequences[j].Priority
	})

	return sequences
}
