package rebalancing

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/helmsman/internal/domain"
)

// Selector picks sized buy recommendations out of ranked candidates.
type Selector struct {
	cfg Config
	log zerolog.Logger
}

// NewSelector creates a new selector
func NewSelector(cfg Config, log zerolog.Logger) *Selector {
	return &Selector{
		cfg: cfg,
		log: log.With().Str("module", "rebalancing").Logger(),
	}
}

// SelectBuys walks the ranked candidates allocating cash until it runs
// out of cash, trades, or candidates.
//
// Rules:
//   - below the minimum cash threshold nothing is bought
//   - candidates under the minimum score are dropped before ranking
//   - quantities are rounded down to whole lots; a candidate whose
//     single lot costs more than its sized investment is skipped, not
//     partially filled
//   - candidates without a known price are skipped
func (s *Selector) SelectBuys(candidates []Candidate, availableCash float64, prices map[string]float64) []domain.TradeRecommendation {
	if availableCash < s.cfg.MinCashThreshold {
		s.log.Debug().
			Float64("cash", availableCash).
			Float64("threshold", s.cfg.MinCashThreshold).
			Msg("cash below threshold, no buys")
		return []domain.TradeRecommendation{}
	}

	eligible := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Score.TotalScore >= s.cfg.MinStockScore {
			eligible = append(eligible, c)
		}
	}

	ranked := RankCandidates(eligible)

	recommendations := make([]domain.TradeRecommendation, 0, len(ranked))
	remainingCash := availableCash

	for _, candidate := range ranked {
		if remainingCash < s.cfg.MinTradeSize {
			break
		}
		if s.cfg.MaxTrades > 0 && len(recommendations) >= s.cfg.MaxTrades {
			break
		}

		price, ok := prices[candidate.Security.Symbol]
		if !ok || price <= 0 {
			s.log.Warn().Str("symbol", candidate.Security.Symbol).Msg("no price available, skipping")
			continue
		}

		investment := CalculatePositionSize(
			s.cfg.BasePositionSize,
			s.cfg.MinPositionSize,
			candidate.Score.TotalScore,
			candidate.CombinedPriority,
			candidate.Volatility,
		)
		if investment > remainingCash {
			investment = remainingCash
		}

		minLot := candidate.Security.MinLot
		if minLot <= 0 {
			minLot = 1
		}

		lotCost := price * float64(minLot)
		numLots := int(investment / lotCost)
		if numLots == 0 {
			continue
		}

		quantity := numLots * minLot
		value := float64(quantity) * price

		recommendations = append(recommendations, domain.TradeRecommendation{
			Symbol:         candidate.Security.Symbol,
			Name:           candidate.Security.Name,
			Side:           domain.TradeSideBuy,
			Quantity:       quantity,
			EstimatedPrice: price,
			EstimatedValue: value,
			Reason:         buildReason(candidate),
		})

		remainingCash -= value
	}

	s.log.Info().
		Int("candidates", len(candidates)).
		Int("recommendations", len(recommendations)).
		Float64("cash_remaining", remainingCash).
		Msg("buy selection complete")

	return recommendations
}

// buildReason summarizes why a candidate was selected
func buildReason(candidate RankedCandidate) string {
	parts := []string{}

	if candidate.Score.Quality != nil && candidate.Score.Quality.Score >= 0.7 {
		parts = append(parts, "high quality")
	}
	if candidate.Score.Opportunity != nil && candidate.Score.Opportunity.Score >= 0.7 {
		parts = append(parts, "buy opportunity")
	}
	if candidate.Score.AllocationFit != nil && candidate.Score.AllocationFit.Score >= 0.7 {
		parts = append(parts, "fills gap")
	}

	parts = append(parts, fmt.Sprintf("score: %.2f", candidate.Score.TotalScore))

	if m := candidate.Security.PriorityMultiplier; m > 0 && m != 1.0 {
		parts = append(parts, fmt.Sprintf("mult: %.1fx", m))
	}

	return strings.Join(parts, ", ")
}
