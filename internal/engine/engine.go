// Package engine orchestrates the full decision cycle: score the
// universe, rank candidates, and produce sized buy recommendations.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/helmsman/internal/domain"
	"github.com/aristath/helmsman/internal/modules/rebalancing"
	"github.com/aristath/helmsman/internal/modules/scoring"
)

// UniverseSource supplies the securities to score.
type UniverseSource interface {
	Securities(ctx context.Context) ([]domain.Security, error)
}

// PortfolioSource supplies the current portfolio snapshot and cash.
type PortfolioSource interface {
	Context(ctx context.Context) (*domain.PortfolioContext, error)
	AvailableCashEUR(ctx context.Context) (float64, error)
}

// CycleResult is the outcome of one full decision cycle.
type CycleResult struct {
	RunID           string                         `json:"run_id"`
	Scores          []scoring.CalculatedStockScore `json:"scores"`
	Recommendations []domain.TradeRecommendation   `json:"recommendations"`
	StartedAt       time.Time                      `json:"started_at"`
	CompletedAt     time.Time                      `json:"completed_at"`
}

// Engine wires the scoring pipeline to the buy selector. All provider
// traffic, price lookups included, goes through the scoring service so
// one rate limit bounds the whole cycle.
type Engine struct {
	scorer    *scoring.Service
	selector  *rebalancing.Selector
	universe  UniverseSource
	portfolio PortfolioSource
	log       zerolog.Logger

	mu         sync.RWMutex
	lastResult *CycleResult
}

// New creates a new engine
func New(
	scorer *scoring.Service,
	selector *rebalancing.Selector,
	universe UniverseSource,
	portfolio PortfolioSource,
	log zerolog.Logger,
) *Engine {
	return &Engine{
		scorer:    scorer,
		selector:  selector,
		universe:  universe,
		portfolio: portfolio,
		log:       log.With().Str("module", "engine").Logger(),
	}
}

// RunCycle executes one full decision cycle and caches its result.
func (e *Engine) RunCycle(ctx context.Context) (*CycleResult, error) {
	runID := uuid.New().String()
	startedAt := time.Now().UTC()

	log := e.log.With().Str("run_id", runID).Logger()
	log.Info().Msg("decision cycle started")

	securities, err := e.universe.Securities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load universe: %w", err)
	}

	portfolioContext, err := e.portfolio.Context(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("portfolio context unavailable, scoring without allocation fit")
		portfolioContext = nil
	}

	scores, err := e.scorer.ScoreUniverse(ctx, securities, portfolioContext)
	if err != nil {
		return nil, fmt.Errorf("scoring failed: %w", err)
	}

	cash, err := e.portfolio.AvailableCashEUR(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read available cash: %w", err)
	}

	candidates := buildCandidates(securities, scores)
	prices := e.fetchPrices(ctx, securities)
	recommendations := e.selector.SelectBuys(candidates, cash, prices)

	result := &CycleResult{
		RunID:           runID,
		Scores:          scores,
		Recommendations: recommendations,
		StartedAt:       startedAt,
		CompletedAt:     time.Now().UTC(),
	}

	e.mu.Lock()
	e.lastResult = result
	e.mu.Unlock()

	log.Info().
		Int("securities", len(securities)).
		Int("recommendations", len(recommendations)).
		Dur("elapsed", result.CompletedAt.Sub(startedAt)).
		Msg("decision cycle complete")

	return result, nil
}

// LastResult returns the most recent cycle result, nil before the
// first cycle completes.
func (e *Engine) LastResult() *CycleResult {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastResult
}

// buildCandidates pairs securities with their scores.
func buildCandidates(securities []domain.Security, scores []scoring.CalculatedStockScore) []rebalancing.Candidate {
	candidates := make([]rebalancing.Candidate, 0, len(securities))
	for i, security := range securities {
		if i >= len(scores) {
			break
		}

		candidates = append(candidates, rebalancing.Candidate{
			Security:   security,
			Score:      scores[i],
			Volatility: scores[i].Volatility,
		})
	}

	return candidates
}

// fetchPrices looks up current prices, skipping failures. Missing
// entries make the selector skip the symbol.
func (e *Engine) fetchPrices(ctx context.Context, securities []domain.Security) map[string]float64 {
	prices := make(map[string]float64, len(securities))
	for _, security := range securities {
		price, err := e.scorer.CurrentPrice(ctx, security.Symbol)
		if err != nil {
			e.log.Warn().Err(err).Str("symbol", security.Symbol).Msg("current price unavailable")
			continue
		}
		prices[security.Symbol] = price
	}
	return prices
}
