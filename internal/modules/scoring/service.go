package scoring

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/aristath/helmsman/internal/domain"
)

// Calculator produces a combined score for one security from its raw
// inputs. Implemented by scorers.StockScorer.
type Calculator interface {
	Calculate(security domain.Security, inputs CalculatorInputs) CalculatedStockScore
}

// CalculatorInputs mirrors the raw data a Calculator consumes. It
// lives here so the service package does not import the scorers it
// drives.
type CalculatorInputs struct {
	MonthlyPrices      []domain.MonthlyPrice
	DailyPrices        []float64
	Fundamentals       *domain.Fundamentals
	AnalystData        *domain.AnalystData
	PortfolioContext   *domain.PortfolioContext
	TargetAnnualReturn float64
	MarketAvgPE        float64
}

// ServiceConfig configures the batch scoring service.
type ServiceConfig struct {
	Workers            int
	TargetAnnualReturn float64
	MarketAvgPE        float64

	// RequestsPerSecond throttles provider calls across all workers.
	RequestsPerSecond float64
	Burst             int
}

// Service scores a universe of securities in parallel. Provider
// lookups are throttled by a shared token bucket so worker count does
// not translate into provider hammering.
type Service struct {
	provider   domain.MarketDataProvider
	calculator Calculator
	limiter    *rate.Limiter
	cfg        ServiceConfig
	log        zerolog.Logger
}

// NewService creates a new scoring service. Zero config values fall
// back to defaults; negative ones are a construction error.
func NewService(provider domain.MarketDataProvider, calculator Calculator, cfg ServiceConfig, log zerolog.Logger) (*Service, error) {
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers cannot be negative, got %d", cfg.Workers)
	}
	if cfg.RequestsPerSecond < 0 {
		return nil, fmt.Errorf("requests per second cannot be negative, got %f", cfg.RequestsPerSecond)
	}
	if cfg.Burst < 0 {
		return nil, fmt.Errorf("burst cannot be negative, got %d", cfg.Burst)
	}

	if cfg.Workers == 0 {
		cfg.Workers = 4
	}
	if cfg.TargetAnnualReturn <= 0 {
		cfg.TargetAnnualReturn = DefaultTargetAnnualReturn
	}
	if cfg.MarketAvgPE <= 0 {
		cfg.MarketAvgPE = DefaultMarketAvgPE
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = 10
	}
	if cfg.Burst == 0 {
		cfg.Burst = 5
	}

	return &Service{
		provider:   provider,
		calculator: calculator,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		cfg:        cfg,
		log:        log.With().Str("module", "scoring").Logger(),
	}, nil
}

// ScoreUniverse scores every security in parallel and returns results
// in input order. A security whose data cannot be fetched still gets
// scored on whatever arrived; missing pieces degrade to neutral
// components instead of failing the batch. The only hard failure is
// context cancellation.
func (s *Service) ScoreUniverse(
	ctx context.Context,
	securities []domain.Security,
	portfolioContext *domain.PortfolioContext,
) ([]CalculatedStockScore, error) {
	if len(securities) == 0 {
		return []CalculatedStockScore{}, nil
	}

	jobs := make(chan int, len(securities))
	results := make([]CalculatedStockScore, len(securities))

	numWorkers := s.cfg.Workers
	if len(securities) < numWorkers {
		numWorkers = len(securities)
	}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					return
				}
				results[idx] = s.scoreOne(ctx, securities[idx], portfolioContext)
			}
		}()
	}

	for idx := range securities {
		jobs <- idx
	}
	close(jobs)

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// scoreOne fetches inputs for one security and scores it
func (s *Service) scoreOne(ctx context.Context, security domain.Security, portfolioContext *domain.PortfolioContext) CalculatedStockScore {
	inputs := CalculatorInputs{
		PortfolioContext:   portfolioContext,
		TargetAnnualReturn: s.cfg.TargetAnnualReturn,
		MarketAvgPE:        s.cfg.MarketAvgPE,
	}

	if s.wait(ctx, security.Symbol) {
		bars, err := s.provider.DailyBars(ctx, security.Symbol)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", security.Symbol).Msg("daily bars unavailable, scoring without technicals")
		} else {
			inputs.DailyPrices = domain.Closes(bars)
		}
	}

	if s.wait(ctx, security.Symbol) {
		monthly, err := s.provider.MonthlyPrices(ctx, security.Symbol)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", security.Symbol).Msg("monthly prices unavailable, quality will be neutral")
		} else {
			inputs.MonthlyPrices = monthly
		}
	}

	if s.wait(ctx, security.Symbol) {
		fundamentals, err := s.provider.Fundamentals(ctx, security.Symbol)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", security.Symbol).Msg("fundamentals unavailable")
		} else {
			inputs.Fundamentals = fundamentals
		}
	}

	if s.wait(ctx, security.Symbol) {
		analystData, err := s.provider.AnalystData(ctx, security.Symbol)
		if err != nil {
			s.log.Debug().Err(err).Str("symbol", security.Symbol).Msg("no analyst coverage")
		} else {
			inputs.AnalystData = analystData
		}
	}

	score := s.calculator.Calculate(security, inputs)

	s.log.Debug().
		Str("symbol", security.Symbol).
		Float64("total_score", score.TotalScore).
		Msg("security scored")

	return score
}

// CurrentPrice fetches the latest tradable price through the shared
// limiter, so on-demand price lookups spend the same provider budget
// as the scoring path.
func (s *Service) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limiter wait aborted: %w", err)
	}
	return s.provider.CurrentPrice(ctx, symbol)
}

// wait blocks on the shared limiter, returning false if the context
// died while waiting.
func (s *Service) wait(ctx context.Context, symbol string) bool {
	if err := s.limiter.Wait(ctx); err != nil {
		s.log.Debug().Err(err).Str("symbol", symbol).Msg("rate limiter wait aborted")
		return false
	}
	return true
}
