// Package adapters contains concrete data sources for the engine.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/aristath/helmsman/internal/domain"
)

// FileStore serves universe, portfolio, and market data from JSON
// files under a data directory. Upstream sync jobs own writing those
// files; the engine only reads.
//
// Layout:
//
//	<dir>/securities.json          []domain.Security
//	<dir>/portfolio.json           portfolioFile
//	<dir>/market/<symbol>.json     marketDataFile
type FileStore struct {
	dir string
	log zerolog.Logger
}

// NewFileStore creates a new file-backed data store
func NewFileStore(dir string, log zerolog.Logger) *FileStore {
	return &FileStore{
		dir: dir,
		log: log.With().Str("component", "filestore").Logger(),
	}
}

type portfolioFile struct {
	Context          domain.PortfolioContext `json:"context"`
	AvailableCashEUR float64                 `json:"available_cash_eur"`
}

type marketDataFile struct {
	DailyBars     []domain.PriceBar     `json:"daily_bars"`
	MonthlyPrices []domain.MonthlyPrice `json:"monthly_prices"`
	Fundamentals  *domain.Fundamentals  `json:"fundamentals,omitempty"`
	AnalystData   *domain.AnalystData   `json:"analyst_data,omitempty"`
	CurrentPrice  float64               `json:"current_price"`
}

// Securities implements engine.UniverseSource
func (fs *FileStore) Securities(ctx context.Context) ([]domain.Security, error) {
	var securities []domain.Security
	if err := fs.readJSON("securities.json", &securities); err != nil {
		return nil, fmt.Errorf("failed to load universe: %w", err)
	}
	return securities, nil
}

// Context implements engine.PortfolioSource
func (fs *FileStore) Context(ctx context.Context) (*domain.PortfolioContext, error) {
	var pf portfolioFile
	if err := fs.readJSON("portfolio.json", &pf); err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}
	return &pf.Context, nil
}

// AvailableCashEUR implements engine.PortfolioSource
func (fs *FileStore) AvailableCashEUR(ctx context.Context) (float64, error) {
	var pf portfolioFile
	if err := fs.readJSON("portfolio.json", &pf); err != nil {
		return 0, fmt.Errorf("failed to load portfolio: %w", err)
	}
	return pf.AvailableCashEUR, nil
}

// DailyBars implements domain.MarketDataProvider
func (fs *FileStore) DailyBars(ctx context.Context, symbol string) ([]domain.PriceBar, error) {
	md, err := fs.readMarketData(symbol)
	if err != nil {
		return nil, err
	}
	return md.DailyBars, nil
}

// MonthlyPrices implements domain.MarketDataProvider
func (fs *FileStore) MonthlyPrices(ctx context.Context, symbol string) ([]domain.MonthlyPrice, error) {
	md, err := fs.readMarketData(symbol)
	if err != nil {
		return nil, err
	}
	return md.MonthlyPrices, nil
}

// Fundamentals implements domain.MarketDataProvider
func (fs *FileStore) Fundamentals(ctx context.Context, symbol string) (*domain.Fundamentals, error) {
	md, err := fs.readMarketData(symbol)
	if err != nil {
		return nil, err
	}
	return md.Fundamentals, nil
}

// AnalystData implements domain.MarketDataProvider
func (fs *FileStore) AnalystData(ctx context.Context, symbol string) (*domain.AnalystData, error) {
	md, err := fs.readMarketData(symbol)
	if err != nil {
		return nil, err
	}
	if md.AnalystData == nil {
		return nil, fmt.Errorf("no analyst data for %s", symbol)
	}
	return md.AnalystData, nil
}

// CurrentPrice implements domain.MarketDataProvider
func (fs *FileStore) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	md, err := fs.readMarketData(symbol)
	if err != nil {
		return 0, err
	}
	if md.CurrentPrice <= 0 {
		return 0, fmt.Errorf("no current price for %s", symbol)
	}
	return md.CurrentPrice, nil
}

func (fs *FileStore) readMarketData(symbol string) (*marketDataFile, error) {
	var md marketDataFile
	if err := fs.readJSON(filepath.Join("market", symbol+".json"), &md); err != nil {
		return nil, fmt.Errorf("failed to load market data for %s: %w", symbol, err)
	}
	return &md, nil
}

func (fs *FileStore) readJSON(name string, target interface{}) error {
	data, err := os.ReadFile(filepath.Join(fs.dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}
