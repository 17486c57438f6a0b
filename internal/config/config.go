// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	DataDir  string
	Port     int
	LogLevel string
	DevMode  bool

	Scoring     ScoringConfig
	Rebalancing RebalancingConfig
	Sequences   SequencesConfig

	// ScoreRefreshSchedule is a cron expression for the periodic
	// scoring cycle.
	ScoreRefreshSchedule string
}

// ScoringConfig holds scoring pipeline settings.
type ScoringConfig struct {
	Workers            int
	TargetAnnualReturn float64
	MarketAvgPE        float64
	RequestsPerSecond  float64
	Burst              int
}

// RebalancingConfig holds buy selection settings. All monetary values
// are EUR.
type RebalancingConfig struct {
	MinCashThreshold float64
	MinStockScore    float64
	MinTradeSize     float64
	MaxTrades        int
	BasePositionSize float64
	MinPositionSize  float64
}

// SequencesConfig holds sequence generation settings.
type SequencesConfig struct {
	MaxDepth         int
	PerCategoryCap   int
	Weighted         bool
	MinTradeValueEUR float64
	FixedCostEUR     float64
	PercentCost      float64
	BatchSize        int
}

// Load reads configuration from environment variables. A .env file is
// honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("HELMSMAN_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:              absDataDir,
		Port:                 getEnvAsInt("HELMSMAN_PORT", 8001),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DevMode:              getEnvAsBool("DEV_MODE", false),
		ScoreRefreshSchedule: getEnv("SCORE_REFRESH_SCHEDULE", "0 */4 * * *"),
		Scoring: ScoringConfig{
			Workers:            getEnvAsInt("SCORING_WORKERS", 4),
			TargetAnnualReturn: getEnvAsFloat("TARGET_ANNUAL_RETURN", 0.11),
			MarketAvgPE:        getEnvAsFloat("MARKET_AVG_PE", 22.0),
			RequestsPerSecond:  getEnvAsFloat("PROVIDER_REQUESTS_PER_SECOND", 10),
			Burst:              getEnvAsInt("PROVIDER_BURST", 5),
		},
		Rebalancing: RebalancingConfig{
			MinCashThreshold: getEnvAsFloat("MIN_CASH_THRESHOLD", 400.0),
			MinStockScore:    getEnvAsFloat("MIN_STOCK_SCORE", 0.5),
			MinTradeSize:     getEnvAsFloat("MIN_TRADE_SIZE", 150.0),
			MaxTrades:        getEnvAsInt("MAX_TRADES", 5),
			BasePositionSize: getEnvAsFloat("BASE_POSITION_SIZE", 500.0),
			MinPositionSize:  getEnvAsFloat("MIN_POSITION_SIZE", 200.0),
		},
		Sequences: SequencesConfig{
			MaxDepth:         getEnvAsInt("SEQUENCE_MAX_DEPTH", 4),
			PerCategoryCap:   getEnvAsInt("SEQUENCE_PER_CATEGORY_CAP", 10),
			Weighted:         getEnvAsBool("SEQUENCE_WEIGHTED", false),
			MinTradeValueEUR: getEnvAsFloat("SEQUENCE_MIN_TRADE_VALUE", 100.0),
			FixedCostEUR:     getEnvAsFloat("TRANSACTION_COST_FIXED", 2.0),
			PercentCost:      getEnvAsFloat("TRANSACTION_COST_PERCENT", 0.002),
			BatchSize:        getEnvAsInt("SEQUENCE_BATCH_SIZE", 100),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate fails fast on configuration that would make the engine
// misbehave silently.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Scoring.Workers <= 0 {
		return fmt.Errorf("scoring workers must be positive, got %d", c.Scoring.Workers)
	}
	if c.Scoring.RequestsPerSecond <= 0 {
		return fmt.Errorf("provider requests per second must be positive, got %f", c.Scoring.RequestsPerSecond)
	}
	if c.Rebalancing.MinCashThreshold < 0 {
		return fmt.Errorf("min cash threshold cannot be negative, got %f", c.Rebalancing.MinCashThreshold)
	}
	if c.Rebalancing.BasePositionSize <= 0 {
		return fmt.Errorf("base position size must be positive, got %f", c.Rebalancing.BasePositionSize)
	}
	if c.Sequences.MaxDepth <= 0 {
		return fmt.Errorf("sequence max depth must be positive, got %d", c.Sequences.MaxDepth)
	}
	if c.Sequences.FixedCostEUR < 0 || c.Sequences.PercentCost < 0 {
		return fmt.Errorf("transaction costs cannot be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
