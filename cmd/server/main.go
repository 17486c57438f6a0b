package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aristath/helmsman/internal/adapters"
	"github.com/aristath/helmsman/internal/config"
	"github.com/aristath/helmsman/internal/engine"
	"github.com/aristath/helmsman/internal/locking"
	"github.com/aristath/helmsman/internal/modules/rebalancing"
	"github.com/aristath/helmsman/internal/modules/scoring"
	"github.com/aristath/helmsman/internal/modules/scoring/scorers"
	"github.com/aristath/helmsman/internal/modules/sequences"
	"github.com/aristath/helmsman/internal/scheduler"
	"github.com/aristath/helmsman/internal/server"
	"github.com/aristath/helmsman/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Str("data_dir", cfg.DataDir).Int("port", cfg.Port).Msg("helmsman starting")

	store := adapters.NewFileStore(cfg.DataDir, log)

	scoringService, err := scoring.NewService(store, scorers.NewStockScorer(), scoring.ServiceConfig{
		Workers:            cfg.Scoring.Workers,
		TargetAnnualReturn: cfg.Scoring.TargetAnnualReturn,
		MarketAvgPE:        cfg.Scoring.MarketAvgPE,
		RequestsPerSecond:  cfg.Scoring.RequestsPerSecond,
		Burst:              cfg.Scoring.Burst,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create scoring service")
	}

	selector := rebalancing.NewSelector(rebalancing.Config{
		MinCashThreshold: cfg.Rebalancing.MinCashThreshold,
		MinStockScore:    cfg.Rebalancing.MinStockScore,
		MinTradeSize:     cfg.Rebalancing.MinTradeSize,
		MaxTrades:        cfg.Rebalancing.MaxTrades,
		BasePositionSize: cfg.Rebalancing.BasePositionSize,
		MinPositionSize:  cfg.Rebalancing.MinPositionSize,
	}, log)

	eng := engine.New(scoringService, selector, store, store, log)

	lockManager, err := locking.NewManager(filepath.Join(cfg.DataDir, "locks"), log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create lock manager")
	}

	sched := scheduler.New(log)
	cycleJob := engine.NewCycleJob(eng, lockManager, engine.LogNotifier{Log: log}, 30*time.Second)
	if err := sched.AddJob(cfg.ScoreRefreshSchedule, cycleJob); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule decision cycle")
	}
	sched.Start()
	defer sched.Stop()

	sequencesService := sequences.NewService(log)

	srv := server.New(server.Config{
		Port:      cfg.Port,
		DevMode:   cfg.DevMode,
		Log:       log,
		Engine:    eng,
		Sequences: sequencesService,
		SequenceDefaults: sequences.GenerationConfig{
			MaxDepth:         cfg.Sequences.MaxDepth,
			PerCategoryCap:   cfg.Sequences.PerCategoryCap,
			Weighted:         cfg.Sequences.Weighted,
			MinTradeValueEUR: cfg.Sequences.MinTradeValueEUR,
			FixedCostEUR:     cfg.Sequences.FixedCostEUR,
			PercentCost:      cfg.Sequences.PercentCost,
			BatchSize:        cfg.Sequences.BatchSize,
		},
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Run one cycle at startup so the API has data to serve
	go func() {
		if err := sched.RunNow(cycleJob); err != nil {
			log.Warn().Err(err).Msg("startup decision cycle failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
