package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/reliefroute/backend/internal/allocation"
	"github.com/reliefroute/backend/internal/config"
	"github.com/reliefroute/backend/internal/corpus"
	"github.com/reliefroute/backend/internal/db"
	"github.com/reliefroute/backend/internal/engine"
	httpapi "github.com/reliefroute/backend/internal/http"
	"github.com/reliefroute/backend/internal/ledger"
	"github.com/reliefroute/backend/internal/predict"
	"github.com/reliefroute/backend/internal/roadnet"
	"github.com/reliefroute/backend/internal/routing"
	"github.com/reliefroute/backend/internal/scenario"
	"github.com/reliefroute/backend/internal/similarity"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "reliefroute-backend").Logger()

	ctx := context.Background()

	corp, err := corpus.Load(cfg.CorpusDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load reference corpus")
	}
	logger.Info().
		Int("historical", len(corp.Historical)).
		Int("depots", len(corp.Depots)).
		Int("zones", len(corp.Zones)).
		Msg("corpus loaded")

	var sink ledger.Sink
	var store *db.Store
	if cfg.DatabaseURL != "" {
		store, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect db")
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to ensure schema")
		}
		sink = store
		if n, err := store.ReplaceHistorical(ctx, corp.Historical); err != nil {
			logger.Warn().Err(err).Msg("failed to persist historical corpus")
		} else {
			logger.Info().Int64("rows", n).Msg("historical corpus persisted")
		}
		if err := store.SaveInventorySnapshot(ctx, corp.Depots); err != nil {
			logger.Warn().Err(err).Msg("failed to record opening inventory snapshot")
		}
		if ids, err := store.ListDecisionIDs(ctx, 0); err != nil {
			logger.Warn().Err(err).Msg("failed to count persisted decisions")
		} else {
			logger.Info().Int("decisions", len(ids)).Msg("persisted decisions found")
		}
	} else {
		logger.Info().Msg("no DATABASE_URL set, running without persistence")
	}

	inventory := allocation.NewInventory(corp.Depots)
	lgr := ledger.New(inventory, sink)
	planner := &routing.Planner{Net: roadnet.Chennai()}
	index := similarity.NewLinearIndex(corp.Historical)

	models := &predict.ModelStore{}
	if _, err := models.Train(corp.Historical, cfg.ModelMinSamples, logger); err != nil {
		logger.Warn().Err(err).Msg("boot training skipped, predictions run rule-based")
	}

	eng := &engine.Engine{
		Normalizer: scenario.NewNormalizer(),
		Predictor: &predict.DemandPredictor{
			Models: models,
			Index:  index,
			K:      cfg.SimilarK,
			Logger: logger,
		},
		Risk:       &predict.RiskClassifier{Models: models, Logger: logger},
		Planner:    planner,
		Ledger:     lgr,
		Inventory:  inventory,
		Corpus:     corp,
		Models:     models,
		Activity:   engine.NewActivityLog(cfg.ActivityLimit),
		Logger:     logger,
		MinSamples: cfg.ModelMinSamples,
	}

	router := httpapi.Router(cfg, eng, store, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
