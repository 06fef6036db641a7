package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pg "pet-pedigree/internal/adapters/storage/postgres"
	"pet-pedigree/internal/domain/pedigree"
	"pet-pedigree/internal/platform/config"
	"pet-pedigree/internal/platform/logger"
	"pet-pedigree/internal/platform/metrics"
	"pet-pedigree/internal/router"
)

// @title Pet Pedigree API
// @version 1.0
// @description Registro de animales, árbol de ancestros, códigos de linaje y compatibilidad de cría.
// @BasePath /
func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	defer func() { _ = log.Sync() }()

	weights, err := pedigree.LoadWeights(cfg.ScoringConfig)
	if err != nil {
		log.Error("scoring config error", map[string]any{"path": cfg.ScoringConfig, "err": err})
		os.Exit(1)
	}

	opts := router.Options{
		Logger:        log,
		Metrics:       metrics.New(),
		Weights:       weights,
		LineagePrefix: cfg.LineagePrefix,
	}

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("db open failed", map[string]any{"err": err})
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = pg.Migrate(ctx, db)
		cancel()
		if err != nil {
			log.Error("db migrate failed", map[string]any{"err": err})
			os.Exit(1)
		}
		opts.DB = db
		log.Info("storage: postgres", nil)
	} else {
		log.Info("storage: in-memory (DB_DSN not set)", nil)
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr(), "lineage_prefix": cfg.LineagePrefix})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"err": err})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", map[string]any{"err": err})
	}
	log.Info("server stopped", nil)
}
