package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcusroqy/foodsystempdv/internal/config"
	"github.com/marcusroqy/foodsystempdv/internal/infra"
	"github.com/marcusroqy/foodsystempdv/internal/repository"
	"github.com/marcusroqy/foodsystempdv/internal/router"
	"github.com/marcusroqy/foodsystempdv/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Async plumbing: the dispatcher enqueues low-stock checks after each
	// fulfilled order; the pool consumes them; the cron sweeps all tenants so
	// manual adjustments also surface alerts.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	productRepo := repository.NewProductRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	tenantRepo := repository.NewTenantRepository(db)

	dispatcher := worker.NewDispatcher(rdb)
	handlers := &worker.Handlers{
		StockAlert: worker.NewStockAlertWorker(productRepo, ledgerRepo, rdb),
	}
	worker.StartPool(ctx, rdb, handlers, cfg.WorkerPoolSize)
	worker.StartAlertCron(ctx, worker.AlertCronConfig{
		Products:   productRepo,
		Tenants:    tenantRepo,
		Dispatcher: dispatcher,
		Interval:   time.Duration(cfg.AlertScanIntervalMins) * time.Minute,
	})

	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("foodsystempdv backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
