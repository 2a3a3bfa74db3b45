package worker

// alert_cron.go
// Background goroutine that periodically sweeps every tenant's
// stock-controlled SKUs and enqueues a stock-alert job for each, so that
// shrinkage from manual adjustments (not just sales) surfaces on the
// dashboard without waiting for the next order.

import (
	"context"
	"time"

	"github.com/marcusroqy/foodsystempdv/internal/repository"

	"github.com/rs/zerolog/log"
)

// AlertCronConfig holds the sweep dependencies.
type AlertCronConfig struct {
	Products   repository.ProductRepository
	Tenants    repository.TenantRepository
	Dispatcher *Dispatcher
	Interval   time.Duration
}

// StartAlertCron launches the periodic sweep. It respects the context for
// graceful shutdown.
func StartAlertCron(ctx context.Context, cfg AlertCronConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("alert cron shutting down")
				return
			case <-ticker.C:
				sweep(ctx, cfg)
			}
		}
	}()
	log.Info().Dur("interval", cfg.Interval).Msg("alert cron started")
}

func sweep(ctx context.Context, cfg AlertCronConfig) {
	tenants, err := cfg.Tenants.ListActive(ctx)
	if err != nil {
		log.Error().Err(err).Msg("alert cron: list tenants")
		return
	}
	for _, tenant := range tenants {
		products, err := cfg.Products.ListStockControlled(ctx, tenant.ID)
		if err != nil {
			log.Error().Str("tenant_id", tenant.ID.String()).Err(err).Msg("alert cron: list products")
			continue
		}
		if len(products) == 0 {
			continue
		}
		ids := make([]string, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID.String())
		}
		payload := StockAlertPayload{TenantID: tenant.ID.String(), ProductIDs: ids}
		if err := cfg.Dispatcher.EnqueueStockAlert(ctx, payload); err != nil {
			log.Error().Str("tenant_id", tenant.ID.String()).Err(err).Msg("alert cron: enqueue")
		}
	}
}
