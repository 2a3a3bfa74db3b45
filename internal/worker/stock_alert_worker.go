package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/marcusroqy/foodsystempdv/internal/model"
	"github.com/marcusroqy/foodsystempdv/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	alertKeyPrefix = "alerts:stock:"
	alertListCap   = 100
)

// StockAlertWorker re-derives the ledger balance for the SKUs named in a job
// and records LOW/OUT alerts on a per-tenant Redis list for the dashboard.
type StockAlertWorker struct {
	products repository.ProductRepository
	ledger   repository.LedgerRepository
	rdb      *redis.Client
}

func NewStockAlertWorker(products repository.ProductRepository, ledger repository.LedgerRepository, rdb *redis.Client) *StockAlertWorker {
	return &StockAlertWorker{products: products, ledger: ledger, rdb: rdb}
}

type stockAlert struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	Status    string `json:"status"`
	At        string `json:"at"`
}

func (w *StockAlertWorker) Handle(ctx context.Context, payload StockAlertPayload) error {
	tenantID, err := uuid.Parse(payload.TenantID)
	if err != nil {
		return fmt.Errorf("stock alert: bad tenant id %q: %w", payload.TenantID, err)
	}

	for _, raw := range payload.ProductIDs {
		productID, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		product, err := w.products.FindByID(ctx, tenantID, productID)
		if err != nil {
			// Deleted between sale and alert — nothing to report.
			continue
		}
		balance, err := w.ledger.SumByProduct(ctx, tenantID, productID)
		if err != nil {
			return err
		}

		status := model.StockStatus(balance, product.MinQuantity)
		if status == model.StockGood {
			continue
		}

		log.Warn().
			Str("tenant_id", tenantID.String()).
			Str("product_id", productID.String()).
			Str("product", product.Name).
			Str("quantity", balance.String()).
			Str("status", status).
			Msg("low stock")

		alert := stockAlert{
			ProductID: productID.String(),
			Name:      product.Name,
			Quantity:  balance.String(),
			Status:    status,
			At:        time.Now().UTC().Format(time.RFC3339),
		}
		data, err := json.Marshal(alert)
		if err != nil {
			continue
		}
		key := alertKeyPrefix + tenantID.String()
		pipe := w.rdb.Pipeline()
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, alertListCap-1)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
