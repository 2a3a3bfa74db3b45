package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/marcusroqy/foodsystempdv/internal/dto"
	"github.com/marcusroqy/foodsystempdv/internal/model"
	"github.com/marcusroqy/foodsystempdv/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryService is the reporting and manual-correction surface over the
// stock ledger.
type InventoryService interface {
	ListStockStatus(ctx context.Context, tenantID uuid.UUID) ([]dto.StockStatusItem, error)
	// Adjust applies a manual correction. Mode SET interprets quantity as the
	// absolute target; the returned entry is nil when SET finds no change.
	Adjust(ctx context.Context, tenantID uuid.UUID, req dto.AdjustStockRequest) (*model.LedgerEntry, error)
	ListLedger(ctx context.Context, tenantID uuid.UUID, filter dto.LedgerFilter) (*dto.LedgerListResponse, error)
}

type inventoryService struct {
	products repository.ProductRepository
	ledger   LedgerService
	entries  repository.LedgerRepository
}

func NewInventoryService(products repository.ProductRepository, ledger LedgerService, entries repository.LedgerRepository) InventoryService {
	return &inventoryService{products: products, ledger: ledger, entries: entries}
}

// ListStockStatus derives the on-hand quantity of every stock-controlled SKU
// from the ledger (one grouped aggregate, not per-product queries) and
// classifies it against the SKU's minimum.
func (s *inventoryService) ListStockStatus(ctx context.Context, tenantID uuid.UUID) ([]dto.StockStatusItem, error) {
	products, err := s.products.ListStockControlled(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	balances, err := s.entries.SumByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.StockStatusItem, 0, len(products))
	for _, p := range products {
		qty := decimal.Zero
		if b, ok := balances[p.ID]; ok {
			qty = b
		}
		categoryName := "Sem categoria"
		if p.Category != nil {
			categoryName = p.Category.Name
		}
		items = append(items, dto.StockStatusItem{
			ProductID:       p.ID.String(),
			Name:            p.Name,
			SKU:             strings.ToUpper(p.ID.String()[:8]),
			CurrentQuantity: qty,
			MinQuantity:     p.MinQuantity,
			Status:          model.StockStatus(qty, p.MinQuantity),
			CategoryName:    categoryName,
			LastUpdated:     p.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return items, nil
}

func (s *inventoryService) Adjust(ctx context.Context, tenantID uuid.UUID, req dto.AdjustStockRequest) (*model.LedgerEntry, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrProductNotFound, req.ProductID)
	}
	// Manual corrections never write against an unknown product.
	if _, err := s.products.FindByID(ctx, tenantID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = "Ajuste manual"
	}

	if req.Mode == "SET" {
		// Zero is a valid target (write off the whole balance); negative is not.
		if req.Quantity.IsNegative() {
			return nil, fmt.Errorf("%w: saldo alvo %s", ErrInvalidQuantity, req.Quantity)
		}
		return s.ledger.SetAbsolute(ctx, tenantID, productID, req.Quantity, reason)
	}
	return s.ledger.Append(ctx, tenantID, productID, req.Mode, req.Quantity, reason)
}

func (s *inventoryService) ListLedger(ctx context.Context, tenantID uuid.UUID, filter dto.LedgerFilter) (*dto.LedgerListResponse, error) {
	repoFilter := repository.LedgerFilter{
		Type:  filter.Type,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	if filter.ProductID != "" {
		pid, err := uuid.Parse(filter.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrProductNotFound, filter.ProductID)
		}
		repoFilter.ProductID = &pid
	}

	entries, total, err := s.entries.List(ctx, tenantID, repoFilter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		name := ""
		if e.Product != nil {
			name = e.Product.Name
		}
		data = append(data, dto.LedgerEntryResponse{
			ID:        e.ID.String(),
			ProductID: e.ProductID.String(),
			Product:   name,
			Type:      e.Type,
			Quantity:  e.Quantity,
			Reason:    e.Reason,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return &dto.LedgerListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}
