package repository

import (
	"context"

	"github.com/marcusroqy/foodsystempdv/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerFilter defines filters for listing ledger entries.
type LedgerFilter struct {
	ProductID *uuid.UUID
	Type      string
	Page      int
	Limit     int
}

// LedgerRepository is append-only: entries are inserted, never updated or
// deleted. Current quantity is always derived by aggregation over the log.
type LedgerRepository interface {
	Create(ctx context.Context, e *model.LedgerEntry) error
	CreateTx(tx *gorm.DB, e *model.LedgerEntry) error
	// SumByProduct returns SUM(IN) − SUM(OUT) for one SKU.
	SumByProduct(ctx context.Context, tenantID, productID uuid.UUID) (decimal.Decimal, error)
	// SumByTenant returns the same aggregate for every SKU of the tenant in
	// one grouped query, for stock-status reporting.
	SumByTenant(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
	List(ctx context.Context, tenantID uuid.UUID, filter LedgerFilter) ([]model.LedgerEntry, int64, error)
	DB() *gorm.DB
}

type ledgerRepo struct{ db *gorm.DB }

func NewLedgerRepository(db *gorm.DB) LedgerRepository { return &ledgerRepo{db: db} }

func (r *ledgerRepo) Create(ctx context.Context, e *model.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ledgerRepo) CreateTx(tx *gorm.DB, e *model.LedgerEntry) error {
	return tx.Create(e).Error
}

func (r *ledgerRepo) SumByProduct(ctx context.Context, tenantID, productID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).
		Select("SUM(CASE WHEN type = 'IN' THEN quantity ELSE -quantity END)").
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Scan(&balance).Error
	if err != nil || !balance.Valid {
		return decimal.Zero, err
	}
	return balance.Decimal, nil
}

func (r *ledgerRepo) SumByTenant(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	var rows []struct {
		ProductID uuid.UUID
		Balance   decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).
		Select("product_id, SUM(CASE WHEN type = 'IN' THEN quantity ELSE -quantity END) AS balance").
		Where("tenant_id = ?", tenantID).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	balances := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		balances[row.ProductID] = row.Balance
	}
	return balances, nil
}

func (r *ledgerRepo) List(ctx context.Context, tenantID uuid.UUID, filter LedgerFilter) ([]model.LedgerEntry, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).
		Where("tenant_id = ?", tenantID).
		Preload("Product")
	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}

	var entries []model.LedgerEntry
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&entries).Error
	return entries, total, err
}

func (r *ledgerRepo) DB() *gorm.DB { return r.db }
