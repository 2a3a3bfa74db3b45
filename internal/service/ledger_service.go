package service

import (
	"context"
	"fmt"

	"github.com/marcusroqy/foodsystempdv/internal/model"
	"github.com/marcusroqy/foodsystempdv/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerService is the append-only stock ledger. Current stock is always
// derived from the log, never kept as a mutable counter: concurrent sales
// insert independent rows, so there is no read-modify-write race to lose.
type LedgerService interface {
	Append(ctx context.Context, tenantID, productID uuid.UUID, direction string, quantity decimal.Decimal, reason string) (*model.LedgerEntry, error)
	// AppendTx is called inside an order-fulfillment transaction — requires
	// the live *gorm.DB tx (nil in unit-test mode).
	AppendTx(tx *gorm.DB, tenantID, productID uuid.UUID, direction string, quantity decimal.Decimal, reason string) (*model.LedgerEntry, error)
	CurrentQuantity(ctx context.Context, tenantID, productID uuid.UUID) (decimal.Decimal, error)
	// SetAbsolute appends the single IN/OUT entry that brings the derived
	// quantity to target. Returns nil entry when there is nothing to change.
	SetAbsolute(ctx context.Context, tenantID, productID uuid.UUID, target decimal.Decimal, reason string) (*model.LedgerEntry, error)
}

type ledgerService struct {
	repo repository.LedgerRepository
}

func NewLedgerService(repo repository.LedgerRepository) LedgerService {
	return &ledgerService{repo: repo}
}

func validateMovement(direction string, quantity decimal.Decimal) error {
	if direction != model.DirectionIn && direction != model.DirectionOut {
		return fmt.Errorf("%w: direction must be IN or OUT, got %q", ErrInvalidQuantity, direction)
	}
	if !quantity.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidQuantity, quantity)
	}
	return nil
}

func (s *ledgerService) Append(ctx context.Context, tenantID, productID uuid.UUID, direction string, quantity decimal.Decimal, reason string) (*model.LedgerEntry, error) {
	if err := validateMovement(direction, quantity); err != nil {
		return nil, err
	}
	entry := &model.LedgerEntry{
		TenantID:  tenantID,
		ProductID: productID,
		Type:      direction,
		Quantity:  quantity,
		Reason:    reason,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return entry, nil
}

func (s *ledgerService) AppendTx(tx *gorm.DB, tenantID, productID uuid.UUID, direction string, quantity decimal.Decimal, reason string) (*model.LedgerEntry, error) {
	if err := validateMovement(direction, quantity); err != nil {
		return nil, err
	}
	entry := &model.LedgerEntry{
		TenantID:  tenantID,
		ProductID: productID,
		Type:      direction,
		Quantity:  quantity,
		Reason:    reason,
	}
	if err := s.repo.CreateTx(tx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ledgerService) CurrentQuantity(ctx context.Context, tenantID, productID uuid.UUID) (decimal.Decimal, error) {
	return s.repo.SumByProduct(ctx, tenantID, productID)
}

func (s *ledgerService) SetAbsolute(ctx context.Context, tenantID, productID uuid.UUID, target decimal.Decimal, reason string) (*model.LedgerEntry, error) {
	current, err := s.repo.SumByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	diff := target.Sub(current)
	if diff.IsZero() {
		return nil, nil
	}
	direction := model.DirectionIn
	if diff.IsNegative() {
		direction = model.DirectionOut
	}
	if reason == "" {
		reason = "Ajuste de saldo absoluto"
	}
	return s.Append(ctx, tenantID, productID, direction, diff.Abs(), reason)
}
