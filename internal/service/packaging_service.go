package service

import (
	"context"
	"errors"

	"github.com/marcusroqy/foodsystempdv/internal/model"
	"github.com/marcusroqy/foodsystempdv/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PackagingEngine applies the order-level packaging rule: one packaging unit
// is consumed per order that contains at least one prepared (recipe-backed)
// item, no matter how many such items the order holds.
type PackagingEngine interface {
	RequiresPackaging(expansions [][]Deduction) bool
	// PackagingDeduction returns the tenant's designated packaging SKU.
	// (nil, nil) when the tenant has none configured — a soft no-op, not an
	// error.
	PackagingDeduction(ctx context.Context, tenantID uuid.UUID) (*model.Product, error)
}

type packagingEngine struct {
	repo repository.ProductRepository
	// keyword identifies the packaging SKU by naming convention among the
	// tenant's non-sellable products ("sacola" by default).
	keyword string
}

func NewPackagingEngine(repo repository.ProductRepository, keyword string) PackagingEngine {
	if keyword == "" {
		keyword = "sacola"
	}
	return &packagingEngine{repo: repo, keyword: keyword}
}

func (e *packagingEngine) RequiresPackaging(expansions [][]Deduction) bool {
	for _, deductions := range expansions {
		for _, d := range deductions {
			if d.FromRecipe {
				return true
			}
		}
	}
	return false
}

func (e *packagingEngine) PackagingDeduction(ctx context.Context, tenantID uuid.UUID) (*model.Product, error) {
	p, err := e.repo.FindPackaging(ctx, tenantID, e.keyword)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}
