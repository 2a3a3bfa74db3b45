package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcusroqy/foodsystempdv/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Deduction is one SKU-level stock consumption produced by expanding an
// order line item.
type Deduction struct {
	ProductID uuid.UUID
	// ProductName is the originating sellable product's name — used in the
	// ledger reason so an auditor can trace a consumption back to the sale.
	ProductName string
	Quantity    decimal.Decimal
	// FromRecipe marks deductions that came from a bill-of-materials link;
	// the packaging rule only fires for orders containing at least one.
	FromRecipe bool
}

// RecipeResolver expands a sellable product into SKU-level deductions.
// Expansion is a pure read of the catalog at call time — results are never
// cached across an order, so a mid-order recipe change cannot go stale.
type RecipeResolver interface {
	Expand(ctx context.Context, tenantID, productID uuid.UUID, saleQuantity int) ([]Deduction, error)
}

type recipeResolver struct {
	repo repository.ProductRepository
}

func NewRecipeResolver(repo repository.ProductRepository) RecipeResolver {
	return &recipeResolver{repo: repo}
}

// Expand resolves exactly one level of the recipe graph:
//   - no links: the product is itself the deduction target, but only when it
//     is stock-controlled (a plated dish with no direct stock tracking and no
//     recipe deducts nothing);
//   - links: one deduction per link, link quantity × sale quantity. An
//     ingredient's own links, should catalog data ever contain them, are not
//     followed.
func (r *recipeResolver) Expand(ctx context.Context, tenantID, productID uuid.UUID, saleQuantity int) ([]Deduction, error) {
	product, err := r.repo.FindByID(ctx, tenantID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return nil, err
	}

	links, err := r.repo.FindRecipeLinks(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	qty := decimal.NewFromInt(int64(saleQuantity))

	if len(links) == 0 {
		if !product.IsStockControlled {
			return nil, nil
		}
		return []Deduction{{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    qty,
		}}, nil
	}

	deductions := make([]Deduction, 0, len(links))
	for _, link := range links {
		deductions = append(deductions, Deduction{
			ProductID:   link.IngredientID,
			ProductName: product.Name,
			Quantity:    link.Quantity.Mul(qty),
			FromRecipe:  true,
		})
	}
	return deductions, nil
}
