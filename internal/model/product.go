package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups products for catalog display and stock reporting.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product is a catalog entry. It doubles as a SKU: when IsStockControlled is
// true the ledger tracks its on-hand quantity. Packaging material is modeled
// as a non-sellable product matched by name (see service.PackagingEngine).
type Product struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name       string          `gorm:"index;not null"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index"`
	// IsStockControlled: does this product participate in the ledger.
	IsStockControlled bool `gorm:"not null;default:true"`
	// IsForSale: may this product appear as an order line item.
	IsForSale bool `gorm:"not null;default:true"`
	// MinQuantity is the low-stock threshold used for status derivation.
	MinQuantity decimal.Decimal `gorm:"type:decimal(12,3);not null;default:10"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category    `gorm:"foreignKey:CategoryID"`
	Recipes  []RecipeLink `gorm:"foreignKey:ProductID"`
}

// RecipeLink declares that selling one unit of Product consumes Quantity
// units of Ingredient. Links are one level deep: an ingredient must never
// carry links of its own — CatalogService rejects such links at creation.
type RecipeLink struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity     decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CreatedAt    time.Time

	Product    *Product `gorm:"foreignKey:ProductID"`
	Ingredient *Product `gorm:"foreignKey:IngredientID"`
}
