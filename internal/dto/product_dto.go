package dto

import "github.com/shopspring/decimal"

// ─── Products ────────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name       string          `json:"name"  validate:"required,min=2,max=120"`
	Price      decimal.Decimal `json:"price" validate:"min=0"`
	CategoryID *string         `json:"category_id"         validate:"omitempty,uuid"`
	// Defaults mirror catalog semantics: stock-controlled and sellable.
	IsStockControlled *bool            `json:"is_stock_controlled"`
	IsForSale         *bool            `json:"is_for_sale"`
	MinQuantity       *decimal.Decimal `json:"min_quantity"`
}

type UpdateProductRequest struct {
	Name              *string          `json:"name"  validate:"omitempty,min=2,max=120"`
	Price             *decimal.Decimal `json:"price" validate:"omitempty,min=0"`
	CategoryID        *string          `json:"category_id" validate:"omitempty,uuid"`
	IsStockControlled *bool            `json:"is_stock_controlled"`
	IsForSale         *bool            `json:"is_for_sale"`
	MinQuantity       *decimal.Decimal `json:"min_quantity"`
}

type ProductFilterQuery struct {
	Name       string `form:"name"`
	CategoryID string `form:"category_id" validate:"omitempty,uuid"`
	ForSale    string `form:"for_sale,default=true"`
	Page       int    `form:"page,default=1"    validate:"min=1"`
	Limit      int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	CategoryID        *string         `json:"category_id,omitempty"`
	CategoryName      string          `json:"category_name,omitempty"`
	IsStockControlled bool            `json:"is_stock_controlled"`
	IsForSale         bool            `json:"is_for_sale"`
	MinQuantity       decimal.Decimal `json:"min_quantity"`
	CreatedAt         string          `json:"created_at"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Recipe links ────────────────────────────────────────────────────────────

type CreateRecipeLinkRequest struct {
	ProductID    string          `json:"product_id"    validate:"required,uuid"`
	IngredientID string          `json:"ingredient_id" validate:"required,uuid"`
	Quantity     decimal.Decimal `json:"quantity"      validate:"min=0"`
}

type RecipeLinkResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name,omitempty"`
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// ─── Categories ──────────────────────────────────────────────────────────────

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=80"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
