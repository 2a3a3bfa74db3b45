package dto

import "github.com/shopspring/decimal"

// StockStatusItem is one row of GET /v1/inventory: a stock-controlled SKU
// with its ledger-derived quantity and status classification.
type StockStatusItem struct {
	ProductID       string          `json:"product_id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	MinQuantity     decimal.Decimal `json:"min_quantity"`
	Status          string          `json:"status"` // OUT | LOW | GOOD
	CategoryName    string          `json:"category_name"`
	LastUpdated     string          `json:"last_updated"`
}

type AdjustStockRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	// Mode SET interprets Quantity as the absolute target balance; zero is a
	// legal target (full write-off). Range checks are per-mode, in the service.
	Mode     string          `json:"mode"     validate:"required,oneof=IN OUT SET"`
	Quantity decimal.Decimal `json:"quantity"`
	Reason   string          `json:"reason"   validate:"omitempty,max=500"`
}

type LedgerEntryResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Product   string          `json:"product,omitempty"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason"`
	CreatedAt string          `json:"created_at"`
}

// LedgerFilter is bound from the query string of GET /v1/inventory/ledger.
type LedgerFilter struct {
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
	Type      string `form:"type"       validate:"omitempty,oneof=IN OUT"`
	Page      int    `form:"page,default=1"    validate:"min=1"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type LedgerListResponse struct {
	Data  []LedgerEntryResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
