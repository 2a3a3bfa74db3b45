package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0"`
	Notes     *string         `json:"notes"      validate:"omitempty,max=500"`
}

type CreateOrderRequest struct {
	CustomerName *string            `json:"customer_name" validate:"omitempty,max=120"`
	Items        []OrderItemRequest `json:"items"         validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=QUEUE PREPARING COMPLETED CANCELED"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Notes     *string         `json:"notes,omitempty"`
}

type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerName *string             `json:"customer_name,omitempty"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	Status       string              `json:"status"`
	Items        []OrderItemResponse `json:"items"`
	// SkippedDeductions counts line items whose product vanished between cart
	// and fulfillment; their stock consumption was skipped (best-effort).
	SkippedDeductions int    `json:"skipped_deductions"`
	CreatedAt         string `json:"created_at"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int             `json:"total"`
}
