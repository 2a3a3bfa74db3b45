package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger entry directions.
const (
	DirectionIn  = "IN"
	DirectionOut = "OUT"
)

// LedgerEntry is one immutable inventory movement. Entries are only ever
// inserted — current stock for a SKU is SUM(IN) − SUM(OUT), never a mutable
// counter, so concurrent writers cannot lose updates.
type LedgerEntry struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_tenant_product"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_tenant_product"`
	Type      string          `gorm:"type:varchar(3);not null"` // IN | OUT
	Quantity  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	// Reason identifies the origin (order id, manual adjustment note). The
	// ledger is tenant- and SKU-scoped: orders are referenced informationally
	// here, not by foreign key.
	Reason    string `gorm:"not null"`
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// TableName keeps the table name the reporting queries were written against.
func (LedgerEntry) TableName() string { return "inventory_transactions" }

// Stock status classifications derived from the ledger balance.
const (
	StockOut  = "OUT"
	StockLow  = "LOW"
	StockGood = "GOOD"
)

// StockStatus classifies a derived quantity against the SKU's minimum.
func StockStatus(current, minimum decimal.Decimal) string {
	switch {
	case current.LessThanOrEqual(decimal.Zero):
		return StockOut
	case current.LessThanOrEqual(minimum):
		return StockLow
	default:
		return StockGood
	}
}
