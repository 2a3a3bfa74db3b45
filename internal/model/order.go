package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. QUEUE is assigned at creation; the rest are set by
// status-update calls from the counter UI.
const (
	StatusQueue     = "QUEUE"
	StatusPreparing = "PREPARING"
	StatusCompleted = "COMPLETED"
	StatusCanceled  = "CANCELED"
)

// ValidStatus reports whether s is a member of the order status enum.
func ValidStatus(s string) bool {
	switch s {
	case StatusQueue, StatusPreparing, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// Order is created once, together with its items, and mutates only its
// Status afterwards.
type Order struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID     uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID       uuid.UUID `gorm:"type:uuid;not null"`
	CustomerName *string
	TotalAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status       string          `gorm:"type:varchar(20);not null;default:'QUEUE'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

// OrderItem snapshots the unit price at sale time; later catalog price
// changes do not rewrite history.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Notes     *string
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
