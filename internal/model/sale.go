package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale statuses.
const (
	SalePending   = "PENDING"
	SaleCompleted = "COMPLETED"
	SaleCancelled = "CANCELLED"
	SaleRefunded  = "REFUNDED"
)

// Payment methods.
const (
	PaymentCash     = "CASH"
	PaymentCard     = "CARD"
	PaymentTransfer = "TRANSFER"
	PaymentMixed    = "MIXED"
)

// Sale is a completed cart: line items plus derived totals.
// Invariant: Total = Subtotal − Discount + Tax (exact decimal arithmetic).
// Numbers come from the sales_number_seq sequence, formatted "V-NNNNNN".
type Sale struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleNumber    string     `gorm:"uniqueIndex;not null"`
	ClientID      *uuid.UUID `gorm:"type:uuid;index"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Tax           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(20);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'COMPLETED'"`
	Notes         *string
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time

	Items  []SaleItem `gorm:"foreignKey:SaleID"`
	Client *Client    `gorm:"foreignKey:ClientID"`
	User   *User      `gorm:"foreignKey:UserID"`
}

// SaleItem is one product-or-service line inside a sale. The description is a
// snapshot: it survives later catalog renames and deletions.
type SaleItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index"`
	ServiceID   *uuid.UUID `gorm:"type:uuid"`
	Description string     `gorm:"not null"`
	Quantity    int        `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time
}
