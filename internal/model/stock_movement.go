package model

import (
	"time"

	"github.com/google/uuid"
)

// Stock movement kinds. PURCHASE/RETURN/ADJUSTMENT add to stock,
// SALE/DAMAGED subtract.
const (
	StockPurchase   = "PURCHASE"
	StockSale       = "SALE"
	StockAdjustment = "ADJUSTMENT"
	StockReturn     = "RETURN"
	StockDamaged    = "DAMAGED"
)

// StockMovement records every stock change on a product. Created
// automatically on sale/cancellation and manually via the products API.
// Movements are NEVER modified or deleted.
type StockMovement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"type:varchar(20);not null"`
	Quantity    int       `gorm:"not null"`
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	Reason      *string
	Reference   *string
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
