package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cash session statuses. OPEN → CLOSED is the only transition.
const (
	CashOpen   = "OPEN"
	CashClosed = "CLOSED"
)

// Cash movement kinds. INCOME/DEPOSIT add to the drawer balance,
// EXPENSE/WITHDRAWAL subtract. The sign is derived from the kind — the
// stored amount is always positive.
const (
	MovementIncome     = "INCOME"
	MovementExpense    = "EXPENSE"
	MovementWithdrawal = "WITHDRAWAL"
	MovementDeposit    = "DEPOSIT"
)

// CashSession represents one drawer-open-to-drawer-close accounting period.
// At most one session may be OPEN at any time — enforced by a partial unique
// index on status='OPEN' (see infra.applySchemaPatches).
// ExpectedBalance and Variance are computed once, on close, and frozen.
type CashSession struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date            time.Time        `gorm:"index;not null"`
	OpeningBalance  decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	ClosingBalance  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ExpectedBalance *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Variance        *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status          string           `gorm:"type:varchar(10);not null;default:'OPEN'"`
	Notes           *string
	OpenedAt        time.Time
	ClosedAt        *time.Time

	Movements []CashMovement `gorm:"foreignKey:CashSessionID"`
}

// CashMovement is an immutable event in the cash drawer ledger.
// Insertion order is chronological order.
type CashMovement struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CashSessionID uuid.UUID       `gorm:"type:uuid;index;not null"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null"`
	Type          string          `gorm:"type:varchar(20);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Category      string          `gorm:"not null"`
	Description   string          `gorm:"not null"`
	Reference     *string
	CreatedAt     time.Time

	User *User `gorm:"foreignKey:UserID"`
}
