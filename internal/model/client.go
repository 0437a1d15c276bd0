package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client is a salon customer. LoyaltyPoints and TotalSpent are accumulators
// maintained by the sale flow — never written directly by CRUD updates.
type Client struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName     string    `gorm:"index;not null"`
	LastName      string    `gorm:"index;not null"`
	Email         *string   `gorm:"index"`
	Phone         *string
	BirthDate     *time.Time
	Address       *string
	Notes         *string
	LoyaltyPoints int             `gorm:"not null;default:0"`
	TotalSpent    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IsActive      bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	History []ClientHistory `gorm:"foreignKey:ClientID"`
}

// ClientHistory is one past visit/treatment entry on a client record.
type ClientHistory struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Description string          `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Date        time.Time       `gorm:"not null"`
	CreatedAt   time.Time
}

// TableName overrides GORM's default pluralization (client_histories → client_history).
func (ClientHistory) TableName() string { return "client_history" }
