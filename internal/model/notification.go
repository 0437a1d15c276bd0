package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	NotifAppointment = "APPOINTMENT"
	NotifLowStock    = "LOW_STOCK"
	NotifBirthday    = "BIRTHDAY"
	NotifSystem      = "SYSTEM"
)

// Notification priorities.
const (
	PriorityLow    = "LOW"
	PriorityNormal = "NORMAL"
	PriorityHigh   = "HIGH"
)

// Notification is an in-app alert shown in the UI bell menu.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type      string    `gorm:"type:varchar(20);index;not null"`
	Title     string    `gorm:"not null"`
	Message   string    `gorm:"not null"`
	Priority  string    `gorm:"type:varchar(10);not null;default:'NORMAL'"`
	IsRead    bool      `gorm:"index;not null;default:false"`
	CreatedAt time.Time
}
