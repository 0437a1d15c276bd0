package model

import (
	"time"

	"github.com/google/uuid"
)

// Appointment status values.
const (
	AppointmentScheduled = "SCHEDULED"
	AppointmentConfirmed = "CONFIRMED"
	AppointmentCompleted = "COMPLETED"
	AppointmentCancelled = "CANCELLED"
	AppointmentNoShow    = "NO_SHOW"
)

// Appointment books a client for a catalog service on a given day.
// StartTime/EndTime are wall-clock "HH:MM" strings as entered by the operator.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID  uuid.UUID `gorm:"type:uuid;index;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null"`
	Date      time.Time `gorm:"index;not null"`
	StartTime string    `gorm:"type:varchar(5);not null"`
	EndTime   string    `gorm:"type:varchar(5);not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'SCHEDULED'"`
	Notes     *string
	Reminder  bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Client  *Client  `gorm:"foreignKey:ClientID"`
	User    *User    `gorm:"foreignKey:UserID"`
	Service *Service `gorm:"foreignKey:ServiceID"`
}
