package dto

import "github.com/shopspring/decimal"

// ─── Filter ──────────────────────────────────────────────────────────────────

// ClientFilter is bound from the query string of GET /api/clients.
type ClientFilter struct {
	Search   string `form:"search"`
	IsActive string `form:"is_active"` // "true" | "false" | "" = all
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateClientRequest struct {
	FirstName string  `json:"first_name" validate:"required,min=2"`
	LastName  string  `json:"last_name"  validate:"required,min=2"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Address   *string `json:"address"`
	Notes     *string `json:"notes"`
}

type UpdateClientRequest struct {
	FirstName string  `json:"first_name" validate:"omitempty,min=2"`
	LastName  string  `json:"last_name"  validate:"omitempty,min=2"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Address   *string `json:"address"`
	Notes     *string `json:"notes"`
	IsActive  *bool   `json:"is_active"`
}

type AddClientHistoryRequest struct {
	Description string          `json:"description" validate:"required,min=3"`
	Amount      decimal.Decimal `json:"amount"      validate:"min=0"`
	Date        *string         `json:"date"        validate:"omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClientResponse struct {
	ID            string          `json:"id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Email         *string         `json:"email"`
	Phone         *string         `json:"phone"`
	BirthDate     *string         `json:"birth_date"`
	Address       *string         `json:"address"`
	Notes         *string         `json:"notes"`
	LoyaltyPoints int             `json:"loyalty_points"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     string          `json:"created_at"`
}

type ClientHistoryResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
}

type ClientListResponse struct {
	Data  []ClientResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// ClientDetailResponse enriches the base client with recent activity.
type ClientDetailResponse struct {
	ClientResponse
	Appointments []AppointmentResponse   `json:"appointments"`
	Sales        []SaleListItem          `json:"sales"`
	History      []ClientHistoryResponse `json:"history"`
}
