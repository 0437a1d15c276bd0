package dto

import "github.com/shopspring/decimal"

// ─── Filter ──────────────────────────────────────────────────────────────────

type CashSessionFilter struct {
	StartDate string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	Status    string `form:"status"     validate:"omitempty,oneof=OPEN CLOSED"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenSessionRequest struct {
	OpeningBalance decimal.Decimal `json:"opening_balance" validate:"min=0"`
	Notes          *string         `json:"notes"`
}

type CloseSessionRequest struct {
	ClosingBalance decimal.Decimal `json:"closing_balance" validate:"min=0"`
	Notes          *string         `json:"notes"`
}

type AddMovementRequest struct {
	Type        string          `json:"type"        validate:"required,oneof=INCOME EXPENSE WITHDRAWAL DEPOSIT"`
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Category    string          `json:"category"    validate:"required"`
	Description string          `json:"description" validate:"required,min=3"`
	Reference   *string         `json:"reference"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CashMovementResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Reference   *string         `json:"reference"`
	UserName    string          `json:"user_name"`
	CreatedAt   string          `json:"created_at"`
}

type CashSessionResponse struct {
	ID              string           `json:"id"`
	Date            string           `json:"date"`
	OpeningBalance  decimal.Decimal  `json:"opening_balance"`
	ClosingBalance  *decimal.Decimal `json:"closing_balance"`
	ExpectedBalance *decimal.Decimal `json:"expected_balance"`
	Variance        *decimal.Decimal `json:"variance"`
	// CurrentBalance is the live expected balance, recomputed on every read
	// while the session is OPEN. Frozen sessions report the stored value.
	CurrentBalance decimal.Decimal        `json:"current_balance"`
	Status         string                 `json:"status"`
	Notes          *string                `json:"notes"`
	OpenedAt       string                 `json:"opened_at"`
	ClosedAt       *string                `json:"closed_at"`
	Movements      []CashMovementResponse `json:"movements,omitempty"`
}

type CashSessionListResponse struct {
	Data  []CashSessionResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
