package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /api/sales.
type SaleFilter struct {
	StartDate string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	ClientID  string `form:"client_id"  validate:"omitempty,uuid"`
	Status    string `form:"status"     validate:"omitempty,oneof=PENDING COMPLETED CANCELLED REFUNDED all"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleListItem struct {
	ID            string          `json:"id"`
	SaleNumber    string          `json:"sale_number"`
	ClientName    string          `json:"client_name,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	CreatedAt     string          `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleListItem `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SaleItemRequest is one cart line. Exactly one of product_id / service_id is
// expected in practice; the description is required so the sale record keeps
// a snapshot independent of the catalog.
type SaleItemRequest struct {
	ProductID   *string         `json:"product_id"  validate:"omitempty,uuid"`
	ServiceID   *string         `json:"service_id"  validate:"omitempty,uuid"`
	Description string          `json:"description" validate:"required"`
	Quantity    int             `json:"quantity"    validate:"required,gt=0"`
	Price       decimal.Decimal `json:"price"       validate:"min=0"`
}

type CreateSaleRequest struct {
	ClientID        *string           `json:"client_id"        validate:"omitempty,uuid"`
	Items           []SaleItemRequest `json:"items"            validate:"required,min=1,dive"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	Tax             decimal.Decimal   `json:"tax"              validate:"min=0"`
	PaymentMethod   string            `json:"payment_method"   validate:"required,oneof=CASH CARD TRANSFER MIXED"`
	Notes           *string           `json:"notes"`
	// ReceiptEmail: optional — when present, the receipt worker mails the PDF.
	ReceiptEmail *string `json:"receipt_email" validate:"omitempty,email"`
}

type CancelSaleRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID            string             `json:"id"`
	SaleNumber    string             `json:"sale_number"`
	ClientID      *string            `json:"client_id"`
	Items         []SaleItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	PointsEarned  int64              `json:"points_earned"`
	CreatedAt     string             `json:"created_at"`
}
