package dto

import "github.com/shopspring/decimal"

type ServiceFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	IsActive string `form:"is_active"` // "true" | "false" | "" = all
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CreateServiceRequest struct {
	Name        string          `json:"name"        validate:"required,min=2"`
	Description *string         `json:"description"`
	Category    string          `json:"category"    validate:"required"`
	Price       decimal.Decimal `json:"price"       validate:"min=0"`
	DurationMin int             `json:"duration_min" validate:"required,min=5"`
}

type UpdateServiceRequest struct {
	Name        string           `json:"name"        validate:"omitempty,min=2"`
	Description *string          `json:"description"`
	Category    string           `json:"category"`
	Price       *decimal.Decimal `json:"price"       validate:"omitempty"`
	DurationMin *int             `json:"duration_min" validate:"omitempty,min=5"`
	IsActive    *bool            `json:"is_active"`
}

type ServiceResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	DurationMin int             `json:"duration_min"`
	IsActive    bool            `json:"is_active"`
}
