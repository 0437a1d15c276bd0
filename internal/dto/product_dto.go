package dto

import "github.com/shopspring/decimal"

// ─── Filter ──────────────────────────────────────────────────────────────────

type ProductFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	IsActive string `form:"is_active"` // "true" | "false" | "" = all
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	SKU         string          `json:"sku"      validate:"required"`
	Barcode     *string         `json:"barcode"`
	Name        string          `json:"name"     validate:"required,min=2"`
	Description *string         `json:"description"`
	Category    string          `json:"category" validate:"required"`
	Price       decimal.Decimal `json:"price"    validate:"min=0"`
	Cost        decimal.Decimal `json:"cost"     validate:"min=0"`
	Stock       int             `json:"stock"    validate:"min=0"`
	MinStock    int             `json:"min_stock" validate:"min=0"`
	Unit        string          `json:"unit"`
}

type UpdateProductRequest struct {
	Barcode     *string          `json:"barcode"`
	Name        string           `json:"name"     validate:"omitempty,min=2"`
	Description *string          `json:"description"`
	Category    string           `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	MinStock    *int             `json:"min_stock" validate:"omitempty,min=0"`
	Unit        string           `json:"unit"`
	IsActive    *bool            `json:"is_active"`
}

type AddStockMovementRequest struct {
	Type      string  `json:"type"     validate:"required,oneof=PURCHASE SALE ADJUSTMENT RETURN DAMAGED"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Reason    *string `json:"reason"`
	Reference *string `json:"reference"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Barcode     *string         `json:"barcode"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"min_stock"`
	Unit        string          `json:"unit"`
	IsActive    bool            `json:"is_active"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type StockMovementResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	Type        string  `json:"type"`
	Quantity    int     `json:"quantity"`
	StockBefore int     `json:"stock_before"`
	StockAfter  int     `json:"stock_after"`
	Reason      *string `json:"reason"`
	Reference   *string `json:"reference"`
	CreatedAt   string  `json:"created_at"`
}

// PriceLookupResponse is the payload cached in Redis for barcode lookups.
type PriceLookupResponse struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Category string          `json:"category"`
}

// ImportProductsResponse summarizes an .xlsx bulk import.
type ImportProductsResponse struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}
