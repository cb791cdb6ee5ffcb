package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name     string          `json:"name"     validate:"required,min=2,max=120"`
	Category string          `json:"category" validate:"required"`
	Price    decimal.Decimal `json:"price"    validate:"min=0"`
	Stock    int             `json:"stock"    validate:"min=0"`
	MinStock int             `json:"minStock" validate:"min=0"`
}

type UpdateProductRequest struct {
	Name     *string          `json:"name"     validate:"omitempty,min=2,max=120"`
	Category *string          `json:"category"`
	Price    *decimal.Decimal `json:"price"`
	// Stock is deliberately absent: stock levels change only through the
	// movement ledger.
	MinStock *int `json:"minStock" validate:"omitempty,min=0"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ProductFilter is bound from the query string of GET /api/products.
// "Todas" is accepted as a no-op category filter for client compatibility.
type ProductFilter struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	MinStock  int             `json:"minStock"`
	Status    string          `json:"status"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
