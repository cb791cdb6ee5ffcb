package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"required,min=1"`
	// Price and Subtotal are optional client echoes of the catalog values.
	// The server recomputes both from the authoritative product price and
	// rejects either echo when it disagrees.
	Price    *decimal.Decimal `json:"price"`
	Subtotal *decimal.Decimal `json:"subtotal"`
}

type RegisterSaleRequest struct {
	Cafeteria   string            `json:"cafeteria"`
	Items       []SaleItemRequest `json:"items"       validate:"required,min=1,dive"`
	User        string            `json:"user"`
	PaymentType string            `json:"paymentType" validate:"required,oneof=dinheiro cartao pix 'débito corporativo'"`
	// CollaboratorID is required when PaymentType is "débito corporativo".
	CollaboratorID *string `json:"collaboratorId" validate:"omitempty,uuid"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /api/sales.
// The legacy client sends "Todos"/"Todas" as no-op sentinels; they are
// treated as unset.
type SaleFilter struct {
	StartDate      string `form:"startDate"` // YYYY-MM-DD
	EndDate        string `form:"endDate"`   // YYYY-MM-DD, inclusive
	Cafeteria      string `form:"cafeteria"`
	PaymentType    string `form:"paymentType"`
	CollaboratorID string `form:"collaboratorId"`
	Page           int    `form:"page,default=1"   validate:"min=1"`
	Limit          int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID               string             `json:"id"`
	Cafeteria        string             `json:"cafeteria"`
	Items            []SaleItemResponse `json:"items"`
	User             string             `json:"user"`
	PaymentType      string             `json:"paymentType"`
	Total            decimal.Decimal    `json:"total"`
	CollaboratorID   *string            `json:"collaboratorId"`
	CollaboratorName string             `json:"collaboratorName,omitempty"`
	CreatedAt        string             `json:"createdAt"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
