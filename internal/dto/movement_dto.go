package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterMovementRequest struct {
	ProductID     string `json:"productId"     validate:"required,uuid"`
	Type          string `json:"type"          validate:"required,oneof=entrada ajuste_entrada ajuste_saida perda venda"`
	Quantity      int    `json:"quantity"      validate:"required,min=1"`
	Note          string `json:"note"`
	InvoiceNumber string `json:"invoiceNumber"`
	User          string `json:"user"`
	Cafeteria     string `json:"cafeteria"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

// MovementFilter is bound from the query string of GET /api/movements.
// "Todos"/"Todas" sentinels from the legacy client are treated as unset.
type MovementFilter struct {
	StartDate string `form:"startDate"` // YYYY-MM-DD
	EndDate   string `form:"endDate"`   // YYYY-MM-DD, inclusive
	ProductID string `form:"productId"`
	Type      string `form:"type"`
	Cafeteria string `form:"cafeteria"`
	Page      int    `form:"page,default=1"    validate:"min=1"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovementResponse struct {
	ID            string `json:"id"`
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName"`
	Type          string `json:"type"`
	Quantity      int    `json:"quantity"`
	Note          string `json:"note,omitempty"`
	InvoiceNumber string `json:"invoiceNumber,omitempty"`
	User          string `json:"user"`
	Cafeteria     string `json:"cafeteria"`
	PreviousStock int    `json:"previousStock"`
	NewStock      int    `json:"newStock"`
	CreatedAt     string `json:"createdAt"`
}

// RegisterMovementResponse echoes the updated product stock so the client
// can refresh its table without a second request.
type RegisterMovementResponse struct {
	Message  string           `json:"message"`
	Movement MovementResponse `json:"movement"`
	Product  struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Stock int    `json:"stock"`
	} `json:"product"`
}

type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
