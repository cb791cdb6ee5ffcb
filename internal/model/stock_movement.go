package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement types. Inbound types add to stock, outbound types subtract.
const (
	MovementStockIn        = "entrada"
	MovementManualIncrease = "ajuste_entrada"
	MovementManualDecrease = "ajuste_saida"
	MovementLoss           = "perda"
	MovementSale           = "venda"
)

// InboundMovement reports whether tipo adds to stock.
func InboundMovement(tipo string) bool {
	return tipo == MovementStockIn || tipo == MovementManualIncrease
}

// ValidMovementType reports whether tipo is one of the five movement types.
func ValidMovementType(tipo string) bool {
	switch tipo {
	case MovementStockIn, MovementManualIncrease, MovementManualDecrease, MovementLoss, MovementSale:
		return true
	}
	return false
}

// StockMovement records every stock change on a product. Append-only:
// rows are never edited or deleted. PreviousStock/NewStock are fixed
// snapshots taken inside the transaction that applied the change.
type StockMovement struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProductID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"productId"`
	ProductName   string     `gorm:"not null" json:"productName"` // snapshot — survives product deletion
	Type          string     `gorm:"not null;index" json:"type"`
	Quantity      int        `gorm:"not null" json:"quantity"`
	Note          string     `json:"note"`
	InvoiceNumber string     `json:"invoiceNumber"`
	User          string     `gorm:"not null" json:"user"`
	Cafeteria     string     `gorm:"not null" json:"cafeteria"`
	PreviousStock int        `gorm:"not null" json:"previousStock"`
	NewStock      int        `gorm:"not null" json:"newStock"`
	SaleID        *uuid.UUID `gorm:"type:uuid" json:"saleId,omitempty"` // set when Type == venda
	CreatedAt     time.Time  `gorm:"index" json:"createdAt"`
}

// TableName overrides GORM's default pluralization.
func (StockMovement) TableName() string { return "stock_movements" }
