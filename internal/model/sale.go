package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment types accepted at the register. PaymentPayrollDebit is the
// distinguished type that debits a collaborator's balance.
const (
	PaymentCash         = "dinheiro"
	PaymentCard         = "cartao"
	PaymentPix          = "pix"
	PaymentPayrollDebit = "débito corporativo"
)

// Sale is immutable after creation — there is no update or delete endpoint.
// Together with StockMovement it forms the audit trail.
//
// No foreign-key constraints are created for ProductID/CollaboratorID
// references (see infra.NewDatabase): deleting a product or collaborator
// must never cascade into historical sales, which keep a dangling id plus
// the denormalized snapshot.
type Sale struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Cafeteria      string          `gorm:"not null" json:"cafeteria"`
	User           string          `gorm:"not null" json:"user"`
	PaymentType    string          `gorm:"not null;index" json:"paymentType"`
	Total          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	CollaboratorID *uuid.UUID      `gorm:"type:uuid;index" json:"collaboratorId"`
	Items          []SaleItem      `gorm:"foreignKey:SaleID" json:"items"`
	CreatedAt      time.Time       `gorm:"index" json:"createdAt"`

	// Resolved on reads; nil when the reference dangles.
	Collaborator *Collaborator `gorm:"foreignKey:CollaboratorID" json:"collaborator,omitempty"`
}

// SaleItem is a denormalized snapshot of the product at sale time, not a
// live join: deleting the product later leaves the item intact.
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"productId"`
	Name      string          `gorm:"not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
}
