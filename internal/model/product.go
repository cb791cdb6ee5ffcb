package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock status labels shown in the catalog.
const (
	StatusNormal   = "Normal"
	StatusLowStock = "Baixo"
)

// Product is a catalog entry. Stock is only mutated through guarded
// adjustments (see ProductRepository.AdjustStockTx) so concurrent sales
// cannot interleave read-modify-write sequences.
type Product struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string          `gorm:"index;not null" json:"name"`
	Category  string          `gorm:"not null" json:"category"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock     int             `gorm:"not null;default:0" json:"stock"`
	MinStock  int             `gorm:"not null;default:0" json:"minStock"`
	Status    string          `gorm:"not null;default:'Normal'" json:"status"` // Normal | Baixo
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// StockStatus returns the label for a given stock level against the minimum.
func StockStatus(stock, minStock int) string {
	if minStock > 0 && stock < minStock {
		return StatusLowStock
	}
	return StatusNormal
}
