package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Departments is the fixed set of valid collaborator departments.
var Departments = []string{
	"TI", "RH", "Vendas", "Financeiro", "Marketing", "Produção", "Administrativo", "Outros",
}

// ValidDepartment reports whether d is one of the fixed department labels.
func ValidDepartment(d string) bool {
	for _, dep := range Departments {
		if dep == d {
			return true
		}
	}
	return false
}

// Collaborator is an employee allowed to buy on payroll debit.
// AvailableBalance starts at MaxValue and is only decremented by
// payroll-debit sales; it is never replenished automatically — resets
// happen through an explicit administrator edit.
type Collaborator struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name             string          `gorm:"not null" json:"name"`
	Email            string          `gorm:"uniqueIndex;not null" json:"email"`
	Department       string          `gorm:"not null" json:"department"`
	MaxValue         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"maxValue"`
	AvailableBalance decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"availableBalance"`
	Login            string          `gorm:"uniqueIndex;not null" json:"login"`
	// PasswordHash is bcrypt; the plaintext is only ever returned once,
	// at creation or reset.
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
