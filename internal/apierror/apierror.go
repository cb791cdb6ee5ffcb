// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Message string `json:"message"`
}

func New(msg string) *APIError {
	return &APIError{Message: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Message: "Erro de validação", Fields: fields}
}

// Error lets services return a *ValidationError through the regular error
// path; handlers detect it with errors.As and answer 422.
func (e *ValidationError) Error() string { return e.Message }

// ErrNotFound marks a referenced record (product, collaborator, sale) that
// does not exist. Handlers translate it to 404.
var ErrNotFound = errors.New("registro não encontrado")

// InsufficientStockError is returned when an outbound movement would drive
// stock negative. Available carries the current stock level so the caller
// can display it.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Estoque insuficiente. Estoque atual: %d", e.Available)
}

// InsufficientBalanceError is returned when a payroll-debit sale exceeds the
// collaborator's available balance.
type InsufficientBalanceError struct {
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Saldo insuficiente. Saldo disponível: R$ %s", e.Available.StringFixed(2))
}
