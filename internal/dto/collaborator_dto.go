package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateCollaboratorRequest struct {
	Name       string          `json:"name"       validate:"required,min=2,max=120"`
	Email      string          `json:"email"      validate:"required,email"`
	Department string          `json:"department" validate:"required,oneof=TI RH Vendas Financeiro Marketing Produção Administrativo Outros"`
	MaxValue   decimal.Decimal `json:"maxValue"   validate:"min=0"`
	// Login is optional — when empty it is generated from the name
	// (lowercase first.last slug).
	Login string `json:"login" validate:"omitempty,min=3,max=60"`
}

type UpdateCollaboratorRequest struct {
	Name       *string          `json:"name"       validate:"omitempty,min=2,max=120"`
	Email      *string          `json:"email"      validate:"omitempty,email"`
	Department *string          `json:"department" validate:"omitempty,oneof=TI RH Vendas Financeiro Marketing Produção Administrativo Outros"`
	MaxValue   *decimal.Decimal `json:"maxValue"`
	// AvailableBalance may be overwritten directly by an administrator —
	// there is no reconciliation against historical sales.
	AvailableBalance *decimal.Decimal `json:"availableBalance"`
}

// CollaboratorFilter is bound from the query string of GET /api/collaborators.
type CollaboratorFilter struct {
	Department string `form:"department"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CollaboratorResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Department       string          `json:"department"`
	MaxValue         decimal.Decimal `json:"maxValue"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
	Login            string          `json:"login"`
	CreatedAt        string          `json:"createdAt"`
}

// CreateCollaboratorResponse carries the generated password exactly once;
// only the bcrypt hash is retained server-side.
type CreateCollaboratorResponse struct {
	Collaborator CollaboratorResponse `json:"collaborator"`
	Password     string               `json:"password"`
}

type ResetPasswordResponse struct {
	Message     string `json:"message"`
	NewPassword string `json:"newPassword"`
}
