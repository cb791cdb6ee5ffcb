package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/f3rnandojr/newapp-coffe/internal/apierror"
	"github.com/f3rnandojr/newapp-coffe/internal/dto"
	"github.com/f3rnandojr/newapp-coffe/internal/model"
	"github.com/f3rnandojr/newapp-coffe/internal/repository"
	"github.com/f3rnandojr/newapp-coffe/internal/worker"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type CollaboratorService interface {
	Create(ctx context.Context, req dto.CreateCollaboratorRequest) (*dto.CreateCollaboratorResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.CollaboratorResponse, error)
	List(ctx context.Context, filter dto.CollaboratorFilter) ([]dto.CollaboratorResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCollaboratorRequest) (*dto.CollaboratorResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ResetPassword(ctx context.Context, id uuid.UUID) (*dto.ResetPasswordResponse, error)
	History(ctx context.Context, id uuid.UUID) ([]dto.SaleResponse, error)
}

type collaboratorService struct {
	repo       repository.CollaboratorRepository
	sales      repository.SaleRepository
	dispatcher Dispatcher
}

func NewCollaboratorService(
	repo repository.CollaboratorRepository,
	sales repository.SaleRepository,
	dispatcher Dispatcher,
) CollaboratorService {
	return &collaboratorService{repo: repo, sales: sales, dispatcher: dispatcher}
}

// GenerateLogin builds the lowercase "first.last" slug from a full name.
// Single-word names produce just the first word.
func GenerateLogin(name string) string {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "." + parts[len(parts)-1]
}

// generatePassword returns a random 6-digit numeric string (crypto/rand).
func generatePassword() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func (s *collaboratorService) Create(ctx context.Context, req dto.CreateCollaboratorRequest) (*dto.CreateCollaboratorResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, strings.ToLower(req.Email)); err == nil {
		return nil, apierror.NewValidation(map[string]string{"email": "e-mail já cadastrado"})
	}

	login := req.Login
	if login == "" {
		login = GenerateLogin(req.Name)
	}
	// Deduplicate login with a numeric suffix (ana.silva, ana.silva2, …).
	base := login
	for i := 2; ; i++ {
		if _, err := s.repo.FindByLogin(ctx, login); err != nil {
			break
		}
		login = fmt.Sprintf("%s%d", base, i)
	}

	password, err := generatePassword()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}

	collaborator := &model.Collaborator{
		Name:             req.Name,
		Email:            strings.ToLower(req.Email),
		Department:       req.Department,
		MaxValue:         req.MaxValue,
		AvailableBalance: req.MaxValue, // balance starts at the ceiling
		Login:            login,
		PasswordHash:     string(hash),
	}
	if err := s.repo.Create(ctx, collaborator); err != nil {
		return nil, err
	}

	// Best effort: mail the credentials to the collaborator.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailPayload{
			To:      collaborator.Email,
			Subject: "Acesso à cafeteria",
			Body: fmt.Sprintf("Olá %s,\n\nSeu acesso foi criado.\nLogin: %s\nSenha: %s\n",
				collaborator.Name, collaborator.Login, password),
		})
	}

	return &dto.CreateCollaboratorResponse{
		Collaborator: *collaboratorToResponse(collaborator),
		Password:     password,
	}, nil
}

func (s *collaboratorService) GetByID(ctx context.Context, id uuid.UUID) (*dto.CollaboratorResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.ErrNotFound
	}
	return collaboratorToResponse(c), nil
}

func (s *collaboratorService) List(ctx context.Context, filter dto.CollaboratorFilter) ([]dto.CollaboratorResponse, error) {
	collaborators, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CollaboratorResponse, 0, len(collaborators))
	for i := range collaborators {
		resp = append(resp, *collaboratorToResponse(&collaborators[i]))
	}
	return resp, nil
}

// Update overwrites any provided field, including the available balance —
// administrator edits are the only replenishment path, with no
// reconciliation against historical sales.
func (s *collaboratorService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCollaboratorRequest) (*dto.CollaboratorResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.ErrNotFound
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = strings.ToLower(*req.Email)
	}
	if req.Department != nil {
		c.Department = *req.Department
	}
	if req.MaxValue != nil {
		c.MaxValue = *req.MaxValue
	}
	if req.AvailableBalance != nil {
		c.AvailableBalance = *req.AvailableBalance
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return collaboratorToResponse(c), nil
}

func (s *collaboratorService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.ErrNotFound
	}
	return nil
}

// ResetPassword replaces the stored hash with a freshly generated 6-digit
// password and returns the plaintext exactly once.
func (s *collaboratorService) ResetPassword(ctx context.Context, id uuid.UUID) (*dto.ResetPasswordResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.ErrNotFound
	}
	password, err := generatePassword()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePasswordHash(ctx, c.ID, string(hash)); err != nil {
		return nil, err
	}
	return &dto.ResetPasswordResponse{
		Message:     "Senha redefinida com sucesso",
		NewPassword: password,
	}, nil
}

func (s *collaboratorService) History(ctx context.Context, id uuid.UUID) ([]dto.SaleResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, apierror.ErrNotFound
	}
	sales, err := s.sales.ListByCollaborator(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		resp = append(resp, *saleToResponse(&sales[i]))
	}
	return resp, nil
}

func collaboratorToResponse(c *model.Collaborator) *dto.CollaboratorResponse {
	return &dto.CollaboratorResponse{
		ID:               c.ID.String(),
		Name:             c.Name,
		Email:            c.Email,
		Department:       c.Department,
		MaxValue:         c.MaxValue,
		AvailableBalance: c.AvailableBalance,
		Login:            c.Login,
		CreatedAt:        c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
