package repository

import (
	"context"

	"github.com/f3rnandojr/newapp-coffe/internal/dto"
	"github.com/f3rnandojr/newapp-coffe/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CollaboratorRepository interface {
	Create(ctx context.Context, c *model.Collaborator) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Collaborator, error)
	FindByEmail(ctx context.Context, email string) (*model.Collaborator, error)
	FindByLogin(ctx context.Context, login string) (*model.Collaborator, error)
	List(ctx context.Context, filter dto.CollaboratorFilter) ([]model.Collaborator, error)
	Update(ctx context.Context, c *model.Collaborator) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error

	// DebitBalanceTx atomically decrements the available balance inside tx,
	// guarded by balance >= amount, and returns the remaining balance.
	// gorm.ErrRecordNotFound means a missing collaborator or a failed guard;
	// callers disambiguate by re-reading.
	DebitBalanceTx(tx *gorm.DB, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)

	DB() *gorm.DB
}

type collaboratorRepo struct{ db *gorm.DB }

func NewCollaboratorRepository(db *gorm.DB) CollaboratorRepository {
	return &collaboratorRepo{db: db}
}

func (r *collaboratorRepo) Create(ctx context.Context, c *model.Collaborator) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *collaboratorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Collaborator, error) {
	var c model.Collaborator
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *collaboratorRepo) FindByEmail(ctx context.Context, email string) (*model.Collaborator, error) {
	var c model.Collaborator
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&c).Error
	return &c, err
}

func (r *collaboratorRepo) FindByLogin(ctx context.Context, login string) (*model.Collaborator, error) {
	var c model.Collaborator
	err := r.db.WithContext(ctx).Where("login = ?", login).First(&c).Error
	return &c, err
}

func (r *collaboratorRepo) List(ctx context.Context, filter dto.CollaboratorFilter) ([]model.Collaborator, error) {
	q := r.db.WithContext(ctx).Model(&model.Collaborator{})
	if filter.Department != "" && filter.Department != "Todos" {
		q = q.Where("department = ?", filter.Department)
	}
	var collaborators []model.Collaborator
	err := q.Order("name ASC").Find(&collaborators).Error
	return collaborators, err
}

func (r *collaboratorRepo) Update(ctx context.Context, c *model.Collaborator) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *collaboratorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Collaborator{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *collaboratorRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).Model(&model.Collaborator{}).
		Where("id = ?", id).Update("password_hash", hash).Error
}

func (r *collaboratorRepo) DebitBalanceTx(tx *gorm.DB, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	var remaining decimal.Decimal
	res := tx.Raw(`
		UPDATE collaborators
		   SET available_balance = available_balance - ?, updated_at = NOW()
		 WHERE id = ? AND available_balance >= ?
		 RETURNING available_balance`,
		amount, id, amount,
	).Scan(&remaining)
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, gorm.ErrRecordNotFound
	}
	return remaining, nil
}

func (r *collaboratorRepo) DB() *gorm.DB { return r.db }
