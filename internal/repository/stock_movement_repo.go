package repository

import (
	"context"

	"github.com/f3rnandojr/newapp-coffe/internal/dto"
	"github.com/f3rnandojr/newapp-coffe/internal/model"

	"gorm.io/gorm"
)

// StockMovementRepository is append-only: movements are never updated or
// deleted once written.
type StockMovementRepository interface {
	Create(ctx context.Context, m *model.StockMovement) error
	CreateTx(tx *gorm.DB, m *model.StockMovement) error
	List(ctx context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error)
}

type stockMovementRepo struct{ db *gorm.DB }

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

func (r *stockMovementRepo) Create(ctx context.Context, m *model.StockMovement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *stockMovementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *stockMovementRepo) List(ctx context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StockMovement{})
	q = dateRange(q, filter.StartDate, filter.EndDate)

	if filter.ProductID != "" && filter.ProductID != "Todos" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.Type != "" && filter.Type != "Todos" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Cafeteria != "" && filter.Cafeteria != "Todas" {
		q = q.Where("cafeteria = ?", filter.Cafeteria)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var movements []model.StockMovement
	err := q.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&movements).Error
	return movements, total, err
}
