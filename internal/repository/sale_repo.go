package repository

import (
	"context"
	"time"

	"github.com/f3rnandojr/newapp-coffe/internal/dto"
	"github.com/f3rnandojr/newapp-coffe/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	ListByCollaborator(ctx context.Context, collaboratorID uuid.UUID) ([]model.Sale, error)
	SummarizeByPaymentType(ctx context.Context, from, to time.Time) ([]dto.PaymentTypeSummary, error)
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items").Preload("Collaborator").First(&s, id).Error
	return &s, err
}

// dateRange translates YYYY-MM-DD bounds into a half-open [from, to+1d)
// interval so the end date is inclusive for the whole day.
func dateRange(q *gorm.DB, startDate, endDate string) *gorm.DB {
	if startDate != "" {
		if from, err := time.Parse("2006-01-02", startDate); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}
	if endDate != "" {
		if to, err := time.Parse("2006-01-02", endDate); err == nil {
			q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
		}
	}
	return q
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})
	q = dateRange(q, filter.StartDate, filter.EndDate)

	if filter.Cafeteria != "" && filter.Cafeteria != "Todas" {
		q = q.Where("cafeteria = ?", filter.Cafeteria)
	}
	if filter.PaymentType != "" && filter.PaymentType != "Todos" {
		q = q.Where("payment_type = ?", filter.PaymentType)
	}
	if filter.CollaboratorID != "" && filter.CollaboratorID != "Todos" {
		q = q.Where("collaborator_id = ?", filter.CollaboratorID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").Preload("Collaborator").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) ListByCollaborator(ctx context.Context, collaboratorID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Where("collaborator_id = ?", collaboratorID).
		Preload("Items").
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) SummarizeByPaymentType(ctx context.Context, from, to time.Time) ([]dto.PaymentTypeSummary, error) {
	var rows []dto.PaymentTypeSummary
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("payment_type AS payment_type, COUNT(*) AS count, COALESCE(SUM(total), 0) AS total").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("payment_type").
		Order("payment_type ASC").
		Scan(&rows).Error
	return rows, err
}
