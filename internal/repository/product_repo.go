package repository

import (
	"context"

	"github.com/f3rnandojr/newapp-coffe/internal/dto"
	"github.com/f3rnandojr/newapp-coffe/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListBelowMinimum(ctx context.Context) ([]model.Product, error)

	// AdjustStockTx applies a guarded atomic stock delta inside tx and
	// returns the resulting stock level. With guarded=true the update only
	// fires when stock >= -delta, so an outbound adjustment can never drive
	// stock negative; gorm.ErrRecordNotFound means either a missing product
	// or a failed guard — callers disambiguate by re-reading.
	AdjustStockTx(tx *gorm.DB, id uuid.UUID, delta int, guarded bool) (int, error)

	// UpdateStatusTx sets the Normal/Baixo status label inside tx.
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Category != "" && filter.Category != "Todas" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Hard delete by explicit request. Historical sale items and stock
	// movements keep their snapshots and now-dangling product ids.
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) ListBelowMinimum(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("min_stock > 0 AND stock < min_stock").
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) AdjustStockTx(tx *gorm.DB, id uuid.UUID, delta int, guarded bool) (int, error) {
	// Single-statement read-modify-write: the row lock taken by UPDATE
	// serializes concurrent adjustments on the same product.
	sql := `UPDATE products SET stock = stock + ?, updated_at = NOW() WHERE id = ?`
	args := []interface{}{delta, id}
	if guarded {
		sql += ` AND stock >= ?`
		args = append(args, -delta)
	}
	sql += ` RETURNING stock`

	var newStock int
	res := tx.Raw(sql, args...).Scan(&newStock)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return newStock, nil
}

func (r *productRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).Update("status", status).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
