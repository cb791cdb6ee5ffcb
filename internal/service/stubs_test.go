package service

// In-memory repository stubs for unit-testing the services without a
// database. Transaction arguments are nil in this mode (see runTx); the
// guarded-update repos reproduce the guard logic on their maps.

import (
	"context"
	"strings"
	"time"

	"github.com/f3rnandojr/newapp-coffe/internal/dto"
	"github.com/f3rnandojr/newapp-coffe/internal/model"
	"github.com/f3rnandojr/newapp-coffe/internal/repository"
	"github.com/f3rnandojr/newapp-coffe/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── ProductRepository stub ───────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) seed(p model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = model.StockStatus(p.Stock, p.MinStock)
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.products[p.ID] = &p
	return &p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cloned := *p
	r.products[p.ID] = &cloned
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		if filter.Category != "" && filter.Category != "Todas" && p.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	p.UpdatedAt = time.Now()
	cloned := *p
	r.products[p.ID] = &cloned
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) ListBelowMinimum(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.MinStock > 0 && p.Stock < p.MinStock {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) AdjustStockTx(_ *gorm.DB, id uuid.UUID, delta int, guarded bool) (int, error) {
	p, ok := r.products[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	if guarded && p.Stock < -delta {
		return 0, gorm.ErrRecordNotFound // same signal as a failed guard
	}
	p.Stock += delta
	p.UpdatedAt = time.Now()
	return p.Stock, nil
}

func (r *stubProductRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── StockMovementRepository stub ─────────────────────────────────────────────

type stubMovementRepo struct {
	movements []model.StockMovement
}

func newStubMovementRepo() *stubMovementRepo { return &stubMovementRepo{} }

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	return r.CreateTx(nil, m)
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if filter.ProductID != "" && filter.ProductID != "Todos" && m.ProductID.String() != filter.ProductID {
			continue
		}
		if filter.Type != "" && filter.Type != "Todos" && m.Type != filter.Type {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// ── CollaboratorRepository stub ──────────────────────────────────────────────

type stubCollaboratorRepo struct {
	collaborators map[uuid.UUID]*model.Collaborator
}

func newStubCollaboratorRepo() *stubCollaboratorRepo {
	return &stubCollaboratorRepo{collaborators: make(map[uuid.UUID]*model.Collaborator)}
}

func (r *stubCollaboratorRepo) seed(c model.Collaborator) *model.Collaborator {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.collaborators[c.ID] = &c
	return &c
}

func (r *stubCollaboratorRepo) Create(_ context.Context, c *model.Collaborator) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	cloned := *c
	r.collaborators[c.ID] = &cloned
	return nil
}

func (r *stubCollaboratorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Collaborator, error) {
	c, ok := r.collaborators[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *c
	return &cloned, nil
}

func (r *stubCollaboratorRepo) FindByEmail(_ context.Context, email string) (*model.Collaborator, error) {
	for _, c := range r.collaborators {
		if c.Email == email {
			cloned := *c
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCollaboratorRepo) FindByLogin(_ context.Context, login string) (*model.Collaborator, error) {
	for _, c := range r.collaborators {
		if c.Login == login {
			cloned := *c
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCollaboratorRepo) List(_ context.Context, filter dto.CollaboratorFilter) ([]model.Collaborator, error) {
	var out []model.Collaborator
	for _, c := range r.collaborators {
		if filter.Department != "" && filter.Department != "Todos" && c.Department != filter.Department {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCollaboratorRepo) Update(_ context.Context, c *model.Collaborator) error {
	if _, ok := r.collaborators[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cloned := *c
	r.collaborators[c.ID] = &cloned
	return nil
}

func (r *stubCollaboratorRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.collaborators[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.collaborators, id)
	return nil
}

func (r *stubCollaboratorRepo) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	c, ok := r.collaborators[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.PasswordHash = hash
	return nil
}

func (r *stubCollaboratorRepo) DebitBalanceTx(_ *gorm.DB, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	c, ok := r.collaborators[id]
	if !ok {
		return decimal.Zero, gorm.ErrRecordNotFound
	}
	if c.AvailableBalance.LessThan(amount) {
		return decimal.Zero, gorm.ErrRecordNotFound // same signal as a failed guard
	}
	c.AvailableBalance = c.AvailableBalance.Sub(amount)
	return c.AvailableBalance, nil
}

func (r *stubCollaboratorRepo) DB() *gorm.DB { return nil }

var _ repository.CollaboratorRepository = (*stubCollaboratorRepo)(nil)

// ── SaleRepository stub ──────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	cloned := *s
	r.sales[s.ID] = &cloned
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *s
	return &cloned, nil
}

func (r *stubSaleRepo) List(_ context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if filter.PaymentType != "" && filter.PaymentType != "Todos" && s.PaymentType != filter.PaymentType {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) ListByCollaborator(_ context.Context, collaboratorID uuid.UUID) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.CollaboratorID != nil && *s.CollaboratorID == collaboratorID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) SummarizeByPaymentType(_ context.Context, from, to time.Time) ([]dto.PaymentTypeSummary, error) {
	agg := make(map[string]*dto.PaymentTypeSummary)
	for _, s := range r.sales {
		if s.CreatedAt.Before(from) || !s.CreatedAt.Before(to) {
			continue
		}
		row, ok := agg[s.PaymentType]
		if !ok {
			row = &dto.PaymentTypeSummary{PaymentType: s.PaymentType}
			agg[s.PaymentType] = row
		}
		row.Count++
		row.Total = row.Total.Add(s.Total)
	}
	var out []dto.PaymentTypeSummary
	for _, row := range agg {
		out = append(out, *row)
	}
	return out, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── UserRepository stub ──────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cloned := *u
	r.users[u.ID] = &cloned
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *u
	return &cloned, nil
}

func (r *stubUserRepo) FindByLogin(_ context.Context, login string) (*model.User, error) {
	for _, u := range r.users {
		if u.Login == login && u.Active {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── Dispatcher stub ──────────────────────────────────────────────────────────

// stubDispatcher records enqueued jobs instead of pushing them to redis.
type stubDispatcher struct {
	alerts []worker.LowStockAlertPayload
	emails []worker.EmailPayload
}

func (d *stubDispatcher) EnqueueLowStockAlert(_ context.Context, payload worker.LowStockAlertPayload) error {
	d.alerts = append(d.alerts, payload)
	return nil
}

func (d *stubDispatcher) EnqueueEmail(_ context.Context, payload worker.EmailPayload) error {
	d.emails = append(d.emails, payload)
	return nil
}

var _ Dispatcher = (*stubDispatcher)(nil)
