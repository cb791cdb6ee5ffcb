package service

import (
	"context"
	"errors"

	"github.com/f3rnandojr/newapp-coffe/internal/apierror"
	"github.com/f3rnandojr/newapp-coffe/internal/dto"
	"github.com/f3rnandojr/newapp-coffe/internal/model"
	"github.com/f3rnandojr/newapp-coffe/internal/repository"
	"github.com/f3rnandojr/newapp-coffe/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dispatcher enqueues the async jobs produced by the services. Satisfied by
// *worker.Dispatcher; unit tests substitute an in-memory recorder.
type Dispatcher interface {
	EnqueueLowStockAlert(ctx context.Context, payload worker.LowStockAlertPayload) error
	EnqueueEmail(ctx context.Context, payload worker.EmailPayload) error
}

// MovementCommand is one requested stock change, resolved against a loaded
// product. SaleID links sale-driven decreases back to their sale.
type MovementCommand struct {
	Product       *model.Product
	Type          string
	Quantity      int
	Note          string
	InvoiceNumber string
	User          string
	Cafeteria     string
	SaleID        *uuid.UUID
}

// StockService owns the stock ledger rule: every stock change updates the
// product and appends an immutable StockMovement in the same transaction.
type StockService interface {
	RegisterMovement(ctx context.Context, req dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error)

	// ApplyMovementTx is called within an open transaction — the sale flow
	// reuses it for each line item.
	ApplyMovementTx(tx *gorm.DB, cmd MovementCommand) (*model.StockMovement, error)

	// NotifyLowStock is the post-commit companion to ApplyMovementTx: the
	// sale flow calls it per line item once its transaction committed.
	NotifyLowStock(ctx context.Context, p *model.Product, mov *model.StockMovement)
}

type stockService struct {
	products         repository.ProductRepository
	movements        repository.StockMovementRepository
	dispatcher       Dispatcher
	defaultCafeteria string
}

func NewStockService(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	dispatcher Dispatcher,
	defaultCafeteria string,
) StockService {
	return &stockService{
		products:         products,
		movements:        movements,
		dispatcher:       dispatcher,
		defaultCafeteria: defaultCafeteria,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ApplyMovementTx applies the sign rule and the outbound precondition:
//
//	inbound  (entrada, ajuste_entrada):        new = previous + quantity
//	outbound (ajuste_saida, perda, venda):     new = previous − quantity,
//	                                           requires previous >= quantity
//
// The product update is a guarded single-statement UPDATE, so two concurrent
// outbound movements cannot both pass the precondition on the same stock.
// The movement row snapshots previous/new stock as fixed values.
func (s *stockService) ApplyMovementTx(tx *gorm.DB, cmd MovementCommand) (*model.StockMovement, error) {
	p := cmd.Product

	delta := cmd.Quantity
	guarded := false
	if !model.InboundMovement(cmd.Type) {
		delta = -cmd.Quantity
		guarded = true
	}

	newStock, err := s.products.AdjustStockTx(tx, p.ID, delta, guarded)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// Guard failed or product vanished — re-read to tell which.
		current, findErr := s.products.FindByID(context.Background(), p.ID)
		if findErr != nil {
			return nil, apierror.ErrNotFound
		}
		return nil, &apierror.InsufficientStockError{Available: current.Stock}
	}

	mov := &model.StockMovement{
		ProductID:     p.ID,
		ProductName:   p.Name,
		Type:          cmd.Type,
		Quantity:      cmd.Quantity,
		Note:          cmd.Note,
		InvoiceNumber: cmd.InvoiceNumber,
		User:          cmd.User,
		Cafeteria:     cmd.Cafeteria,
		PreviousStock: newStock - delta,
		NewStock:      newStock,
		SaleID:        cmd.SaleID,
	}
	if err := s.movements.CreateTx(tx, mov); err != nil {
		return nil, err
	}

	if status := model.StockStatus(newStock, p.MinStock); status != p.Status {
		if err := s.products.UpdateStatusTx(tx, p.ID, status); err != nil {
			return nil, err
		}
		p.Status = status
	}
	p.Stock = newStock

	return mov, nil
}

func (s *stockService) RegisterMovement(ctx context.Context, req dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apierror.ErrNotFound
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, apierror.ErrNotFound
	}

	if req.User == "" {
		req.User = "admin"
	}
	if req.Cafeteria == "" {
		req.Cafeteria = s.defaultCafeteria
	}

	var mov *model.StockMovement
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		var applyErr error
		mov, applyErr = s.ApplyMovementTx(tx, MovementCommand{
			Product:       product,
			Type:          req.Type,
			Quantity:      req.Quantity,
			Note:          req.Note,
			InvoiceNumber: req.InvoiceNumber,
			User:          req.User,
			Cafeteria:     req.Cafeteria,
		})
		return applyErr
	})
	if txErr != nil {
		return nil, txErr
	}

	// Post-commit: alert when the movement pushed stock below the minimum.
	s.NotifyLowStock(ctx, product, mov)

	resp := &dto.RegisterMovementResponse{
		Message:  "Movimentação registrada com sucesso",
		Movement: movementToResponse(mov),
	}
	resp.Product.ID = product.ID.String()
	resp.Product.Name = product.Name
	resp.Product.Stock = product.Stock
	return resp, nil
}

// NotifyLowStock enqueues a low-stock alert job when the movement crossed
// the minimum-stock threshold downwards. Best effort — fire & forget.
func (s *stockService) NotifyLowStock(ctx context.Context, p *model.Product, mov *model.StockMovement) {
	if s.dispatcher == nil || mov == nil || p.MinStock <= 0 {
		return
	}
	if mov.NewStock < p.MinStock && mov.PreviousStock >= p.MinStock {
		_ = s.dispatcher.EnqueueLowStockAlert(ctx, worker.LowStockAlertPayload{
			ProductID: p.ID.String(),
			Name:      p.Name,
			Category:  p.Category,
			Stock:     mov.NewStock,
			MinStock:  p.MinStock,
		})
	}
}

func (s *stockService) ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	movements, total, err := s.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		items = append(items, movementToResponse(&movements[i]))
	}
	return &dto.MovementListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func movementToResponse(m *model.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID.String(),
		ProductID:     m.ProductID.String(),
		ProductName:   m.ProductName,
		Type:          m.Type,
		Quantity:      m.Quantity,
		Note:          m.Note,
		InvoiceNumber: m.InvoiceNumber,
		User:          m.User,
		Cafeteria:     m.Cafeteria,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		CreatedAt:     m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
