package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/f3rnandojr/newapp-coffe/internal/apierror"
	"github.com/f3rnandojr/newapp-coffe/internal/dto"
	"github.com/f3rnandojr/newapp-coffe/internal/infra"
	"github.com/f3rnandojr/newapp-coffe/internal/model"
	"github.com/f3rnandojr/newapp-coffe/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	RegisterSale(ctx context.Context, req dto.RegisterSaleRequest) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)

	// GenerateReceipt writes the PDF receipt for a sale and returns its path.
	GenerateReceipt(ctx context.Context, id uuid.UUID) (string, error)
}

type saleService struct {
	repo             repository.SaleRepository
	products         repository.ProductRepository
	collaborators    repository.CollaboratorRepository
	stock            StockService
	defaultCafeteria string
	pdfStoragePath   string
}

func NewSaleService(
	repo repository.SaleRepository,
	products repository.ProductRepository,
	collaborators repository.CollaboratorRepository,
	stock StockService,
	defaultCafeteria string,
	pdfStoragePath string,
) SaleService {
	return &saleService{
		repo:             repo,
		products:         products,
		collaborators:    collaborators,
		stock:            stock,
		defaultCafeteria: defaultCafeteria,
		pdfStoragePath:   pdfStoragePath,
	}
}

// ── RegisterSale ──────────────────────────────────────────────────────────────
// One logical unit per sale:
//  1. Resolve every line item against the catalog; a missing product fails
//     the whole sale — no line is ever skipped silently.
//  2. Recompute unit price and subtotal from the authoritative product price;
//     a client-sent subtotal that disagrees is rejected.
//  3. Payroll debit requires a collaborator with balance >= total.
//  4. BEGIN TX: insert sale + items, apply one sale-driven stock decrease per
//     line (product update + movement append), debit collaborator balance.
//  5. COMMIT — any step failing rolls back every mutation.

func (s *saleService) RegisterSale(ctx context.Context, req dto.RegisterSaleRequest) (*dto.SaleResponse, error) {
	if req.Cafeteria == "" {
		req.Cafeteria = s.defaultCafeteria
	}
	if req.User == "" {
		req.User = "admin"
	}

	// 1-2. Resolve products and recompute totals (pre-flight, outside TX)
	type resolvedItem struct {
		product  *model.Product
		quantity int
		subtotal decimal.Decimal
	}

	resolved := make([]resolvedItem, 0, len(req.Items))
	total := decimal.Zero
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("productId inválido: %w", err)
		}
		p, err := s.products.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("produto %s: %w", item.ProductID, apierror.ErrNotFound)
		}

		if item.Price != nil && !item.Price.Equal(p.Price) {
			return nil, apierror.NewValidation(map[string]string{
				"price": fmt.Sprintf("preço divergente para %s: esperado %s", p.Name, p.Price.StringFixed(2)),
			})
		}
		subtotal := p.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if item.Subtotal != nil && !item.Subtotal.Equal(subtotal) {
			return nil, apierror.NewValidation(map[string]string{
				"subtotal": fmt.Sprintf("subtotal divergente para %s: esperado %s", p.Name, subtotal.StringFixed(2)),
			})
		}
		total = total.Add(subtotal)
		resolved = append(resolved, resolvedItem{product: p, quantity: item.Quantity, subtotal: subtotal})
	}

	// 3. Payroll debit pre-flight: collaborator must exist and cover the total.
	// The guarded UPDATE inside the transaction is the authoritative check.
	var collaborator *model.Collaborator
	if req.PaymentType == model.PaymentPayrollDebit {
		if req.CollaboratorID == nil {
			return nil, apierror.NewValidation(map[string]string{
				"collaboratorId": "obrigatório para débito corporativo",
			})
		}
		cid, err := uuid.Parse(*req.CollaboratorID)
		if err != nil {
			return nil, fmt.Errorf("collaboratorId inválido: %w", err)
		}
		collaborator, err = s.collaborators.FindByID(ctx, cid)
		if err != nil {
			return nil, fmt.Errorf("colaborador %s: %w", cid, apierror.ErrNotFound)
		}
		if collaborator.AvailableBalance.LessThan(total) {
			return nil, &apierror.InsufficientBalanceError{Available: collaborator.AvailableBalance}
		}
	}

	// 4-5. ACID transaction
	var sale model.Sale
	movements := make([]*model.StockMovement, 0, len(resolved))
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		movements = movements[:0] // a gorm retry re-runs the closure
		sale = model.Sale{
			Cafeteria:   req.Cafeteria,
			User:        req.User,
			PaymentType: req.PaymentType,
			Total:       total,
		}
		if collaborator != nil {
			cid := collaborator.ID
			sale.CollaboratorID = &cid
		}
		for _, r := range resolved {
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID: r.product.ID,
				Name:      r.product.Name,
				Price:     r.product.Price,
				Quantity:  r.quantity,
				Subtotal:  r.subtotal,
			})
		}
		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return err
		}

		// One sale-driven stock decrease per line item.
		saleRef := sale.ID
		for _, r := range resolved {
			mov, err := s.stock.ApplyMovementTx(tx, MovementCommand{
				Product:   r.product,
				Type:      model.MovementSale,
				Quantity:  r.quantity,
				User:      req.User,
				Cafeteria: req.Cafeteria,
				SaleID:    &saleRef,
			})
			if err != nil {
				return fmt.Errorf("baixa de estoque de %s: %w", r.product.Name, err)
			}
			movements = append(movements, mov)
		}

		if collaborator != nil {
			remaining, err := s.collaborators.DebitBalanceTx(tx, collaborator.ID, total)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				current, findErr := s.collaborators.FindByID(ctx, collaborator.ID)
				if findErr != nil {
					return apierror.ErrNotFound
				}
				return &apierror.InsufficientBalanceError{Available: current.AvailableBalance}
			}
			collaborator.AvailableBalance = remaining
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Post-commit: a sale draining a product below its minimum raises the
	// same alert an explicit outbound movement would.
	for i, r := range resolved {
		s.stock.NotifyLowStock(ctx, r.product, movements[i])
	}

	resp := saleToResponse(&sale)
	if collaborator != nil {
		resp.CollaboratorName = collaborator.Name
	}
	return resp, nil
}

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.ErrNotFound
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *saleService) GenerateReceipt(ctx context.Context, id uuid.UUID) (string, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", apierror.ErrNotFound
	}
	return infra.GenerateReceiptPDF(sale, s.pdfStoragePath)
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal,
		})
	}
	resp := &dto.SaleResponse{
		ID:          s.ID.String(),
		Cafeteria:   s.Cafeteria,
		Items:       items,
		User:        s.User,
		PaymentType: s.PaymentType,
		Total:       s.Total,
		CreatedAt:   s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if s.CollaboratorID != nil {
		cid := s.CollaboratorID.String()
		resp.CollaboratorID = &cid
	}
	if s.Collaborator != nil {
		resp.CollaboratorName = s.Collaborator.Name
	}
	return resp
}
