package service

import (
	"context"
	"os"
	"testing"

	"github.com/f3rnandojr/newapp-coffe/internal/apierror"
	"github.com/f3rnandojr/newapp-coffe/internal/dto"
	"github.com/f3rnandojr/newapp-coffe/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleFixture struct {
	products      *stubProductRepo
	collaborators *stubCollaboratorRepo
	sales         *stubSaleRepo
	movements     *stubMovementRepo
	dispatcher    *stubDispatcher
	svc           SaleService
}

func newSaleFixture() *saleFixture {
	products := newStubProductRepo()
	collaborators := newStubCollaboratorRepo()
	sales := newStubSaleRepo()
	movements := newStubMovementRepo()
	dispatcher := &stubDispatcher{}
	stock := NewStockService(products, movements, dispatcher, "Cafeteria Principal")
	return &saleFixture{
		products:      products,
		collaborators: collaborators,
		sales:         sales,
		movements:     movements,
		dispatcher:    dispatcher,
		svc:           NewSaleService(sales, products, collaborators, stock, "Cafeteria Principal", os.TempDir()),
	}
}

func TestRegisterSaleCashHappyPath(t *testing.T) {
	f := newSaleFixture()
	coffee := f.products.seed(model.Product{Name: "Café", Category: "Bebidas", Price: decimal.RequireFromString("5.50"), Stock: 20})
	cake := f.products.seed(model.Product{Name: "Bolo", Category: "Doces", Price: decimal.RequireFromString("8.00"), Stock: 10})

	resp, err := f.svc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		User:        "maria",
		PaymentType: model.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: coffee.ID.String(), Quantity: 2},
			{ProductID: cake.ID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)

	// Total recomputed server-side: 2×5.50 + 8.00 = 19.00
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("19.00")), "total = %s", resp.Total)
	assert.Equal(t, "Cafeteria Principal", resp.Cafeteria)
	require.Len(t, resp.Items, 2)

	// Stock decreased per line.
	assert.Equal(t, 18, f.products.products[coffee.ID].Stock)
	assert.Equal(t, 9, f.products.products[cake.ID].Stock)

	// One "venda" ledger entry per line, linked to the sale.
	require.Len(t, f.movements.movements, 2)
	saleID := uuid.MustParse(resp.ID)
	for _, mov := range f.movements.movements {
		assert.Equal(t, model.MovementSale, mov.Type)
		require.NotNil(t, mov.SaleID)
		assert.Equal(t, saleID, *mov.SaleID)
	}
}

func TestRegisterSaleMissingProductFailsWholeSale(t *testing.T) {
	f := newSaleFixture()
	coffee := f.products.seed(model.Product{Name: "Café", Category: "Bebidas", Price: decimal.NewFromInt(5), Stock: 20})

	_, err := f.svc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		PaymentType: model.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: coffee.ID.String(), Quantity: 1},
			{ProductID: uuid.NewString(), Quantity: 1},
		},
	})
	require.ErrorIs(t, err, apierror.ErrNotFound)

	// No partial registration: stock untouched, no sale, no movement.
	assert.Equal(t, 20, f.products.products[coffee.ID].Stock)
	assert.Empty(t, f.sales.sales)
	assert.Empty(t, f.movements.movements)
}

func TestRegisterSaleRejectsDivergentSubtotal(t *testing.T) {
	f := newSaleFixture()
	coffee := f.products.seed(model.Product{Name: "Café", Category: "Bebidas", Price: decimal.RequireFromString("5.50"), Stock: 20})

	wrong := decimal.RequireFromString("9.99")
	_, err := f.svc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		PaymentType: model.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: coffee.ID.String(), Quantity: 2, Subtotal: &wrong},
		},
	})

	var vErr *apierror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, f.sales.sales)
}

func TestRegisterSaleRejectsDivergentPrice(t *testing.T) {
	f := newSaleFixture()
	coffee := f.products.seed(model.Product{Name: "Café", Category: "Bebidas", Price: decimal.RequireFromString("5.50"), Stock: 20})

	stale := decimal.RequireFromString("4.00")
	_, err := f.svc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		PaymentType: model.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: coffee.ID.String(), Quantity: 1, Price: &stale},
		},
	})

	var vErr *apierror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "price")
	assert.Empty(t, f.sales.sales)
	assert.Equal(t, 20, f.products.products[coffee.ID].Stock)
}

func TestRegisterSaleEnqueuesAlertWhenDrainingBelowMinimum(t *testing.T) {
	f := newSaleFixture()
	coffee := f.products.seed(model.Product{Name: "Café", Category: "Bebidas", Price: decimal.NewFromInt(5), Stock: 6, MinStock: 5})
	cake := f.products.seed(model.Product{Name: "Bolo", Category: "Doces", Price: decimal.NewFromInt(8), Stock: 50, MinStock: 5})

	_, err := f.svc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		User:        "maria",
		PaymentType: model.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: coffee.ID.String(), Quantity: 3},
			{ProductID: cake.ID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)

	// Only the drained line crossed its minimum.
	require.Len(t, f.dispatcher.alerts, 1)
	alert := f.dispatcher.alerts[0]
	assert.Equal(t, coffee.ID.String(), alert.ProductID)
	assert.Equal(t, 3, alert.Stock)
	assert.Equal(t, 5, alert.MinStock)
}

func TestRegisterSaleFailedSaleEnqueuesNothing(t *testing.T) {
	f := newSaleFixture()
	coffee := f.products.seed(model.Product{Name: "Café", Category: "Bebidas", Price: decimal.NewFromInt(5), Stock: 2, MinStock: 5})

	_, err := f.svc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		PaymentType: model.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: coffee.ID.String(), Quantity: 3},
		},
	})
	require.Error(t, err)
	assert.Empty(t, f.dispatcher.alerts)
}

func TestRegisterSaleInsufficientStockFails(t *testing.T) {
	f := newSaleFixture()
	coffee := f.products.seed(model.Product{Name: "Café", Category: "Bebidas", Price: decimal.NewFromInt(5), Stock: 1})

	_, err := f.svc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		PaymentType: model.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: coffee.ID.String(), Quantity: 3},
		},
	})

	var stockErr *apierror.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 1, stockErr.Available)
}

func TestRegisterSalePayrollDebit(t *testing.T) {
	f := newSaleFixture()
	coffee := f.products.seed(model.Product{Name: "Café", Category: "Bebidas", Price: decimal.NewFromInt(10), Stock: 20})
	ana := f.collaborators.seed(model.Collaborator{
		Name:             "Ana Silva",
		Email:            "ana.silva@empresa.com",
		Department:       "TI",
		MaxValue:         decimal.NewFromInt(100),
		AvailableBalance: decimal.NewFromInt(100),
		Login:            "ana.silva",
	})

	cid := ana.ID.String()
	resp, err := f.svc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		User:           "maria",
		PaymentType:    model.PaymentPayrollDebit,
		CollaboratorID: &cid,
		Items: []dto.SaleItemRequest{
			{ProductID: coffee.ID.String(), Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana Silva", resp.CollaboratorName)
	require.NotNil(t, resp.CollaboratorID)
	assert.Equal(t, cid, *resp.CollaboratorID)

	// Balance debited: 100 − 30 = 70; ceiling untouched.
	stored := f.collaborators.collaborators[ana.ID]
	assert.True(t, stored.AvailableBalance.Equal(decimal.NewFromInt(70)), "balance = %s", stored.AvailableBalance)
	assert.True(t, stored.MaxValue.Equal(decimal.NewFromInt(100)))
}

func TestRegisterSalePayrollDebitRequiresCollaborator(t *testing.T) {
	f := newSaleFixture()
	coffee := f.products.seed(model.Product{Name: "Café", Category: "Bebidas", Price: decimal.NewFromInt(10), Stock: 20})

	_, err := f.svc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		PaymentType: model.PaymentPayrollDebit,
		Items: []dto.SaleItemRequest{
			{ProductID: coffee.ID.String(), Quantity: 1},
		},
	})

	var vErr *apierror.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestRegisterSalePayrollDebitInsufficientBalance(t *testing.T) {
	f := newSaleFixture()
	coffee := f.products.seed(model.Product{Name: "Café", Category: "Bebidas", Price: decimal.NewFromInt(10), Stock: 20})
	ana := f.collaborators.seed(model.Collaborator{
		Name:             "Ana Silva",
		Email:            "ana.silva@empresa.com",
		Department:       "TI",
		MaxValue:         decimal.NewFromInt(100),
		AvailableBalance: decimal.RequireFromString("15.00"),
		Login:            "ana.silva",
	})

	cid := ana.ID.String()
	_, err := f.svc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		PaymentType:    model.PaymentPayrollDebit,
		CollaboratorID: &cid,
		Items: []dto.SaleItemRequest{
			{ProductID: coffee.ID.String(), Quantity: 3}, // 30.00 > 15.00
		},
	})

	var balErr *apierror.InsufficientBalanceError
	require.ErrorAs(t, err, &balErr)
	assert.True(t, balErr.Available.Equal(decimal.RequireFromString("15.00")))

	// Pre-flight rejection: nothing was touched.
	assert.Equal(t, 20, f.products.products[coffee.ID].Stock)
	assert.Empty(t, f.sales.sales)
	assert.True(t, f.collaborators.collaborators[ana.ID].AvailableBalance.Equal(decimal.RequireFromString("15.00")))
}

func TestRegisterSaleExactBalanceReachesZero(t *testing.T) {
	f := newSaleFixture()
	coffee := f.products.seed(model.Product{Name: "Café", Category: "Bebidas", Price: decimal.NewFromInt(10), Stock: 20})
	ana := f.collaborators.seed(model.Collaborator{
		Name:             "Ana Silva",
		Email:            "ana.silva@empresa.com",
		Department:       "TI",
		MaxValue:         decimal.NewFromInt(30),
		AvailableBalance: decimal.NewFromInt(30),
		Login:            "ana.silva",
	})

	cid := ana.ID.String()
	_, err := f.svc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		PaymentType:    model.PaymentPayrollDebit,
		CollaboratorID: &cid,
		Items: []dto.SaleItemRequest{
			{ProductID: coffee.ID.String(), Quantity: 3},
		},
	})
	require.NoError(t, err)
	assert.True(t, f.collaborators.collaborators[ana.ID].AvailableBalance.IsZero())
}

func TestGetSaleNotFound(t *testing.T) {
	f := newSaleFixture()
	_, err := f.svc.GetSale(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}
