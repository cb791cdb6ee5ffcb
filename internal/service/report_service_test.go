package service

import (
	"context"
	"testing"

	"github.com/f3rnandojr/newapp-coffe/internal/dto"
	"github.com/f3rnandojr/newapp-coffe/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesReportAggregatesByPaymentType(t *testing.T) {
	sales := newStubSaleRepo()
	svc := NewReportService(sales, newStubProductRepo(), nil)

	seed := []struct {
		payment string
		total   int64
	}{
		{model.PaymentCash, 10},
		{model.PaymentCash, 15},
		{model.PaymentPix, 7},
		{model.PaymentPayrollDebit, 20},
	}
	for _, s := range seed {
		require.NoError(t, sales.Create(context.Background(), nil, &model.Sale{
			Cafeteria: "Cafeteria Principal", User: "maria",
			PaymentType: s.payment, Total: decimal.NewFromInt(s.total),
		}))
	}

	resp, err := svc.SalesReport(context.Background(), dto.SalesReportFilter{
		StartDate: "2000-01-01", EndDate: "2100-01-01",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4), resp.Count)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(52)), "total = %s", resp.Total)

	byType := make(map[string]dto.PaymentTypeSummary)
	for _, row := range resp.ByPayment {
		byType[row.PaymentType] = row
	}
	assert.Equal(t, int64(2), byType[model.PaymentCash].Count)
	assert.True(t, byType[model.PaymentCash].Total.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, int64(1), byType[model.PaymentPayrollDebit].Count)
}

func TestSalesReportRejectsBadDates(t *testing.T) {
	svc := NewReportService(newStubSaleRepo(), newStubProductRepo(), nil)

	_, err := svc.SalesReport(context.Background(), dto.SalesReportFilter{StartDate: "01/02/2026"})
	assert.Error(t, err)
}

func TestLowStockReport(t *testing.T) {
	products := newStubProductRepo()
	svc := NewReportService(newStubSaleRepo(), products, nil)

	products.seed(model.Product{Name: "Café", Category: "Bebidas", Price: decimal.NewFromInt(5), Stock: 1, MinStock: 5})
	products.seed(model.Product{Name: "Bolo", Category: "Doces", Price: decimal.NewFromInt(8), Stock: 10, MinStock: 5})
	products.seed(model.Product{Name: "Água", Category: "Bebidas", Price: decimal.NewFromInt(3), Stock: 0, MinStock: 0})

	items, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Café", items[0].Name)
	assert.Equal(t, 1, items[0].Stock)
	assert.Equal(t, 5, items[0].MinStock)
}
