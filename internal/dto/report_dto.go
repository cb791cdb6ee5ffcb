package dto

import "github.com/shopspring/decimal"

// SalesReportFilter is bound from the query string of GET /api/reports/sales.
type SalesReportFilter struct {
	StartDate string `form:"startDate"` // YYYY-MM-DD; empty = today
	EndDate   string `form:"endDate"`   // YYYY-MM-DD, inclusive; empty = today
}

// PaymentTypeSummary aggregates sales for one payment type.
type PaymentTypeSummary struct {
	PaymentType string          `json:"paymentType"`
	Count       int64           `json:"count"`
	Total       decimal.Decimal `json:"total"`
}

type SalesReportResponse struct {
	StartDate string               `json:"startDate"`
	EndDate   string               `json:"endDate"`
	Count     int64                `json:"count"`
	Total     decimal.Decimal      `json:"total"`
	ByPayment []PaymentTypeSummary `json:"byPaymentType"`
}

// LowStockItem is one row of GET /api/reports/low-stock.
type LowStockItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"minStock"`
}
