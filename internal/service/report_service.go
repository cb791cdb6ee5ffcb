package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/f3rnandojr/newapp-coffe/internal/dto"
	"github.com/f3rnandojr/newapp-coffe/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// reportCacheTTL bounds how stale an aggregated sales report may be.
const reportCacheTTL = 60 * time.Second

type ReportService interface {
	SalesReport(ctx context.Context, filter dto.SalesReportFilter) (*dto.SalesReportResponse, error)
	LowStock(ctx context.Context) ([]dto.LowStockItem, error)
}

type reportService struct {
	sales    repository.SaleRepository
	products repository.ProductRepository
	rdb      *redis.Client
}

func NewReportService(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	rdb *redis.Client,
) ReportService {
	return &reportService{sales: sales, products: products, rdb: rdb}
}

func (s *reportService) SalesReport(ctx context.Context, filter dto.SalesReportFilter) (*dto.SalesReportResponse, error) {
	today := time.Now().Format("2006-01-02")
	startDate := filter.StartDate
	if startDate == "" {
		startDate = today
	}
	endDate := filter.EndDate
	if endDate == "" {
		endDate = today
	}

	cacheKey := fmt.Sprintf("reports:sales:%s:%s", startDate, endDate)
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached dto.SalesReportResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	from, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("data inicial inválida: %w", err)
	}
	until, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("data final inválida: %w", err)
	}
	// End date is inclusive for the whole day.
	to := until.AddDate(0, 0, 1)

	rows, err := s.sales.SummarizeByPaymentType(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var count int64
	total := decimal.Zero
	for _, row := range rows {
		count += row.Count
		total = total.Add(row.Total)
	}

	resp := &dto.SalesReportResponse{
		StartDate: startDate,
		EndDate:   endDate,
		Count:     count,
		Total:     total,
		ByPayment: rows,
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, raw, reportCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("key", cacheKey).Msg("falha ao gravar cache de relatório")
			}
		}
	}
	return resp, nil
}

func (s *reportService) LowStock(ctx context.Context) ([]dto.LowStockItem, error) {
	products, err := s.products.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItem, 0, len(products))
	for _, p := range products {
		items = append(items, dto.LowStockItem{
			ID:       p.ID.String(),
			Name:     p.Name,
			Category: p.Category,
			Stock:    p.Stock,
			MinStock: p.MinStock,
		})
	}
	return items, nil
}
