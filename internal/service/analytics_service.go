package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/novamart/storefront/internal/port"
)

// AnalyticsService serves the operator dashboard: pull-based aggregation
// queries, no stored rollups.
type AnalyticsService struct {
	repo port.AnalyticsRepository
}

func NewAnalytics(repo port.AnalyticsRepository) (*AnalyticsService, error) {
	if repo == nil {
		return nil, fmt.Errorf("repo is nil")
	}

	return &AnalyticsService{repo: repo}, nil
}

type PeriodSales struct {
	Orders  int64
	Revenue decimal.Decimal
}

type SalesSummary struct {
	Today         PeriodSales
	Week          PeriodSales
	Month         PeriodSales
	AvgOrderValue decimal.Decimal
}

type ProductTrend struct {
	ProductID string
	Title     string
	Units     int64
	Revenue   decimal.Decimal
	Stock     int32
}

func (s *AnalyticsService) SalesSummary(ctx context.Context) (SalesSummary, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	daily, err := s.periodSales(ctx, today)
	if err != nil {
		return SalesSummary{}, err
	}
	weekly, err := s.periodSales(ctx, today.AddDate(0, 0, -7))
	if err != nil {
		return SalesSummary{}, err
	}
	monthly, err := s.periodSales(ctx, today.AddDate(0, 0, -30))
	if err != nil {
		return SalesSummary{}, err
	}

	summary := SalesSummary{Today: daily, Week: weekly, Month: monthly}
	if monthly.Orders > 0 {
		summary.AvgOrderValue = monthly.Revenue.Div(decimal.NewFromInt(monthly.Orders)).Round(2)
	}

	return summary, nil
}

func (s *AnalyticsService) TrendingProducts(ctx context.Context, limit int32) ([]ProductTrend, error) {
	since := time.Now().AddDate(0, 0, -7)

	sales, err := s.repo.TrendingProducts(ctx, since, limit)
	if err != nil {
		return nil, fmt.Errorf("repo.TrendingProducts: %w", err)
	}

	return toTrends(sales), nil
}

func (s *AnalyticsService) LowStockBestsellers(ctx context.Context, stockBelow, limit int32) ([]ProductTrend, error) {
	since := time.Now().AddDate(0, 0, -7)

	sales, err := s.repo.LowStockBestsellers(ctx, since, stockBelow, limit)
	if err != nil {
		return nil, fmt.Errorf("repo.LowStockBestsellers: %w", err)
	}

	return toTrends(sales), nil
}

func (s *AnalyticsService) periodSales(ctx context.Context, since time.Time) (PeriodSales, error) {
	totals, err := s.repo.SalesTotals(ctx, since)
	if err != nil {
		return PeriodSales{}, fmt.Errorf("repo.SalesTotals: %w", err)
	}

	return PeriodSales{
		Orders:  totals.Orders,
		Revenue: centsToAmount(totals.RevenueCents),
	}, nil
}

func toTrends(sales []port.ProductSales) []ProductTrend {
	trends := make([]ProductTrend, 0, len(sales))
	for _, s := range sales {
		trends = append(trends, ProductTrend{
			ProductID: s.ProductID.String(),
			Title:     s.Title,
			Units:     s.Units,
			Revenue:   centsToAmount(s.RevenueCents),
			Stock:     s.Stock,
		})
	}

	return trends
}

func centsToAmount(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}
