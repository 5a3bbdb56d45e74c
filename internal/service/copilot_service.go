package service

import (
	"context"
	"fmt"
	"strings"
)

// CopilotService answers free-text operator questions by keyword-routing
// them to the analytics queries. It is intentionally not a language model.
type CopilotService struct {
	analytics *AnalyticsService
}

func NewCopilot(analytics *AnalyticsService) (*CopilotService, error) {
	if analytics == nil {
		return nil, fmt.Errorf("analytics is nil")
	}

	return &CopilotService{analytics: analytics}, nil
}

type CopilotItem struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Metrics map[string]any `json:"metrics,omitempty"`
}

type CopilotAnswer struct {
	Title   string        `json:"title"`
	Summary string        `json:"summary"`
	Items   []CopilotItem `json:"items,omitempty"`
}

const lowStockThreshold = 10

func (s *CopilotService) Ask(ctx context.Context, question string) (CopilotAnswer, error) {
	q := strings.ToLower(question)

	switch {
	case strings.Contains(q, "trending"), strings.Contains(q, "popular"):
		return s.trending(ctx)
	case strings.Contains(q, "stock"):
		return s.lowStock(ctx)
	case strings.Contains(q, "sales"), strings.Contains(q, "revenue"):
		return s.sales(ctx)
	default:
		return CopilotAnswer{
			Title:   "How I can help",
			Summary: "Ask me about trending products, low-stock bestsellers, or sales and revenue.",
		}, nil
	}
}

func (s *CopilotService) trending(ctx context.Context) (CopilotAnswer, error) {
	trends, err := s.analytics.TrendingProducts(ctx, 5)
	if err != nil {
		return CopilotAnswer{}, fmt.Errorf("analytics.TrendingProducts: %w", err)
	}

	answer := CopilotAnswer{
		Title:   "Trending products (last 7 days)",
		Summary: fmt.Sprintf("%d products moved in the last week.", len(trends)),
	}
	for _, t := range trends {
		answer.Items = append(answer.Items, CopilotItem{
			ID:   t.ProductID,
			Name: t.Title,
			Metrics: map[string]any{
				"units_7d":   t.Units,
				"revenue_7d": t.Revenue.String(),
			},
		})
	}

	return answer, nil
}

func (s *CopilotService) lowStock(ctx context.Context) (CopilotAnswer, error) {
	trends, err := s.analytics.LowStockBestsellers(ctx, lowStockThreshold, 5)
	if err != nil {
		return CopilotAnswer{}, fmt.Errorf("analytics.LowStockBestsellers: %w", err)
	}

	answer := CopilotAnswer{
		Title:   "Low-stock bestsellers",
		Summary: fmt.Sprintf("%d bestsellers are below %d units in stock.", len(trends), lowStockThreshold),
	}
	for _, t := range trends {
		answer.Items = append(answer.Items, CopilotItem{
			ID:   t.ProductID,
			Name: t.Title,
			Metrics: map[string]any{
				"units_7d": t.Units,
				"stock":    t.Stock,
			},
		})
	}

	return answer, nil
}

func (s *CopilotService) sales(ctx context.Context) (CopilotAnswer, error) {
	summary, err := s.analytics.SalesSummary(ctx)
	if err != nil {
		return CopilotAnswer{}, fmt.Errorf("analytics.SalesSummary: %w", err)
	}

	return CopilotAnswer{
		Title: "Sales summary",
		Summary: fmt.Sprintf("Today: %d orders (%s). Last 7 days: %d orders (%s). Last 30 days: %d orders (%s), AOV %s.",
			summary.Today.Orders, summary.Today.Revenue,
			summary.Week.Orders, summary.Week.Revenue,
			summary.Month.Orders, summary.Month.Revenue,
			summary.AvgOrderValue),
	}, nil
}
