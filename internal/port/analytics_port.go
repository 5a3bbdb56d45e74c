package port

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SalesTotals is an aggregate over orders created since a point in time.
type SalesTotals struct {
	Orders       int64
	RevenueCents int64
}

// ProductSales is units sold and revenue for one product over a window.
type ProductSales struct {
	ProductID    uuid.UUID
	Title        string
	Units        int64
	RevenueCents int64
	Stock        int32
}

type AnalyticsRepository interface {
	SalesTotals(ctx context.Context, since time.Time) (SalesTotals, error)
	TrendingProducts(ctx context.Context, since time.Time, limit int32) ([]ProductSales, error)
	LowStockBestsellers(ctx context.Context, since time.Time, stockBelow, limit int32) ([]ProductSales, error)
}
