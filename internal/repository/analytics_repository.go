package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novamart/storefront/internal/port"
)

type analyticsRepository struct {
	pool *pgxpool.Pool
}

func NewAnalytics(pool *pgxpool.Pool) (port.AnalyticsRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &analyticsRepository{pool: pool}, nil
}

func (r *analyticsRepository) SalesTotals(ctx context.Context, since time.Time) (port.SalesTotals, error) {
	var totals port.SalesTotals
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total_cents), 0)
		 FROM orders
		 WHERE created_at >= $1
		   AND status IN ('pending', 'paid', 'fulfilled')`,
		since).Scan(&totals.Orders, &totals.RevenueCents)
	if err != nil {
		return port.SalesTotals{}, fmt.Errorf("query sales totals: %w", err)
	}

	return totals, nil
}

// TrendingProducts aggregates order lines live instead of reading a
// periodically refreshed view; at storefront scale the window scan is cheap.
func (r *analyticsRepository) TrendingProducts(ctx context.Context, since time.Time, limit int32) ([]port.ProductSales, error) {
	return r.productSales(ctx,
		`SELECT p.id, p.title, SUM(oi.qty)::BIGINT, SUM(oi.qty * oi.unit_price_cents)::BIGINT, p.stock
		 FROM order_items oi
		 JOIN products p ON p.id = oi.product_id
		 WHERE oi.created_at >= $1
		 GROUP BY p.id, p.title, p.stock
		 ORDER BY SUM(oi.qty) DESC
		 LIMIT $2`,
		since, limit)
}

func (r *analyticsRepository) LowStockBestsellers(ctx context.Context, since time.Time, stockBelow, limit int32) ([]port.ProductSales, error) {
	return r.productSales(ctx,
		`SELECT p.id, p.title, SUM(oi.qty)::BIGINT, SUM(oi.qty * oi.unit_price_cents)::BIGINT, p.stock
		 FROM order_items oi
		 JOIN products p ON p.id = oi.product_id
		 WHERE oi.created_at >= $1 AND p.stock < $2
		 GROUP BY p.id, p.title, p.stock
		 ORDER BY SUM(oi.qty) DESC
		 LIMIT $3`,
		since, stockBelow, limit)
}

func (r *analyticsRepository) productSales(ctx context.Context, query string, args ...any) ([]port.ProductSales, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query product sales: %w", err)
	}
	defer rows.Close()

	var sales []port.ProductSales
	for rows.Next() {
		var s port.ProductSales
		if err := rows.Scan(&s.ProductID, &s.Title, &s.Units, &s.RevenueCents, &s.Stock); err != nil {
			return nil, fmt.Errorf("scan product sales: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sales, nil
}
