package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novamart/storefront/internal/domain"
	"github.com/novamart/storefront/internal/port"
)

type orderRepository struct {
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) (port.OrderRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &orderRepository{pool: pool}, nil
}

// CreateFromCart is the single multi-row atomic unit in the system: the
// order, its items, the payment row, the cart status transition and the cart
// line clear either all commit or none do. The guarded status UPDATE doubles
// as the idempotency check against a concurrent double submit.
func (r *orderRepository) CreateFromCart(ctx context.Context, order domain.Order) (domain.Order, error) {
	return withTx(ctx, r.pool, func(tx pgx.Tx) (domain.Order, error) {
		tag, err := tx.Exec(ctx,
			`UPDATE carts SET status = 'ordered', updated_at = NOW()
			 WHERE id = $1 AND status = 'active'`,
			order.CartID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("transition cart: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.Order{}, domain.ErrCartNotActive
		}

		shipping, err := json.Marshal(order.ShippingAddress)
		if err != nil {
			return domain.Order{}, fmt.Errorf("marshal shipping address: %w", err)
		}
		billing, err := json.Marshal(order.BillingAddress)
		if err != nil {
			return domain.Order{}, fmt.Errorf("marshal billing address: %w", err)
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO orders (id, cart_id, owner_id, total_cents, currency, status, payment_status, shipping_address, billing_address)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING created_at`,
			order.ID, order.CartID, order.OwnerID, order.Total.Cents,
			order.Total.Currency.String(), order.Status, order.PaymentStatus,
			shipping, billing).Scan(&order.CreatedAt)
		if err != nil {
			return domain.Order{}, fmt.Errorf("insert order: %w", err)
		}

		for i, item := range order.Items {
			err = tx.QueryRow(ctx,
				`INSERT INTO order_items (id, order_id, product_id, variant_id, qty, unit_price_cents, currency)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)
				 RETURNING created_at`,
				item.ID, order.ID, item.ProductID, item.VariantID,
				item.Qty, item.UnitPrice.Cents, item.UnitPrice.Currency.String()).
				Scan(&order.Items[i].CreatedAt)
			if err != nil {
				return domain.Order{}, fmt.Errorf("insert order item: %w", err)
			}
		}

		for i, payment := range order.Payments {
			err = tx.QueryRow(ctx,
				`INSERT INTO payments (id, order_id, provider, amount_cents, status, method)
				 VALUES ($1, $2, $3, $4, $5, $6)
				 RETURNING created_at`,
				payment.ID, order.ID, payment.Provider, payment.Amount.Cents,
				payment.Status, payment.Method).Scan(&order.Payments[i].CreatedAt)
			if err != nil {
				return domain.Order{}, fmt.Errorf("insert payment: %w", err)
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, order.CartID); err != nil {
			return domain.Order{}, fmt.Errorf("clear cart items: %w", err)
		}

		return order, nil
	})
}

func (r *orderRepository) GetOrder(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	var (
		order         domain.Order
		currencyCode  string
		shippingBytes []byte
		billingBytes  []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, cart_id, owner_id, total_cents, currency, status, payment_status, shipping_address, billing_address, created_at, paid_at
		 FROM orders
		 WHERE id = $1`,
		id).Scan(&order.ID, &order.CartID, &order.OwnerID, &order.Total.Cents,
		&currencyCode, &order.Status, &order.PaymentStatus,
		&shippingBytes, &billingBytes, &order.CreatedAt, &order.PaidAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("query order: %w", err)
	}

	order.Total.Currency, err = parseCurrency(currencyCode)
	if err != nil {
		return domain.Order{}, err
	}
	if err := json.Unmarshal(shippingBytes, &order.ShippingAddress); err != nil {
		return domain.Order{}, fmt.Errorf("unmarshal shipping address: %w", err)
	}
	if err := json.Unmarshal(billingBytes, &order.BillingAddress); err != nil {
		return domain.Order{}, fmt.Errorf("unmarshal billing address: %w", err)
	}

	order.Items, err = r.listItems(ctx, order.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("listItems: %w", err)
	}

	order.Payments, err = r.listPayments(ctx, order.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("listPayments: %w", err)
	}

	return order, nil
}

// ListOrdersByOwner returns order headers only, newest first; items and
// payments are loaded per order via GetOrder.
func (r *orderRepository) ListOrdersByOwner(ctx context.Context, ownerID string) ([]domain.Order, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, cart_id, owner_id, total_cents, currency, status, payment_status, created_at, paid_at
		 FROM orders
		 WHERE owner_id = $1
		 ORDER BY created_at DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var (
			order        domain.Order
			currencyCode string
		)
		if err := rows.Scan(&order.ID, &order.CartID, &order.OwnerID, &order.Total.Cents,
			&currencyCode, &order.Status, &order.PaymentStatus,
			&order.CreatedAt, &order.PaidAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}

		order.Total.Currency, err = parseCurrency(currencyCode)
		if err != nil {
			return nil, err
		}

		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) listItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, order_id, product_id, variant_id, qty, unit_price_cents, currency, created_at
		 FROM order_items
		 WHERE order_id = $1
		 ORDER BY created_at`,
		orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var (
			item         domain.OrderItem
			currencyCode string
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.VariantID,
			&item.Qty, &item.UnitPrice.Cents, &currencyCode, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}

		item.UnitPrice.Currency, err = parseCurrency(currencyCode)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

func (r *orderRepository) listPayments(ctx context.Context, orderID uuid.UUID) ([]domain.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.order_id, p.provider, p.amount_cents, o.currency, p.status, p.method, p.created_at
		 FROM payments p
		 JOIN orders o ON o.id = p.order_id
		 WHERE p.order_id = $1
		 ORDER BY p.created_at`,
		orderID)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var (
			payment      domain.Payment
			currencyCode string
		)
		if err := rows.Scan(&payment.ID, &payment.OrderID, &payment.Provider,
			&payment.Amount.Cents, &currencyCode, &payment.Status, &payment.Method,
			&payment.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}

		payment.Amount.Currency, err = parseCurrency(currencyCode)
		if err != nil {
			return nil, err
		}

		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return payments, nil
}
