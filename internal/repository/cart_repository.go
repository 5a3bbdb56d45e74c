package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/text/currency"

	"github.com/novamart/storefront/internal/domain"
	"github.com/novamart/storefront/internal/port"
)

type cartRepository struct {
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) (port.CartRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &cartRepository{pool: pool}, nil
}

func (r *cartRepository) GetOrCreateActiveCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	// The partial unique index on (owner_id) WHERE status='active' makes
	// concurrent creators converge on a single row.
	_, err := r.pool.Exec(ctx,
		`INSERT INTO carts (id, owner_id, status)
		 VALUES ($1, $2, 'active')
		 ON CONFLICT (owner_id) WHERE status = 'active' DO NOTHING`,
		uuid.New(), ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("insert cart: %w", err)
	}

	return r.FindActiveCart(ctx, ownerID)
}

func (r *cartRepository) FindActiveCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	var cart domain.Cart
	err := r.pool.QueryRow(ctx,
		`SELECT id, owner_id, status, created_at, updated_at
		 FROM carts
		 WHERE owner_id = $1 AND status = 'active'`,
		ownerID).Scan(&cart.ID, &cart.OwnerID, &cart.Status, &cart.CreatedAt, &cart.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Cart{}, domain.ErrCartNotActive
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("query cart: %w", err)
	}

	items, err := r.listItems(ctx, cart.ID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("listItems: %w", err)
	}
	cart.Items = items

	return cart, nil
}

func (r *cartRepository) UpsertItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	// On a (cart, product, variant) collision only the quantity moves; the
	// stored price snapshot stays as it was at first add.
	row := r.pool.QueryRow(ctx,
		`INSERT INTO cart_items (id, cart_id, product_id, variant_id, qty, price_cents_snapshot, currency)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (cart_id, product_id, variant_id)
		 DO UPDATE SET qty = cart_items.qty + EXCLUDED.qty, updated_at = NOW()
		 RETURNING id, qty, price_cents_snapshot, currency, created_at, updated_at`,
		uuid.New(), item.CartID, item.ProductID, item.VariantID,
		item.Qty, item.Price.Cents, item.Price.Currency.String())

	stored := domain.CartItem{
		CartID:    item.CartID,
		ProductID: item.ProductID,
		VariantID: item.VariantID,
	}
	var currencyCode string
	err := row.Scan(&stored.ID, &stored.Qty, &stored.Price.Cents, &currencyCode,
		&stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("upsert cart item: %w", err)
	}

	stored.Price.Currency, err = parseCurrency(currencyCode)
	if err != nil {
		return domain.CartItem{}, err
	}

	return stored, nil
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, qty int32) error {
	if qty <= 0 {
		return fmt.Errorf("qty must be positive, got %d", qty)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE cart_items SET qty = $3, updated_at = NOW()
		 WHERE cart_id = $1 AND id = $2`,
		cartID, itemID, qty)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}

	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`,
		cartID, itemID)
	if err != nil {
		return false, fmt.Errorf("delete cart item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *cartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}

	return nil
}

func (r *cartRepository) listItems(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, cart_id, product_id, variant_id, qty, price_cents_snapshot, currency, created_at, updated_at
		 FROM cart_items
		 WHERE cart_id = $1
		 ORDER BY created_at`,
		cartID)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var (
			item         domain.CartItem
			currencyCode string
		)
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.VariantID,
			&item.Qty, &item.Price.Cents, &currencyCode, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}

		item.Price.Currency, err = parseCurrency(currencyCode)
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

func parseCurrency(code string) (currency.Unit, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	return unit, nil
}
