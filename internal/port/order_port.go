package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/novamart/storefront/internal/domain"
)

type OrderRepository interface {
	// CreateFromCart persists the order, its items and the initial payment,
	// transitions the originating cart from active to ordered and clears the
	// cart's lines, all in a single transaction. Returns
	// domain.ErrCartNotActive when the cart is no longer active, in which
	// case nothing is persisted.
	CreateFromCart(ctx context.Context, order domain.Order) (domain.Order, error)

	GetOrder(ctx context.Context, id uuid.UUID) (domain.Order, error)
	ListOrdersByOwner(ctx context.Context, ownerID string) ([]domain.Order, error)
}
