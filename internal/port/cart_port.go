package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/novamart/storefront/internal/domain"
)

type CartRepository interface {
	// GetOrCreateActiveCart returns the owner's active cart, creating one if
	// none exists. Concurrent callers for the same owner converge on one row.
	GetOrCreateActiveCart(ctx context.Context, ownerID string) (domain.Cart, error)

	// FindActiveCart returns the owner's active cart with its items, or
	// domain.ErrCartNotActive when the owner has no active cart.
	FindActiveCart(ctx context.Context, ownerID string) (domain.Cart, error)

	// UpsertItem inserts a line or, when a line for the same
	// (cart, product, variant) exists, increments its quantity. The existing
	// line's price snapshot is left untouched either way.
	UpsertItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error)

	// UpdateItemQuantity sets the quantity of a line in the cart. Returns
	// domain.ErrItemNotFound when the line does not exist in that cart.
	UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, qty int32) error

	// DeleteItem removes a line, reporting whether a row was deleted.
	DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) (bool, error)

	// ClearItems removes all lines from the cart.
	ClearItems(ctx context.Context, cartID uuid.UUID) error
}
