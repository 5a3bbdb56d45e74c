package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/novamart/storefront/internal/domain"
	"github.com/novamart/storefront/internal/port"
)

// CartService owns the lifecycle of the single active cart per owner and its
// line items. Owners are explicit identifiers: a signed-in user id or a
// client-held guest token.
type CartService struct {
	carts   port.CartRepository
	catalog port.Catalog
}

func NewCart(carts port.CartRepository, catalog port.Catalog) (*CartService, error) {
	if carts == nil {
		return nil, fmt.Errorf("carts is nil")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}

	return &CartService{carts: carts, catalog: catalog}, nil
}

// GetCart returns the owner's active cart, creating an empty one lazily.
func (s *CartService) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	cart, err := s.carts.GetOrCreateActiveCart(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.GetOrCreateActiveCart: %w", err)
	}

	return cart, nil
}

// AddItem resolves the current catalog price and adds a line to the owner's
// active cart. A repeat add of the same (product, variant) increments the
// existing line and keeps its original price snapshot; the snapshot is fixed
// at first add, deliberately not refreshed on repeat adds.
func (s *CartService) AddItem(ctx context.Context, ownerID string, productID uuid.UUID, variantID *uuid.UUID, qty int32) (domain.CartItem, error) {
	if qty <= 0 {
		return domain.CartItem{}, fmt.Errorf("qty must be positive, got %d", qty)
	}

	price, err := s.resolvePrice(ctx, productID, variantID)
	if err != nil {
		return domain.CartItem{}, err
	}

	cart, err := s.carts.GetOrCreateActiveCart(ctx, ownerID)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("carts.GetOrCreateActiveCart: %w", err)
	}

	item, err := s.carts.UpsertItem(ctx, domain.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		VariantID: variantID,
		Qty:       qty,
		Price:     price,
	})
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("carts.UpsertItem: %w", err)
	}

	return item, nil
}

// UpdateQuantity sets a line's quantity; zero or negative removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, ownerID string, itemID uuid.UUID, qty int32) error {
	if qty <= 0 {
		return s.RemoveItem(ctx, ownerID, itemID)
	}

	cart, err := s.carts.FindActiveCart(ctx, ownerID)
	if errors.Is(err, domain.ErrCartNotActive) {
		return domain.ErrItemNotFound
	}
	if err != nil {
		return fmt.Errorf("carts.FindActiveCart: %w", err)
	}

	if err := s.carts.UpdateItemQuantity(ctx, cart.ID, itemID, qty); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return domain.ErrItemNotFound
		}
		return fmt.Errorf("carts.UpdateItemQuantity: %w", err)
	}

	return nil
}

// RemoveItem deletes a line. Removing an absent line is not an error.
func (s *CartService) RemoveItem(ctx context.Context, ownerID string, itemID uuid.UUID) error {
	cart, err := s.carts.FindActiveCart(ctx, ownerID)
	if errors.Is(err, domain.ErrCartNotActive) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("carts.FindActiveCart: %w", err)
	}

	if _, err := s.carts.DeleteItem(ctx, cart.ID, itemID); err != nil {
		return fmt.Errorf("carts.DeleteItem: %w", err)
	}

	return nil
}

// Clear deletes all lines from the owner's active cart.
func (s *CartService) Clear(ctx context.Context, ownerID string) error {
	cart, err := s.carts.FindActiveCart(ctx, ownerID)
	if errors.Is(err, domain.ErrCartNotActive) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("carts.FindActiveCart: %w", err)
	}

	if err := s.carts.ClearItems(ctx, cart.ID); err != nil {
		return fmt.Errorf("carts.ClearItems: %w", err)
	}

	return nil
}

// Totals derives item count and price from the active cart's current lines.
// An owner without an active cart gets zero totals.
func (s *CartService) Totals(ctx context.Context, ownerID string) (domain.CartTotals, error) {
	cart, err := s.carts.FindActiveCart(ctx, ownerID)
	if errors.Is(err, domain.ErrCartNotActive) {
		return domain.Cart{}.Totals(), nil
	}
	if err != nil {
		return domain.CartTotals{}, fmt.Errorf("carts.FindActiveCart: %w", err)
	}

	return cart.Totals(), nil
}

// resolvePrice computes the unit price snapshot for a new line: the product's
// current price plus the variant delta. Missing or inactive products and
// variants not under the product surface as not-found errors.
func (s *CartService) resolvePrice(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) (domain.Money, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return domain.Money{}, domain.ErrProductNotFound
		}
		return domain.Money{}, fmt.Errorf("catalog.GetProduct: %w", err)
	}
	if !product.Active {
		return domain.Money{}, domain.ErrProductNotFound
	}

	price := product.Price
	if variantID != nil {
		variant, err := s.catalog.GetVariant(ctx, productID, *variantID)
		if err != nil {
			if errors.Is(err, domain.ErrVariantNotFound) {
				return domain.Money{}, domain.ErrVariantNotFound
			}
			return domain.Money{}, fmt.Errorf("catalog.GetVariant: %w", err)
		}
		price = price.Add(variant.PriceDeltaCents)
	}

	return price, nil
}
