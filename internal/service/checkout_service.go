package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/novamart/storefront/internal/domain"
	"github.com/novamart/storefront/internal/port"
)

const notifyTimeout = 5 * time.Second

// CheckoutService converts an active, non-empty cart into an immutable
// order. The repository call is the atomic unit; the confirmation email is
// fire-and-forget after commit.
type CheckoutService struct {
	carts    port.CartRepository
	orders   port.OrderRepository
	notifier port.Notifier
}

func NewCheckout(carts port.CartRepository, orders port.OrderRepository, notifier port.Notifier) (*CheckoutService, error) {
	if carts == nil {
		return nil, fmt.Errorf("carts is nil")
	}
	if orders == nil {
		return nil, fmt.Errorf("orders is nil")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier is nil")
	}

	return &CheckoutService{carts: carts, orders: orders, notifier: notifier}, nil
}

// Finalize places an order from the owner's active cart. The total is the
// sum of the stored line snapshots, never re-fetched from the catalog. A
// cart that already became ordered fails with domain.ErrCartNotActive, so a
// double submit cannot create a second order; a failed attempt leaves the
// cart active and may be retried.
func (s *CheckoutService) Finalize(ctx context.Context, ownerID string, buyer domain.BuyerInfo, method domain.PaymentMethod) (domain.Order, error) {
	cart, err := s.carts.FindActiveCart(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotActive) {
			return domain.Order{}, domain.ErrCartNotActive
		}
		return domain.Order{}, fmt.Errorf("carts.FindActiveCart: %w", err)
	}

	order, err := domain.NewOrderFromCart(cart, buyer, method)
	if err != nil {
		return domain.Order{}, err
	}

	created, err := s.orders.CreateFromCart(ctx, order)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotActive) {
			return domain.Order{}, domain.ErrCartNotActive
		}
		return domain.Order{}, fmt.Errorf("orders.CreateFromCart: %w", err)
	}

	s.notifyAsync(domain.OrderConfirmation{
		OrderID:       created.ID,
		Email:         buyer.Email,
		PaymentMethod: method,
	})

	return created, nil
}

func (s *CheckoutService) GetOrder(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	return s.orders.GetOrder(ctx, id)
}

func (s *CheckoutService) ListOrders(ctx context.Context, ownerID string) ([]domain.Order, error) {
	return s.orders.ListOrdersByOwner(ctx, ownerID)
}

// notifyAsync runs detached so the buyer's response never waits on SMTP.
// A notifier failure is logged and never rolls back the committed order.
func (s *CheckoutService) notifyAsync(c domain.OrderConfirmation) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.OrderConfirmation(ctx, c); err != nil {
			log.Printf("order confirmation for %s failed: %v", c.OrderID, err)
		}
	}()
}
