package port

import (
	"context"

	"github.com/novamart/storefront/internal/domain"
)

// Notifier delivers the order confirmation. Callers treat failures as
// best-effort: they are logged, never propagated.
type Notifier interface {
	OrderConfirmation(ctx context.Context, c domain.OrderConfirmation) error
}
