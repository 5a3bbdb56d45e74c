package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/novamart/storefront/internal/domain"
)

// Catalog resolves products and variants. The cart treats a missing or
// inactive product as domain.ErrProductNotFound.
type Catalog interface {
	GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error)

	// GetVariant returns domain.ErrVariantNotFound when the variant does not
	// exist under the given product.
	GetVariant(ctx context.Context, productID, variantID uuid.UUID) (domain.Variant, error)

	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
}
