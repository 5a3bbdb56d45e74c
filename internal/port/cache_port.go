package port

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/novamart/storefront/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

type ProductCache interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Product, error)
	Set(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
