package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/novamart/storefront/internal/domain"
	"github.com/novamart/storefront/internal/port"
)

// CatalogService fronts the catalog repository with a product cache.
// Cache failures degrade to database reads and are only logged.
type CatalogService struct {
	repo  port.Catalog
	cache port.ProductCache
	sfg   singleflight.Group // prevents cache stampede on hot products
}

func NewCatalog(repo port.Catalog, cache port.ProductCache) (*CatalogService, error) {
	if repo == nil {
		return nil, fmt.Errorf("repo is nil")
	}
	if cache == nil {
		return nil, fmt.Errorf("cache is nil")
	}

	return &CatalogService{repo: repo, cache: cache}, nil
}

var _ port.Catalog = (*CatalogService)(nil)

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	v, err, _ := s.sfg.Do(id.String(), func() (interface{}, error) {
		product, err := s.cache.Get(ctx, id)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, port.ErrCacheMiss) {
			log.Printf("product cache get error: %v", err)
		}

		product, err = s.repo.GetProduct(ctx, id)
		if err != nil {
			return domain.Product{}, err
		}

		if err := s.cache.Set(ctx, product); err != nil {
			log.Printf("product cache set error: %v", err)
		}

		return product, nil
	})
	if err != nil {
		return domain.Product{}, err
	}

	return v.(domain.Product), nil
}

func (s *CatalogService) GetVariant(ctx context.Context, productID, variantID uuid.UUID) (domain.Variant, error) {
	return s.repo.GetVariant(ctx, productID, variantID)
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *CatalogService) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	created, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}

	if err := s.cache.Set(ctx, created); err != nil {
		log.Printf("product cache set error: %v", err)
	}

	return created, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	updated, err := s.repo.UpdateProduct(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}

	// Refresh rather than invalidate so the next read sees the new price.
	if err := s.cache.Set(ctx, updated); err != nil {
		log.Printf("product cache set error: %v", err)
	}

	return updated, nil
}
