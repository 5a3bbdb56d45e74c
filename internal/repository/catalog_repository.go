package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novamart/storefront/internal/domain"
	"github.com/novamart/storefront/internal/port"
)

type catalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalog(pool *pgxpool.Pool) (port.Catalog, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &catalogRepository{pool: pool}, nil
}

func (r *catalogRepository) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, title, slug, description, active, price_cents, currency, stock, created_at, updated_at
		 FROM products
		 WHERE id = $1`,
		id)

	product, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("query product: %w", err)
	}

	return product, nil
}

func (r *catalogRepository) GetVariant(ctx context.Context, productID, variantID uuid.UUID) (domain.Variant, error) {
	var v domain.Variant
	err := r.pool.QueryRow(ctx,
		`SELECT id, product_id, sku, name, price_delta_cents, stock, created_at, updated_at
		 FROM variants
		 WHERE id = $1 AND product_id = $2`,
		variantID, productID).Scan(&v.ID, &v.ProductID, &v.SKU, &v.Name,
		&v.PriceDeltaCents, &v.Stock, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Variant{}, domain.ErrVariantNotFound
	}
	if err != nil {
		return domain.Variant{}, fmt.Errorf("query variant: %w", err)
	}

	return v, nil
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, slug, description, active, price_cents, currency, stock, created_at, updated_at
		 FROM products
		 WHERE active
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *catalogRepository) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx,
		`INSERT INTO products (id, title, slug, description, active, price_cents, currency, stock)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at`,
		p.ID, p.Title, p.Slug, p.Description, p.Active,
		p.Price.Cents, p.Price.Currency.String(), p.Stock).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return p, nil
}

func (r *catalogRepository) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	var currencyCode string
	err := r.pool.QueryRow(ctx,
		`UPDATE products
		 SET title = $2, description = $3, active = $4, price_cents = $5, stock = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING slug, currency, created_at, updated_at`,
		p.ID, p.Title, p.Description, p.Active, p.Price.Cents, p.Stock).
		Scan(&p.Slug, &currencyCode, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}

	p.Price.Currency, err = parseCurrency(currencyCode)
	if err != nil {
		return domain.Product{}, err
	}

	return p, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p            domain.Product
		currencyCode string
	)
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.Active,
		&p.Price.Cents, &currencyCode, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Product{}, err
	}

	p.Price.Currency, err = parseCurrency(currencyCode)
	if err != nil {
		return domain.Product{}, err
	}

	return p, nil
}
