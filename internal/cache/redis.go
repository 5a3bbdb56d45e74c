package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/novamart/storefront/internal/domain"
	"github.com/novamart/storefront/internal/port"
)

// productPayload is the wire shape stored in redis; currency.Unit does not
// round-trip through encoding/json on its own.
type productPayload struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	PriceCents  int64     `json:"price_cents"`
	Currency    string    `json:"currency"`
	Stock       int32     `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RedisProductCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisProductCache(client *redis.Client) *RedisProductCache {
	return &RedisProductCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

var _ port.ProductCache = (*RedisProductCache)(nil)

func (r *RedisProductCache) Get(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	data, err := r.client.Get(ctx, cacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Product{}, port.ErrCacheMiss
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("redis get failed: %w", err)
	}

	var payload productPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.Product{}, fmt.Errorf("unmarshal product failed: %w", err)
	}

	return payload.toDomain()
}

func (r *RedisProductCache) Set(ctx context.Context, p domain.Product) error {
	data, err := json.Marshal(fromDomain(p))
	if err != nil {
		return fmt.Errorf("marshal product failed: %w", err)
	}

	// Jitter spreads expiry so a busy product page does not refill at once.
	ttl := r.baseTTL + time.Duration(rand.Intn(5))*time.Minute
	if err := r.client.Set(ctx, cacheKey(p.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (r *RedisProductCache) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id)
}

func fromDomain(p domain.Product) productPayload {
	return productPayload{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Active:      p.Active,
		PriceCents:  p.Price.Cents,
		Currency:    p.Price.Currency.String(),
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (payload productPayload) toDomain() (domain.Product, error) {
	unit, err := currencyFromCode(payload.Currency)
	if err != nil {
		return domain.Product{}, err
	}

	return domain.Product{
		ID:          payload.ID,
		Title:       payload.Title,
		Slug:        payload.Slug,
		Description: payload.Description,
		Active:      payload.Active,
		Price:       domain.Money{Cents: payload.PriceCents, Currency: unit},
		Stock:       payload.Stock,
		CreatedAt:   payload.CreatedAt,
		UpdatedAt:   payload.UpdatedAt,
	}, nil
}
