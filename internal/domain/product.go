package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID
	Title       string
	Slug        string
	Description string
	Active      bool
	Price       Money
	Stock       int32

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Variant is a purchasable configuration of a product with a price delta
// relative to the base price.
type Variant struct {
	ID              uuid.UUID
	ProductID       uuid.UUID
	SKU             string
	Name            string
	PriceDeltaCents int64
	Stock           int32

	CreatedAt time.Time
	UpdatedAt time.Time
}
