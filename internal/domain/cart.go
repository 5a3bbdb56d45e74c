package domain

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

type CartStatus string

const (
	CartStatusActive    CartStatus = "active"
	CartStatusOrdered   CartStatus = "ordered"
	CartStatusAbandoned CartStatus = "abandoned"
)

// CanTransition reports whether a cart may move from s to target.
// Ordered and abandoned are terminal.
func (s CartStatus) CanTransition(target CartStatus) bool {
	return s == CartStatusActive &&
		(target == CartStatusOrdered || target == CartStatusAbandoned)
}

type Cart struct {
	ID      uuid.UUID
	OwnerID string
	Status  CartStatus
	Items   []CartItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem is one product(+variant) line. Price is the unit price snapshot
// captured when the line was first added; it does not track later catalog
// price changes.
type CartItem struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Qty       int32
	Price     Money

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartTotals struct {
	Items int32
	Price Money
}

// Totals derives item count and price from the current lines.
func (c Cart) Totals() CartTotals {
	unit := currency.USD
	if len(c.Items) > 0 {
		unit = c.Items[0].Price.Currency
	}

	totals := CartTotals{Price: Money{Currency: unit}}
	for _, item := range c.Items {
		totals.Items += item.Qty
		totals.Price.Cents += item.Price.MulQty(item.Qty).Cents
	}

	return totals
}

// FindItem returns the line matching the (product, variant) pair, if any.
func (c Cart) FindItem(productID uuid.UUID, variantID *uuid.UUID) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ProductID != productID {
			continue
		}
		if sameVariant(item.VariantID, variantID) {
			return item, true
		}
	}
	return CartItem{}, false
}

func sameVariant(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
