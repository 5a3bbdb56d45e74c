package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/novamart/storefront/internal/domain"
	"github.com/novamart/storefront/internal/port"
)

// fakeCartRepo is an in-memory port.CartRepository honoring the same
// contract as the postgres implementation: one active cart per owner,
// upsert increments quantity and keeps the price snapshot.
type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*domain.Cart)}
}

func (f *fakeCartRepo) GetOrCreateActiveCart(_ context.Context, ownerID string) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cart, ok := f.carts[ownerID]
	if !ok || cart.Status != domain.CartStatusActive {
		cart = &domain.Cart{
			ID:      uuid.New(),
			OwnerID: ownerID,
			Status:  domain.CartStatusActive,
		}
		f.carts[ownerID] = cart
	}

	return copyCart(cart), nil
}

func (f *fakeCartRepo) FindActiveCart(_ context.Context, ownerID string) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cart, ok := f.carts[ownerID]
	if !ok || cart.Status != domain.CartStatusActive {
		return domain.Cart{}, domain.ErrCartNotActive
	}

	return copyCart(cart), nil
}

func (f *fakeCartRepo) UpsertItem(_ context.Context, item domain.CartItem) (domain.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cart := f.cartByID(item.CartID)
	if cart == nil {
		return domain.CartItem{}, domain.ErrCartNotActive
	}

	if existing, ok := cart.FindItem(item.ProductID, item.VariantID); ok {
		for i := range cart.Items {
			if cart.Items[i].ID == existing.ID {
				cart.Items[i].Qty += item.Qty
				return cart.Items[i], nil
			}
		}
	}

	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	cart.Items = append(cart.Items, item)

	return item, nil
}

func (f *fakeCartRepo) UpdateItemQuantity(_ context.Context, cartID, itemID uuid.UUID, qty int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	cart := f.cartByID(cartID)
	if cart == nil {
		return domain.ErrItemNotFound
	}

	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Qty = qty
			return nil
		}
	}

	return domain.ErrItemNotFound
}

func (f *fakeCartRepo) DeleteItem(_ context.Context, cartID, itemID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cart := f.cartByID(cartID)
	if cart == nil {
		return false, nil
	}

	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeCartRepo) ClearItems(_ context.Context, cartID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if cart := f.cartByID(cartID); cart != nil {
		cart.Items = nil
	}

	return nil
}

func (f *fakeCartRepo) cartByID(id uuid.UUID) *domain.Cart {
	for _, cart := range f.carts {
		if cart.ID == id {
			return cart
		}
	}
	return nil
}

func copyCart(cart *domain.Cart) domain.Cart {
	out := *cart
	out.Items = append([]domain.CartItem(nil), cart.Items...)
	return out
}

// fakeOrderRepo persists orders in memory and flips the originating cart to
// ordered, the same visible effect as the transactional implementation.
type fakeOrderRepo struct {
	mu        sync.Mutex
	carts     *fakeCartRepo
	orders    map[uuid.UUID]domain.Order
	createErr error
}

func newFakeOrderRepo(carts *fakeCartRepo) *fakeOrderRepo {
	return &fakeOrderRepo{carts: carts, orders: make(map[uuid.UUID]domain.Order)}
}

func (f *fakeOrderRepo) CreateFromCart(_ context.Context, order domain.Order) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.Order{}, f.createErr
	}

	cart := f.carts.cartByID(order.CartID)
	if cart == nil || cart.Status != domain.CartStatusActive {
		return domain.Order{}, domain.ErrCartNotActive
	}
	cart.Status = domain.CartStatusOrdered
	cart.Items = nil

	order.CreatedAt = time.Now()
	f.orders[order.ID] = order

	return order, nil
}

func (f *fakeOrderRepo) GetOrder(_ context.Context, id uuid.UUID) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) ListOrdersByOwner(_ context.Context, ownerID string) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Order
	for _, order := range f.orders {
		if order.OwnerID == ownerID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

// catalogStub serves products and variants from maps.
type catalogStub struct {
	products map[uuid.UUID]domain.Product
	variants map[uuid.UUID]domain.Variant
}

func newCatalogStub() *catalogStub {
	return &catalogStub{
		products: make(map[uuid.UUID]domain.Product),
		variants: make(map[uuid.UUID]domain.Variant),
	}
}

func (c *catalogStub) GetProduct(_ context.Context, id uuid.UUID) (domain.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (c *catalogStub) GetVariant(_ context.Context, productID, variantID uuid.UUID) (domain.Variant, error) {
	v, ok := c.variants[variantID]
	if !ok || v.ProductID != productID {
		return domain.Variant{}, domain.ErrVariantNotFound
	}
	return v, nil
}

func (c *catalogStub) ListProducts(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	return out, nil
}

func (c *catalogStub) CreateProduct(_ context.Context, p domain.Product) (domain.Product, error) {
	c.products[p.ID] = p
	return p, nil
}

func (c *catalogStub) UpdateProduct(_ context.Context, p domain.Product) (domain.Product, error) {
	c.products[p.ID] = p
	return p, nil
}

// notifierMock records confirmations; err, when set, is returned from every
// call.
type notifierMock struct {
	mu       sync.Mutex
	received []domain.OrderConfirmation
	err      error
}

func (n *notifierMock) OrderConfirmation(_ context.Context, c domain.OrderConfirmation) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.received = append(n.received, c)
	return n.err
}

func (n *notifierMock) confirmations() []domain.OrderConfirmation {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]domain.OrderConfirmation(nil), n.received...)
}

// analyticsRepoStub returns canned aggregates.
type analyticsRepoStub struct {
	totals SalesTotalsStub
	sales  []port.ProductSales
}

type SalesTotalsStub struct {
	Orders       int64
	RevenueCents int64
}

func (a *analyticsRepoStub) SalesTotals(_ context.Context, _ time.Time) (port.SalesTotals, error) {
	return port.SalesTotals{Orders: a.totals.Orders, RevenueCents: a.totals.RevenueCents}, nil
}

func (a *analyticsRepoStub) TrendingProducts(_ context.Context, _ time.Time, limit int32) ([]port.ProductSales, error) {
	if int32(len(a.sales)) > limit {
		return a.sales[:limit], nil
	}
	return a.sales, nil
}

func (a *analyticsRepoStub) LowStockBestsellers(_ context.Context, _ time.Time, stockBelow, limit int32) ([]port.ProductSales, error) {
	var out []port.ProductSales
	for _, s := range a.sales {
		if s.Stock < stockBelow {
			out = append(out, s)
		}
		if int32(len(out)) == limit {
			break
		}
	}
	return out, nil
}
