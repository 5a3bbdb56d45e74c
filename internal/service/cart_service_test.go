package service

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"

	"github.com/novamart/storefront/internal/domain"
)

func newCartFixture(t *testing.T) (*CartService, *fakeCartRepo, *catalogStub) {
	t.Helper()

	carts := newFakeCartRepo()
	catalog := newCatalogStub()

	svc, err := NewCart(carts, catalog)
	require.NoError(t, err)

	return svc, carts, catalog
}

func seedProduct(catalog *catalogStub, cents int64) domain.Product {
	p := domain.Product{
		ID:     uuid.New(),
		Title:  gofakeit.ProductName(),
		Slug:   gofakeit.UUID(),
		Active: true,
		Price:  domain.NewMoney(cents, currency.USD),
		Stock:  100,
	}
	catalog.products[p.ID] = p
	return p
}

func TestCartService_AddItem_SnapshotFixedAtFirstAdd(t *testing.T) {
	ctx := context.Background()
	svc, _, catalog := newCartFixture(t)

	product := seedProduct(catalog, 1000)
	ownerID := gofakeit.UUID()

	first, err := svc.AddItem(ctx, ownerID, product.ID, nil, 1)
	require.NoError(t, err)
	require.EqualValues(t, 1000, first.Price.Cents)

	// Catalog price changes after the line exists.
	product.Price = domain.NewMoney(1500, currency.USD)
	catalog.products[product.ID] = product

	second, err := svc.AddItem(ctx, ownerID, product.ID, nil, 2)
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID, "repeat add must hit the same line")
	require.EqualValues(t, 3, second.Qty)
	require.EqualValues(t, 1000, second.Price.Cents, "snapshot must not track the catalog")

	cart, err := svc.GetCart(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
}

func TestCartService_AddItem_VariantDelta(t *testing.T) {
	ctx := context.Background()
	svc, _, catalog := newCartFixture(t)

	product := seedProduct(catalog, 1000)
	variant := domain.Variant{
		ID:              uuid.New(),
		ProductID:       product.ID,
		SKU:             gofakeit.UUID(),
		PriceDeltaCents: 250,
	}
	catalog.variants[variant.ID] = variant

	item, err := svc.AddItem(ctx, gofakeit.UUID(), product.ID, &variant.ID, 1)
	require.NoError(t, err)
	require.EqualValues(t, 1250, item.Price.Cents)
}

func TestCartService_AddItem_VariantOfOtherProduct(t *testing.T) {
	ctx := context.Background()
	svc, _, catalog := newCartFixture(t)

	product := seedProduct(catalog, 1000)
	other := seedProduct(catalog, 2000)
	variant := domain.Variant{ID: uuid.New(), ProductID: other.ID}
	catalog.variants[variant.ID] = variant

	_, err := svc.AddItem(ctx, gofakeit.UUID(), product.ID, &variant.ID, 1)
	require.ErrorIs(t, err, domain.ErrVariantNotFound)
}

func TestCartService_AddItem_ProductMissingOrInactive(t *testing.T) {
	ctx := context.Background()
	svc, _, catalog := newCartFixture(t)

	_, err := svc.AddItem(ctx, gofakeit.UUID(), uuid.New(), nil, 1)
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	inactive := seedProduct(catalog, 1000)
	inactive.Active = false
	catalog.products[inactive.ID] = inactive

	_, err = svc.AddItem(ctx, gofakeit.UUID(), inactive.ID, nil, 1)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCartService_AddItem_InvalidQty(t *testing.T) {
	ctx := context.Background()
	svc, _, catalog := newCartFixture(t)
	product := seedProduct(catalog, 1000)

	_, err := svc.AddItem(ctx, gofakeit.UUID(), product.ID, nil, 0)
	require.Error(t, err)

	_, err = svc.AddItem(ctx, gofakeit.UUID(), product.ID, nil, -3)
	require.Error(t, err)
}

func TestCartService_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	svc, _, catalog := newCartFixture(t)

	product := seedProduct(catalog, 1000)
	ownerID := gofakeit.UUID()

	item, err := svc.AddItem(ctx, ownerID, product.ID, nil, 2)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateQuantity(ctx, ownerID, item.ID, 0))

	cart, err := svc.GetCart(ctx, ownerID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestCartService_UpdateQuantity_Sets(t *testing.T) {
	ctx := context.Background()
	svc, _, catalog := newCartFixture(t)

	product := seedProduct(catalog, 1000)
	ownerID := gofakeit.UUID()

	item, err := svc.AddItem(ctx, ownerID, product.ID, nil, 2)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateQuantity(ctx, ownerID, item.ID, 5))

	cart, err := svc.GetCart(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.EqualValues(t, 5, cart.Items[0].Qty)
}

func TestCartService_UpdateQuantity_NoActiveCart(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCartFixture(t)

	err := svc.UpdateQuantity(ctx, gofakeit.UUID(), uuid.New(), 3)
	require.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestCartService_RemoveItem_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, catalog := newCartFixture(t)

	// No cart at all.
	require.NoError(t, svc.RemoveItem(ctx, gofakeit.UUID(), uuid.New()))

	product := seedProduct(catalog, 1000)
	ownerID := gofakeit.UUID()

	item, err := svc.AddItem(ctx, ownerID, product.ID, nil, 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(ctx, ownerID, item.ID))
	require.NoError(t, svc.RemoveItem(ctx, ownerID, item.ID))
}

func TestCartService_Totals(t *testing.T) {
	ctx := context.Background()
	svc, _, catalog := newCartFixture(t)

	a := seedProduct(catalog, 1000)
	b := seedProduct(catalog, 2500)
	ownerID := gofakeit.UUID()

	_, err := svc.AddItem(ctx, ownerID, a.ID, nil, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, ownerID, b.ID, nil, 1)
	require.NoError(t, err)

	totals, err := svc.Totals(ctx, ownerID)
	require.NoError(t, err)
	require.EqualValues(t, 3, totals.Items)
	require.EqualValues(t, 4500, totals.Price.Cents)
	require.Equal(t, currency.USD, totals.Price.Currency)
}

func TestCartService_Totals_NoActiveCart(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCartFixture(t)

	totals, err := svc.Totals(ctx, gofakeit.UUID())
	require.NoError(t, err)
	require.Zero(t, totals.Items)
	require.Zero(t, totals.Price.Cents)
}

func TestCartService_Clear(t *testing.T) {
	ctx := context.Background()
	svc, _, catalog := newCartFixture(t)

	product := seedProduct(catalog, 1000)
	ownerID := gofakeit.UUID()

	_, err := svc.AddItem(ctx, ownerID, product.ID, nil, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, ownerID))

	cart, err := svc.GetCart(ctx, ownerID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}
