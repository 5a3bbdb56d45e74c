package repository_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/currency"

	"github.com/novamart/storefront/internal/domain"
	"github.com/novamart/storefront/internal/port"
	"github.com/novamart/storefront/internal/repository"
)

type analyticsRepositorySuite struct {
	suite.Suite

	repo    port.AnalyticsRepository
	orders  port.OrderRepository
	carts   port.CartRepository
	catalog port.Catalog
	pool    *pgxpool.Pool
}

func TestAnalyticsRepositorySuite(t *testing.T) {
	suite.Run(t, new(analyticsRepositorySuite))
}

func (suite *analyticsRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.NoError(err)

	suite.repo, err = repository.NewAnalytics(suite.pool)
	suite.NoError(err)

	suite.orders, err = repository.NewOrder(suite.pool)
	suite.NoError(err)

	suite.carts, err = repository.NewCart(suite.pool)
	suite.NoError(err)

	suite.catalog, err = repository.NewCatalog(suite.pool)
	suite.NoError(err)
}

func (suite *analyticsRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *analyticsRepositorySuite) TestSalesTotals() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	since := time.Now().Add(-time.Hour)

	totals, err := suite.repo.SalesTotals(ctx, since)
	require.NoError(t, err)
	require.Zero(t, totals.Orders)
	require.Zero(t, totals.RevenueCents)

	suite.placeOrder(2, 1000)
	suite.placeOrder(1, 2500)

	totals, err = suite.repo.SalesTotals(ctx, since)
	require.NoError(t, err)
	require.EqualValues(t, 2, totals.Orders)
	require.EqualValues(t, 4500, totals.RevenueCents)

	// Cancelled orders do not count.
	order := suite.placeOrder(1, 9900)
	_, err = suite.pool.Exec(ctx,
		"UPDATE orders SET status = 'cancelled' WHERE id = $1", order.ID)
	require.NoError(t, err)

	totals, err = suite.repo.SalesTotals(ctx, since)
	require.NoError(t, err)
	require.EqualValues(t, 2, totals.Orders)
	require.EqualValues(t, 4500, totals.RevenueCents)

	// Orders before the window do not count.
	totals, err = suite.repo.SalesTotals(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Zero(t, totals.Orders)
}

func (suite *analyticsRepositorySuite) TestTrendingProducts() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	since := time.Now().Add(-time.Hour)

	slow := suite.createProduct(1000, 50)
	fast := suite.createProduct(2000, 50)

	suite.placeOrderFor(slow, 1)
	suite.placeOrderFor(fast, 5)
	suite.placeOrderFor(fast, 2)

	sales, err := suite.repo.TrendingProducts(ctx, since, 10)
	require.NoError(t, err)
	require.Len(t, sales, 2)

	require.Equal(t, fast.ID, sales[0].ProductID, "most units first")
	require.EqualValues(t, 7, sales[0].Units)
	require.EqualValues(t, 14000, sales[0].RevenueCents)
	require.EqualValues(t, 1, sales[1].Units)

	limited, err := suite.repo.TrendingProducts(ctx, since, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func (suite *analyticsRepositorySuite) TestLowStockBestsellers() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	since := time.Now().Add(-time.Hour)

	stocked := suite.createProduct(1000, 80)
	scarce := suite.createProduct(2000, 3)

	suite.placeOrderFor(stocked, 5)
	suite.placeOrderFor(scarce, 2)

	sales, err := suite.repo.LowStockBestsellers(ctx, since, 10, 5)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	require.Equal(t, scarce.ID, sales[0].ProductID)
	require.EqualValues(t, 3, sales[0].Stock)
}

func (suite *analyticsRepositorySuite) createProduct(cents int64, stock int32) domain.Product {
	product, err := suite.catalog.CreateProduct(suite.T().Context(), domain.Product{
		Title:  gofakeit.ProductName(),
		Slug:   gofakeit.UUID(),
		Active: true,
		Price:  domain.NewMoney(cents, currency.USD),
		Stock:  stock,
	})
	suite.NoError(err)

	return product
}

func (suite *analyticsRepositorySuite) placeOrder(qty int32, cents int64) domain.Order {
	return suite.placeOrderFor(suite.createProduct(cents, 100), qty)
}

func (suite *analyticsRepositorySuite) placeOrderFor(product domain.Product, qty int32) domain.Order {
	ctx := suite.T().Context()

	cart, err := suite.carts.GetOrCreateActiveCart(ctx, gofakeit.UUID())
	suite.NoError(err)

	_, err = suite.carts.UpsertItem(ctx, domain.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Qty:       qty,
		Price:     product.Price,
	})
	suite.NoError(err)

	cart, err = suite.carts.FindActiveCart(ctx, cart.OwnerID)
	suite.NoError(err)

	addr := domain.Address{Line1: gofakeit.Street(), City: gofakeit.City(), Country: "US"}
	order, err := domain.NewOrderFromCart(cart, domain.BuyerInfo{
		Email:           gofakeit.Email(),
		ShippingAddress: addr,
		BillingAddress:  addr,
	}, domain.PaymentMethodCOD)
	suite.NoError(err)

	created, err := suite.orders.CreateFromCart(ctx, order)
	suite.NoError(err)

	return created
}

func (suite *analyticsRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(),
		"TRUNCATE TABLE orders, carts, products CASCADE")
	suite.NoError(err)
}
