package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodCOD  PaymentMethod = "cod"
	PaymentMethodBank PaymentMethod = "bank"
)

// PaymentProviderManual is the only provider in use; gateway integration is
// out of scope.
const PaymentProviderManual = "manual"

const (
	PaymentStatusPending    = "pending"
	PaymentStatusAuthorized = "authorized"
)

// PaymentStatusFor maps a payment method to the initial payment status:
// cash on delivery stays pending, anything else counts as authorized.
func PaymentStatusFor(method PaymentMethod) string {
	if method == PaymentMethodCOD {
		return PaymentStatusPending
	}
	return PaymentStatusAuthorized
}

// Address is a denormalized snapshot stored on the order; it stays stable
// even if the buyer's address book changes later.
type Address struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type BuyerInfo struct {
	Email           string
	ShippingAddress Address
	BillingAddress  Address
}

type Order struct {
	ID            uuid.UUID
	CartID        uuid.UUID
	OwnerID       string
	Total         Money
	Status        OrderStatus
	PaymentStatus string

	ShippingAddress Address
	BillingAddress  Address

	Items    []OrderItem
	Payments []Payment

	CreatedAt time.Time
	PaidAt    *time.Time
}

// OrderItem is an immutable copy of a cart line taken at finalize time.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Qty       int32
	UnitPrice Money

	CreatedAt time.Time
}

// Payment is one attempt against an order. The order's payment_status is
// derived from, but distinct from, individual rows.
type Payment struct {
	ID       uuid.UUID
	OrderID  uuid.UUID
	Provider string
	Amount   Money
	Status   string
	Method   PaymentMethod

	CreatedAt time.Time
}

// NewOrderFromCart builds the order a finalize call will persist. The cart
// must be active and non-empty; the total is the sum of the line snapshots,
// never re-fetched from the catalog.
func NewOrderFromCart(cart Cart, buyer BuyerInfo, method PaymentMethod) (Order, error) {
	if cart.Status != CartStatusActive {
		return Order{}, ErrCartNotActive
	}
	if len(cart.Items) == 0 {
		return Order{}, ErrEmptyCart
	}

	totals := cart.Totals()
	orderID := uuid.New()

	order := Order{
		ID:              orderID,
		CartID:          cart.ID,
		OwnerID:         cart.OwnerID,
		Total:           totals.Price,
		Status:          OrderStatusPending,
		PaymentStatus:   PaymentStatusFor(method),
		ShippingAddress: buyer.ShippingAddress,
		BillingAddress:  buyer.BillingAddress,
	}

	for _, item := range cart.Items {
		order.Items = append(order.Items, OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Qty:       item.Qty,
			UnitPrice: item.Price,
		})
	}

	order.Payments = []Payment{{
		ID:       uuid.New(),
		OrderID:  orderID,
		Provider: PaymentProviderManual,
		Amount:   totals.Price,
		Status:   order.PaymentStatus,
		Method:   method,
	}}

	return order, nil
}

// OrderConfirmation is the payload handed to the notifier after a
// successful finalize.
type OrderConfirmation struct {
	OrderID       uuid.UUID
	Email         string
	PaymentMethod PaymentMethod
}
