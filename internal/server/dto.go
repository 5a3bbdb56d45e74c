package server

import (
	"time"

	"github.com/google/uuid"

	"github.com/novamart/storefront/internal/domain"
)

// Wire representations. Money goes out as integer cents plus an ISO code
// and a formatted decimal amount.

type MoneyDTO struct {
	Cents    int64  `json:"cents"`
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

func toMoneyDTO(m domain.Money) MoneyDTO {
	return MoneyDTO{
		Cents:    m.Cents,
		Currency: m.Currency.String(),
		Amount:   m.Amount().StringFixed(2),
	}
}

type CartItemDTO struct {
	ID        uuid.UUID  `json:"id"`
	ProductID uuid.UUID  `json:"product_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Qty       int32      `json:"qty"`
	UnitPrice MoneyDTO   `json:"unit_price"`
	LineTotal MoneyDTO   `json:"line_total"`
}

type CartDTO struct {
	ID         uuid.UUID     `json:"id"`
	Status     string        `json:"status"`
	Items      []CartItemDTO `json:"items"`
	TotalItems int32         `json:"total_items"`
	TotalPrice MoneyDTO      `json:"total_price"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func toCartItemDTO(item domain.CartItem) CartItemDTO {
	return CartItemDTO{
		ID:        item.ID,
		ProductID: item.ProductID,
		VariantID: item.VariantID,
		Qty:       item.Qty,
		UnitPrice: toMoneyDTO(item.Price),
		LineTotal: toMoneyDTO(item.Price.MulQty(item.Qty)),
	}
}

func toCartDTO(cart domain.Cart) CartDTO {
	totals := cart.Totals()

	dto := CartDTO{
		ID:         cart.ID,
		Status:     string(cart.Status),
		Items:      make([]CartItemDTO, 0, len(cart.Items)),
		TotalItems: totals.Items,
		TotalPrice: toMoneyDTO(totals.Price),
		UpdatedAt:  cart.UpdatedAt,
	}
	for _, item := range cart.Items {
		dto.Items = append(dto.Items, toCartItemDTO(item))
	}

	return dto
}

type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	Price       MoneyDTO  `json:"price"`
	Stock       int32     `json:"stock"`
}

func toProductDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Active:      p.Active,
		Price:       toMoneyDTO(p.Price),
		Stock:       p.Stock,
	}
}

type OrderItemDTO struct {
	ID        uuid.UUID  `json:"id"`
	ProductID uuid.UUID  `json:"product_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Qty       int32      `json:"qty"`
	UnitPrice MoneyDTO   `json:"unit_price"`
}

type PaymentDTO struct {
	ID       uuid.UUID `json:"id"`
	Provider string    `json:"provider"`
	Method   string    `json:"method"`
	Status   string    `json:"status"`
	Amount   MoneyDTO  `json:"amount"`
}

type OrderDTO struct {
	ID            uuid.UUID      `json:"id"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"payment_status"`
	Total         MoneyDTO       `json:"total"`
	Shipping      domain.Address `json:"shipping_address"`
	Billing       domain.Address `json:"billing_address"`
	Items         []OrderItemDTO `json:"items,omitempty"`
	Payments      []PaymentDTO   `json:"payments,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

func toOrderDTO(o domain.Order) OrderDTO {
	dto := OrderDTO{
		ID:            o.ID,
		Status:        string(o.Status),
		PaymentStatus: o.PaymentStatus,
		Total:         toMoneyDTO(o.Total),
		Shipping:      o.ShippingAddress,
		Billing:       o.BillingAddress,
		CreatedAt:     o.CreatedAt,
	}
	for _, item := range o.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Qty:       item.Qty,
			UnitPrice: toMoneyDTO(item.UnitPrice),
		})
	}
	for _, p := range o.Payments {
		dto.Payments = append(dto.Payments, PaymentDTO{
			ID:       p.ID,
			Provider: p.Provider,
			Method:   string(p.Method),
			Status:   p.Status,
			Amount:   toMoneyDTO(p.Amount),
		})
	}

	return dto
}
