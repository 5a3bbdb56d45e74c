package domain

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrCartNotActive   = errors.New("cart is not active")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrOrderNotFound   = errors.New("order not found")
)
