package server

import (
	"encoding/json"
	"net/http"
	"net/mail"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/novamart/storefront/internal/domain"
	"github.com/novamart/storefront/internal/service"
)

type CheckoutHandler struct {
	checkout *service.CheckoutService
}

func NewCheckoutHandler(checkout *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type CheckoutRequest struct {
	Email           string         `json:"email"`
	PaymentMethod   string         `json:"payment_method"`
	ShippingAddress domain.Address `json:"shipping_address"`
	BillingAddress  domain.Address `json:"billing_address"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerFromContext(r.Context())

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_email", "a valid email is required")
		return
	}

	method := domain.PaymentMethod(req.PaymentMethod)
	if method != domain.PaymentMethodCOD && method != domain.PaymentMethodBank {
		respondError(w, http.StatusBadRequest, "invalid_payment_method", "payment_method must be cod or bank")
		return
	}

	if req.ShippingAddress.Line1 == "" || req.ShippingAddress.City == "" {
		respondError(w, http.StatusBadRequest, "invalid_address", "shipping address is incomplete")
		return
	}

	// An omitted billing address falls back to the shipping address.
	billing := req.BillingAddress
	if billing.Line1 == "" {
		billing = req.ShippingAddress
	}

	order, err := h.checkout.Finalize(r.Context(), ownerID, domain.BuyerInfo{
		Email:           req.Email,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  billing,
	}, method)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toOrderDTO(order))
}

func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a UUID")
		return
	}

	order, err := h.checkout.GetOrder(r.Context(), orderID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	// Owners only see their own orders.
	if order.OwnerID != ownerFromContext(r.Context()) {
		handleDomainError(w, domain.ErrOrderNotFound)
		return
	}

	respondJSON(w, http.StatusOK, toOrderDTO(order))
}

func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerFromContext(r.Context())

	orders, err := h.checkout.ListOrders(r.Context(), ownerID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	dtos := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, toOrderDTO(o))
	}

	respondJSON(w, http.StatusOK, dtos)
}
