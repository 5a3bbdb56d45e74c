package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/novamart/storefront/internal/service"
)

type CartHandler struct {
	carts *service.CartService
}

func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type AddItemRequest struct {
	ProductID uuid.UUID  `json:"product_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Qty       int32      `json:"qty"`
}

type UpdateQuantityRequest struct {
	Qty int32 `json:"qty"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerFromContext(r.Context())

	cart, err := h.carts.GetCart(r.Context(), ownerID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartDTO(cart))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerFromContext(r.Context())

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == uuid.Nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Qty <= 0 || req.Qty > 99 {
		respondError(w, http.StatusBadRequest, "invalid_qty", "qty must be between 1 and 99")
		return
	}

	item, err := h.carts.AddItem(r.Context(), ownerID, req.ProductID, req.VariantID, req.Qty)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toCartItemDTO(item))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerFromContext(r.Context())

	itemID, err := uuid.Parse(chi.URLParam(r, "item_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be a UUID")
		return
	}

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Qty > 99 {
		respondError(w, http.StatusBadRequest, "invalid_qty", "qty must be at most 99")
		return
	}

	if err := h.carts.UpdateQuantity(r.Context(), ownerID, itemID, req.Qty); err != nil {
		handleDomainError(w, err)
		return
	}

	h.respondCart(w, r, ownerID)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerFromContext(r.Context())

	itemID, err := uuid.Parse(chi.URLParam(r, "item_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be a UUID")
		return
	}

	if err := h.carts.RemoveItem(r.Context(), ownerID, itemID); err != nil {
		handleDomainError(w, err)
		return
	}

	h.respondCart(w, r, ownerID)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerFromContext(r.Context())

	if err := h.carts.Clear(r.Context(), ownerID); err != nil {
		handleDomainError(w, err)
		return
	}

	h.respondCart(w, r, ownerID)
}

// respondCart returns the cart's current state after a mutation.
func (h *CartHandler) respondCart(w http.ResponseWriter, r *http.Request, ownerID string) {
	cart, err := h.carts.GetCart(r.Context(), ownerID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartDTO(cart))
}
