package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/text/currency"

	"github.com/novamart/storefront/internal/domain"
	"github.com/novamart/storefront/internal/port"
)

type CatalogHandler struct {
	catalog port.Catalog
}

func NewCatalogHandler(catalog port.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type UpsertProductRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	PriceCents  int64  `json:"price_cents"`
	Currency    string `json:"currency"`
	Stock       int32  `json:"stock"`
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, toProductDTO(p))
	}

	respondJSON(w, http.StatusOK, dtos)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a UUID")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toProductDTO(product))
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}
	product.ID = uuid.New()

	created, err := h.catalog.CreateProduct(r.Context(), product)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toProductDTO(created))
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a UUID")
		return
	}

	product, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}
	product.ID = productID

	updated, err := h.catalog.UpdateProduct(r.Context(), product)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toProductDTO(updated))
}

func (h *CatalogHandler) decodeProduct(w http.ResponseWriter, r *http.Request) (domain.Product, bool) {
	var req UpsertProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return domain.Product{}, false
	}

	if req.Title == "" || req.Slug == "" {
		respondError(w, http.StatusBadRequest, "invalid_product", "title and slug are required")
		return domain.Product{}, false
	}
	if req.PriceCents < 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price_cents must not be negative")
		return domain.Product{}, false
	}

	unit := currency.USD
	if req.Currency != "" {
		parsed, err := currency.ParseISO(req.Currency)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_currency", "currency must be an ISO 4217 code")
			return domain.Product{}, false
		}
		unit = parsed
	}

	return domain.Product{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Active:      req.Active,
		Price:       domain.Money{Cents: req.PriceCents, Currency: unit},
		Stock:       req.Stock,
	}, true
}
