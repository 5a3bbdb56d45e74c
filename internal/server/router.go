package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Catalog  *CatalogHandler
	Admin    *AdminHandler
}

func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", h.Catalog.ListProducts)
		r.Get("/products/{id}", h.Catalog.GetProduct)
		r.Post("/products", h.Catalog.CreateProduct)
		r.Put("/products/{id}", h.Catalog.UpdateProduct)

		r.Group(func(r chi.Router) {
			r.Use(OwnerMiddleware)

			r.Get("/cart", h.Cart.GetCart)
			r.Post("/cart/items", h.Cart.AddItem)
			r.Put("/cart/items/{item_id}", h.Cart.UpdateQuantity)
			r.Delete("/cart/items/{item_id}", h.Cart.RemoveItem)
			r.Delete("/cart", h.Cart.ClearCart)

			r.Post("/checkout", h.Checkout.Checkout)
			r.Get("/orders", h.Checkout.ListOrders)
			r.Get("/orders/{id}", h.Checkout.GetOrder)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/analytics/sales", h.Admin.SalesSummary)
			r.Get("/analytics/trending", h.Admin.TrendingProducts)
			r.Post("/copilot", h.Admin.AskCopilot)
		})
	})

	return r
}
