package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/novamart/storefront/internal/service"
)

type AdminHandler struct {
	analytics *service.AnalyticsService
	copilot   *service.CopilotService
}

func NewAdminHandler(analytics *service.AnalyticsService, copilot *service.CopilotService) *AdminHandler {
	return &AdminHandler{analytics: analytics, copilot: copilot}
}

type PeriodSalesDTO struct {
	Orders  int64  `json:"orders"`
	Revenue string `json:"revenue"`
}

type SalesSummaryDTO struct {
	Today         PeriodSalesDTO `json:"today"`
	Week          PeriodSalesDTO `json:"week"`
	Month         PeriodSalesDTO `json:"month"`
	AvgOrderValue string         `json:"avg_order_value"`
}

type ProductTrendDTO struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Units     int64  `json:"units"`
	Revenue   string `json:"revenue"`
	Stock     int32  `json:"stock"`
}

type CopilotRequest struct {
	Question string `json:"question"`
}

func (h *AdminHandler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analytics.SalesSummary(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SalesSummaryDTO{
		Today:         PeriodSalesDTO{Orders: summary.Today.Orders, Revenue: summary.Today.Revenue.StringFixed(2)},
		Week:          PeriodSalesDTO{Orders: summary.Week.Orders, Revenue: summary.Week.Revenue.StringFixed(2)},
		Month:         PeriodSalesDTO{Orders: summary.Month.Orders, Revenue: summary.Month.Revenue.StringFixed(2)},
		AvgOrderValue: summary.AvgOrderValue.StringFixed(2),
	})
}

func (h *AdminHandler) TrendingProducts(w http.ResponseWriter, r *http.Request) {
	limit := int32(10)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n <= 0 || n > 100 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 100")
			return
		}
		limit = int32(n)
	}

	trends, err := h.analytics.TrendingProducts(r.Context(), limit)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	dtos := make([]ProductTrendDTO, 0, len(trends))
	for _, t := range trends {
		dtos = append(dtos, ProductTrendDTO{
			ProductID: t.ProductID,
			Title:     t.Title,
			Units:     t.Units,
			Revenue:   t.Revenue.StringFixed(2),
			Stock:     t.Stock,
		})
	}

	respondJSON(w, http.StatusOK, dtos)
}

func (h *AdminHandler) AskCopilot(w http.ResponseWriter, r *http.Request) {
	var req CopilotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Question == "" {
		respondError(w, http.StatusBadRequest, "invalid_question", "question is required")
		return
	}

	answer, err := h.copilot.Ask(r.Context(), req.Question)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, answer)
}
