package http

import (
	"net/http"
	"strconv"

	"github.com/swissmarley/cashier/internal/domain"
	"github.com/swissmarley/cashier/internal/repository"
)

type ReportsHandler struct {
	ledger *repository.Ledger
}

func NewReportsHandler(ledger *repository.Ledger) *ReportsHandler {
	return &ReportsHandler{ledger: ledger}
}

type HistoryResponse struct {
	Sales      []SaleResponse `json:"sales"`
	GrandTotal float64        `json:"grand_total"`
}

func (h *ReportsHandler) History(w http.ResponseWriter, r *http.Request) {
	sales, grandTotal, err := h.ledger.History(r.Context())
	if err != nil {
		handleCoreError(w, err)
		return
	}

	out := make([]SaleResponse, len(sales))
	for i, s := range sales {
		out[i] = toSaleResponse(s)
	}
	respondJSON(w, http.StatusOK, HistoryResponse{
		Sales:      out,
		GrandTotal: grandTotal.InexactFloat64(),
	})
}

func (h *ReportsHandler) Sale(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	sale, err := h.ledger.Sale(r.Context(), id)
	if err != nil {
		handleCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSaleResponse(sale))
}

type SalePointResponse struct {
	Date       string  `json:"date"`
	FinalTotal float64 `json:"final_total"`
}

type SalesOverTimeResponse struct {
	Points []SalePointResponse `json:"points"`
}

func (h *ReportsHandler) SalesOverTime(w http.ResponseWriter, r *http.Request) {
	points, err := h.ledger.SalesOverTime(r.Context())
	if err != nil {
		handleCoreError(w, err)
		return
	}

	out := make([]SalePointResponse, len(points))
	for i, p := range points {
		out[i] = SalePointResponse{
			Date:       p.Date.Format(domain.DateLayout),
			FinalTotal: p.FinalTotal.InexactFloat64(),
		}
	}
	respondJSON(w, http.StatusOK, SalesOverTimeResponse{Points: out})
}

type ItemSalesResponse struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

type TopItemsResponse struct {
	Items []ItemSalesResponse `json:"items"`
}

func (h *ReportsHandler) TopItems(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := h.ledger.TopSellingItems(r.Context(), limit)
	if err != nil {
		handleCoreError(w, err)
		return
	}

	out := make([]ItemSalesResponse, len(items))
	for i, item := range items {
		out[i] = ItemSalesResponse{Name: item.Name, Quantity: item.Quantity}
	}
	respondJSON(w, http.StatusOK, TopItemsResponse{Items: out})
}

type HistogramBinResponse struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

type DiscountDistributionResponse struct {
	Discounts []float64              `json:"discounts"`
	Bins      []HistogramBinResponse `json:"bins"`
}

func (h *ReportsHandler) DiscountDistribution(w http.ResponseWriter, r *http.Request) {
	bins, _ := strconv.Atoi(r.URL.Query().Get("bins"))

	discounts, err := h.ledger.DiscountDistribution(r.Context())
	if err != nil {
		handleCoreError(w, err)
		return
	}

	histogram := repository.Histogram(discounts, bins)
	out := make([]HistogramBinResponse, len(histogram))
	for i, b := range histogram {
		out[i] = HistogramBinResponse{Low: b.Low, High: b.High, Count: b.Count}
	}
	respondJSON(w, http.StatusOK, DiscountDistributionResponse{
		Discounts: discounts,
		Bins:      out,
	})
}
