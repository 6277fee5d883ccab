package http

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/swissmarley/cashier/internal/cart"
	"github.com/swissmarley/cashier/internal/repository"
)

// CartHandler exposes the single register session's cart. The desk is
// single-user, so there is exactly one cart per process.
type CartHandler struct {
	cart    *cart.Cart
	catalog *repository.Catalog
}

func NewCartHandler(c *cart.Cart, catalog *repository.Catalog) *CartHandler {
	return &CartHandler{cart: c, catalog: catalog}
}

type AddLineRequestDTO struct {
	ArticleID int64 `json:"article_id"`
	Quantity  int64 `json:"quantity"`
}

type CartLineResponse struct {
	ArticleID int64   `json:"article_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int64   `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

type CartResponse struct {
	Lines           []CartLineResponse `json:"lines"`
	DiscountPercent float64            `json:"discount_percent"`
	Subtotal        float64            `json:"subtotal"`
	DiscountAmount  float64            `json:"discount_amount"`
	FinalTotal      float64            `json:"final_total"`
}

func (h *CartHandler) cartResponse() CartResponse {
	lines := h.cart.Lines()
	totals := h.cart.Totals()

	out := make([]CartLineResponse, len(lines))
	for i, l := range lines {
		out[i] = CartLineResponse{
			ArticleID: l.ArticleID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice.InexactFloat64(),
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal().InexactFloat64(),
		}
	}
	return CartResponse{
		Lines:           out,
		DiscountPercent: h.cart.Discount(),
		Subtotal:        totals.Subtotal.InexactFloat64(),
		DiscountAmount:  totals.DiscountAmount.InexactFloat64(),
		FinalTotal:      totals.FinalTotal.InexactFloat64(),
	}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	var req AddLineRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ArticleID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_article_id", "article_id must be positive")
		return
	}

	article, err := h.catalog.Find(r.Context(), req.ArticleID)
	if err != nil {
		handleCoreError(w, err)
		return
	}

	if err := h.cart.AddLine(r.Context(), article, req.Quantity); err != nil {
		handleCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.cartResponse())
}

type SetDiscountRequestDTO struct {
	Percent string `json:"percent"`
}

// SetDiscount accepts the raw input string; anything non-numeric or
// outside [0,100] is coerced to 0, never rejected.
func (h *CartHandler) SetDiscount(w http.ResponseWriter, r *http.Request) {
	var req SetDiscountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	percent, err := strconv.ParseFloat(req.Percent, 64)
	if err != nil {
		percent = math.NaN()
	}
	h.cart.SetDiscount(percent)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	respondJSON(w, http.StatusOK, h.cartResponse())
}
