package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/swissmarley/cashier/internal/domain"
	"github.com/swissmarley/cashier/internal/repository"
)

type ArticleHandler struct {
	catalog *repository.Catalog
}

func NewArticleHandler(catalog *repository.Catalog) *ArticleHandler {
	return &ArticleHandler{catalog: catalog}
}

type ArticleResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int64   `json:"stock"`
	PhotoRef string  `json:"photo_ref,omitempty"`
}

type ArticlesResponse struct {
	Articles []ArticleResponse `json:"articles"`
}

type ArticleRequestDTO struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int64   `json:"stock"`
	PhotoRef string  `json:"photo_ref"`
}

func toArticleResponse(a *domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:       a.ID,
		Name:     a.Name,
		Price:    a.Price.InexactFloat64(),
		Stock:    a.Stock,
		PhotoRef: a.PhotoRef,
	}
}

// List doubles as search: GET /articles?search=app
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.catalog.Search(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		handleCoreError(w, err)
		return
	}

	out := make([]ArticleResponse, len(articles))
	for i, a := range articles {
		out[i] = toArticleResponse(a)
	}
	respondJSON(w, http.StatusOK, &ArticlesResponse{Articles: out})
}

func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	article, err := h.catalog.Find(r.Context(), id)
	if err != nil {
		handleCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toArticleResponse(article))
}

func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ArticleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	article, err := h.catalog.Create(r.Context(), req.Name,
		decimal.NewFromFloat(req.Price), req.Stock, req.PhotoRef)
	if err != nil {
		handleCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toArticleResponse(article))
}

func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req ArticleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	article, err := h.catalog.Update(r.Context(), id, req.Name,
		decimal.NewFromFloat(req.Price), req.PhotoRef)
	if err != nil {
		handleCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toArticleResponse(article))
}

func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		handleCoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type AdjustStockRequestDTO struct {
	Delta int64 `json:"delta"`
}

type StockResponse struct {
	ID    int64 `json:"id"`
	Stock int64 `json:"stock"`
}

func (h *ArticleHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req AdjustStockRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	newStock, err := h.catalog.AdjustStock(r.Context(), id, req.Delta)
	if err != nil {
		handleCoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, StockResponse{ID: id, Stock: newStock})
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return 0, false
	}
	return id, true
}
