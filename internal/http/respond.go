package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/swissmarley/cashier/internal/checkout"
	"github.com/swissmarley/cashier/internal/domain"
	"github.com/swissmarley/cashier/internal/repository"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleCoreError maps the core error taxonomy onto HTTP status codes.
// Validation and stock errors are user-facing and recoverable; anything
// unrecognized is a storage fault.
func handleCoreError(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		respondError(w, http.StatusBadRequest, "validation_error", validation.Error())
		return
	}

	var stock *domain.InsufficientStockError
	if errors.As(err, &stock) {
		respondError(w, http.StatusConflict, "insufficient_stock", stock.Error())
		return
	}

	switch {
	case errors.Is(err, repository.ErrArticleNotFound),
		errors.Is(err, repository.ErrSaleNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	default:
		log.Printf("storage error: %v", err)
		respondError(w, http.StatusInternalServerError, "storage_error", "internal storage error")
	}
}
