package http

import (
	"encoding/json"
	"net/http"

	"github.com/swissmarley/cashier/internal/cart"
	"github.com/swissmarley/cashier/internal/checkout"
	"github.com/swissmarley/cashier/internal/domain"
)

type CheckoutHandler struct {
	cart     *cart.Cart
	recorder checkout.SaleRecorder
	receipts checkout.ReceiptWriter
}

func NewCheckoutHandler(c *cart.Cart, recorder checkout.SaleRecorder, receipts checkout.ReceiptWriter) *CheckoutHandler {
	return &CheckoutHandler{cart: c, recorder: recorder, receipts: receipts}
}

type CheckoutRequestDTO struct {
	PaymentType string `json:"payment_type"`
}

type SaleResponse struct {
	SaleID          int64   `json:"sale_id"`
	Date            string  `json:"date"`
	Subtotal        float64 `json:"subtotal"`
	DiscountPercent float64 `json:"discount_percent"`
	FinalTotal      float64 `json:"final_total"`
	PaymentType     string  `json:"payment_type"`
}

type CheckoutResponse struct {
	TransactionID string       `json:"transaction_id"`
	Sale          SaleResponse `json:"sale"`
	ReceiptPath   string       `json:"receipt_path"`
}

func toSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		SaleID:          s.ID,
		Date:            s.Date.Format(domain.DateLayout),
		Subtotal:        s.Subtotal.InexactFloat64(),
		DiscountPercent: s.DiscountPercent,
		FinalTotal:      s.FinalTotal.InexactFloat64(),
		PaymentType:     string(s.Payment),
	}
}

// Checkout runs one full checkout cycle against the session cart. A
// fresh transaction is created per request; it is never reused.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	payment := domain.PaymentMethod(req.PaymentType)
	if !payment.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_payment_type", "payment_type must be Cash or Card")
		return
	}

	tx := checkout.NewTransaction(h.cart, h.recorder, h.receipts)
	sale, receiptPath, err := tx.Complete(r.Context(), payment)
	if err != nil {
		handleCoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponse{
		TransactionID: tx.ID(),
		Sale:          toSaleResponse(sale),
		ReceiptPath:   receiptPath,
	})
}
