package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/swissmarley/cashier/internal/cart"
	"github.com/swissmarley/cashier/internal/receipt"
	"github.com/swissmarley/cashier/internal/repository"
)

// NewRouter wires the presentation routes over the core components.
// All semantics live in the core; handlers only translate.
func NewRouter(catalog *repository.Catalog, ledger *repository.Ledger, sessionCart *cart.Cart, receipts *receipt.Generator, requestTimeout time.Duration) chi.Router {
	articles := NewArticleHandler(catalog)
	cartHandler := NewCartHandler(sessionCart, catalog)
	checkoutHandler := NewCheckoutHandler(sessionCart, ledger, receipts)
	reports := NewReportsHandler(ledger)
	exports := NewExportHandler(catalog, ledger)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/articles", func(r chi.Router) {
		r.Get("/", articles.List)
		r.Post("/", articles.Create)
		r.Get("/{id}", articles.Get)
		r.Put("/{id}", articles.Update)
		r.Delete("/{id}", articles.Delete)
		r.Post("/{id}/stock", articles.AdjustStock)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", cartHandler.Get)
		r.Post("/items", cartHandler.AddLine)
		r.Post("/discount", cartHandler.SetDiscount)
		r.Delete("/", cartHandler.Clear)
	})

	r.Post("/checkout", checkoutHandler.Checkout)

	r.Route("/reports", func(r chi.Router) {
		r.Get("/history", reports.History)
		r.Get("/sales/{id}", reports.Sale)
		r.Get("/sales-over-time", reports.SalesOverTime)
		r.Get("/top-items", reports.TopItems)
		r.Get("/discounts", reports.DiscountDistribution)
	})

	r.Route("/export", func(r chi.Router) {
		r.Get("/articles.csv", exports.ArticlesCSV)
		r.Get("/history.csv", exports.HistoryCSV)
	})

	return r
}
