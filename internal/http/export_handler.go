package http

import (
	"net/http"

	"github.com/swissmarley/cashier/internal/export"
	"github.com/swissmarley/cashier/internal/repository"
)

type ExportHandler struct {
	catalog *repository.Catalog
	ledger  *repository.Ledger
}

func NewExportHandler(catalog *repository.Catalog, ledger *repository.Ledger) *ExportHandler {
	return &ExportHandler{catalog: catalog, ledger: ledger}
}

func (h *ExportHandler) ArticlesCSV(w http.ResponseWriter, r *http.Request) {
	articles, err := h.catalog.Search(r.Context(), "")
	if err != nil {
		handleCoreError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="articles.csv"`)
	if err := export.Articles(w, articles); err != nil {
		handleCoreError(w, err)
	}
}

func (h *ExportHandler) HistoryCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := h.ledger.HistoryDetail(r.Context())
	if err != nil {
		handleCoreError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="history.csv"`)
	if err := export.History(w, rows); err != nil {
		handleCoreError(w, err)
	}
}
