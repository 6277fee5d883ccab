// Package export writes the catalog and the sale history as CSV for
// the presentation layer's download/export surfaces.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/swissmarley/cashier/internal/domain"
	"github.com/swissmarley/cashier/internal/repository"
)

// Articles writes the full article catalog, one row per article.
func Articles(w io.Writer, articles []*domain.Article) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"id", "name", "price", "stock", "photo"}); err != nil {
		return fmt.Errorf("failed to write articles header: %w", err)
	}

	for _, a := range articles {
		record := []string{
			strconv.FormatInt(a.ID, 10),
			a.Name,
			a.Price.StringFixed(2),
			strconv.FormatInt(a.Stock, 10),
			a.PhotoRef,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write article row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// History writes the sale history joined with its line items, one row
// per sale line, newest sale first.
func History(w io.Writer, rows []repository.HistoryDetailRow) error {
	cw := csv.NewWriter(w)

	header := []string{"sale_id", "date", "total", "discount", "final_total", "payment_type", "name", "quantity", "price"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write history header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatInt(r.SaleID, 10),
			r.Date.Format(domain.DateLayout),
			r.Subtotal.StringFixed(2),
			strconv.FormatFloat(r.DiscountPercent, 'f', -1, 64),
			r.FinalTotal.StringFixed(2),
			string(r.Payment),
			r.ArticleName,
			strconv.FormatInt(r.Quantity, 10),
			r.UnitPrice.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write history row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
