// Package receipt renders sales into self-contained HTML documents and
// saves them under a receipts directory for printing or export.
package receipt

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/swissmarley/cashier/internal/domain"
)

// CompanyInfo is the header block printed on every receipt.
type CompanyInfo struct {
	Name    string
	Address []string
	Phone   string
	Email   string
}

// Generator builds receipt documents. LogoPath is optional; when the
// file exists its contents are embedded inline as base64 so the
// document stays self-contained.
type Generator struct {
	Company  CompanyInfo
	LogoPath string
	Dir      string
}

func NewGenerator(dir string) *Generator {
	return &Generator{
		Company: CompanyInfo{
			Name:    "My Retail Company",
			Address: []string{"1234 Market Street", "City, State ZIP"},
			Phone:   "(123) 456-7890",
			Email:   "info@myretailcompany.com",
		},
		LogoPath: filepath.Join("images", "logo.png"),
		Dir:      dir,
	}
}

// Render produces the receipt document for a recorded sale. The lines
// carry the cart's name and price snapshots, not current catalog
// values.
func (g *Generator) Render(sale *domain.Sale, lines []domain.CartLine) string {
	var b strings.Builder

	b.WriteString("<html>\n<head>\n<style>\n")
	b.WriteString("body { font-family: Courier, monospace; width: 400px; }\n")
	b.WriteString(".header { text-align: center; }\n")
	b.WriteString(".header img { max-width: 150px; height: auto; }\n")
	b.WriteString(".company-details { text-align: center; margin-bottom: 20px; }\n")
	b.WriteString(".items { width: 100%; border-collapse: collapse; }\n")
	b.WriteString(".items th, .items td { border: 1px solid #000; padding: 5px; text-align: left; }\n")
	b.WriteString(".totals { margin-top: 20px; width: 100%; }\n")
	b.WriteString(".totals td { padding: 5px; }\n")
	b.WriteString(".footer { text-align: center; margin-top: 20px; }\n")
	b.WriteString("</style>\n</head>\n<body>\n")

	b.WriteString("<div class=\"header\">")
	if logo := encodeLogo(g.LogoPath); logo != "" {
		fmt.Fprintf(&b, "<img src='data:image/png;base64,%s' />", logo)
	}
	b.WriteString("</div>\n")

	b.WriteString("<div class=\"company-details\">\n")
	fmt.Fprintf(&b, "<h2>%s</h2>\n<p>%s<br>\nPhone: %s<br>\nEmail: %s</p>\n",
		g.Company.Name, strings.Join(g.Company.Address, "<br>\n"), g.Company.Phone, g.Company.Email)
	b.WriteString("</div>\n<hr>\n")

	fmt.Fprintf(&b, "<p><strong>Sale ID:</strong> %d<br>\n", sale.ID)
	fmt.Fprintf(&b, "<strong>Date:</strong> %s<br>\n", sale.Date.Format(domain.DateLayout))
	fmt.Fprintf(&b, "<strong>Payment Type:</strong> %s</p>\n", sale.Payment)

	b.WriteString("<table class=\"items\">\n")
	b.WriteString("<tr><th>Item</th><th>Qty</th><th>Price ($)</th><th>Total ($)</th></tr>\n")
	for _, line := range lines {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>\n",
			line.Name, line.Quantity, line.UnitPrice.StringFixed(2), line.LineTotal().StringFixed(2))
	}
	b.WriteString("</table>\n")

	discountAmount := sale.Subtotal.Sub(sale.FinalTotal)
	b.WriteString("<table class=\"totals\">\n")
	fmt.Fprintf(&b, "<tr><td><strong>Total:</strong></td><td>$%s</td></tr>\n", sale.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "<tr><td><strong>Discount (%v%%):</strong></td><td>-$%s</td></tr>\n",
		sale.DiscountPercent, discountAmount.StringFixed(2))
	fmt.Fprintf(&b, "<tr><td><strong>Final Total:</strong></td><td>$%s</td></tr>\n", sale.FinalTotal.StringFixed(2))
	b.WriteString("</table>\n")

	b.WriteString("<div class=\"footer\">\n<p>Thank you for shopping with us!</p>\n<p>Visit again.</p>\n</div>\n")
	b.WriteString("</body>\n</html>\n")

	return b.String()
}

// Save writes content to Dir/receipt_<YYYYMMDD_HHMMSS>.html, creating
// the directory if needed, and returns the file path.
func (g *Generator) Save(content string, at time.Time) (string, error) {
	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create receipts directory: %w", err)
	}

	path := filepath.Join(g.Dir, fmt.Sprintf("receipt_%s.html", at.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to save receipt: %w", err)
	}
	return path, nil
}

// encodeLogo returns the base64 encoding of the image at path, or ""
// when the file is absent. A missing logo is not an error.
func encodeLogo(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}
