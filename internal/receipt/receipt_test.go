package receipt

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swissmarley/cashier/internal/domain"
)

func sampleSale() *domain.Sale {
	return &domain.Sale{
		ID:              7,
		Date:            time.Date(2026, 8, 30, 14, 15, 9, 0, time.UTC),
		Subtotal:        decimal.NewFromFloat(2.50),
		DiscountPercent: 10,
		FinalTotal:      decimal.NewFromFloat(2.25),
		Payment:         domain.PaymentCash,
	}
}

func sampleLines() []domain.CartLine {
	return []domain.CartLine{
		{ArticleID: 1, Name: "Apple", UnitPrice: decimal.NewFromFloat(0.50), Quantity: 5},
	}
}

func TestRender_ContainsSaleDetails(t *testing.T) {
	g := NewGenerator(t.TempDir())
	g.LogoPath = "" // no logo in tests

	doc := g.Render(sampleSale(), sampleLines())

	assert.Contains(t, doc, "My Retail Company")
	assert.Contains(t, doc, "<strong>Sale ID:</strong> 7")
	assert.Contains(t, doc, "2026-08-30 14:15:09")
	assert.Contains(t, doc, "Payment Type:</strong> Cash")
	assert.Contains(t, doc, "<td>Apple</td><td>5</td><td>0.50</td><td>2.50</td>")
	assert.Contains(t, doc, "Total:</strong></td><td>$2.50")
	assert.Contains(t, doc, "Discount (10%):</strong></td><td>-$0.25")
	assert.Contains(t, doc, "Final Total:</strong></td><td>$2.25")
	assert.Contains(t, doc, "Thank you for shopping with us!")
	// No logo file, no img tag.
	assert.NotContains(t, doc, "<img")
}

func TestRender_EmbedsLogoWhenPresent(t *testing.T) {
	dir := t.TempDir()
	logo := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(logo, []byte("not really a png"), 0o644))

	g := NewGenerator(dir)
	g.LogoPath = logo

	doc := g.Render(sampleSale(), sampleLines())
	assert.Contains(t, doc, "data:image/png;base64,")
}

func TestSave_WritesTimestampedFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "receipts")
	g := NewGenerator(dir)

	path, err := g.Save("content", time.Date(2026, 8, 30, 14, 15, 9, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "receipt_20260830_141509.html"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}
