package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swissmarley/cashier/internal/domain"
	"github.com/swissmarley/cashier/internal/repository"
)

func TestArticles_WritesHeaderAndRows(t *testing.T) {
	articles := []*domain.Article{
		{ID: 1, Name: "Apple", Price: decimal.NewFromFloat(0.50), Stock: 100},
		{ID: 2, Name: "Milk, Whole", Price: decimal.NewFromFloat(1.20), Stock: 50, PhotoRef: "images/milk.png"},
	}

	var buf bytes.Buffer
	require.NoError(t, Articles(&buf, articles))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"id", "name", "price", "stock", "photo"}, records[0])
	assert.Equal(t, []string{"1", "Apple", "0.50", "100", ""}, records[1])
	// The comma in the name survives the round trip.
	assert.Equal(t, []string{"2", "Milk, Whole", "1.20", "50", "images/milk.png"}, records[2])
}

func TestHistory_WritesOneRowPerSaleLine(t *testing.T) {
	rows := []repository.HistoryDetailRow{
		{
			SaleID:          3,
			Date:            time.Date(2026, 8, 30, 14, 15, 0, 0, time.UTC),
			Subtotal:        decimal.NewFromFloat(2.50),
			DiscountPercent: 10,
			FinalTotal:      decimal.NewFromFloat(2.25),
			Payment:         domain.PaymentCash,
			ArticleName:     "Apple",
			Quantity:        5,
			UnitPrice:       decimal.NewFromFloat(0.50),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, History(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t,
		[]string{"sale_id", "date", "total", "discount", "final_total", "payment_type", "name", "quantity", "price"},
		records[0])
	assert.Equal(t,
		[]string{"3", "2026-08-30 14:15:00", "2.50", "10", "2.25", "Cash", "Apple", "5", "0.50"},
		records[1])
}

func TestExports_EmptyInput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Articles(&buf, nil))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1) // header only

	buf.Reset()
	require.NoError(t, History(&buf, nil))
	records, err = csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
