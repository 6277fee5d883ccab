package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swissmarley/cashier/internal/domain"
	"github.com/swissmarley/cashier/internal/repository"
)

func saleAt(date time.Time, subtotal, finalTotal float64, discount float64, payment domain.PaymentMethod) *domain.Sale {
	return &domain.Sale{
		Date:            date,
		Subtotal:        decimal.NewFromFloat(subtotal),
		DiscountPercent: discount,
		FinalTotal:      decimal.NewFromFloat(finalTotal),
		Payment:         payment,
	}
}

func line(articleID, quantity int64, price float64) domain.SaleLine {
	return domain.SaleLine{
		ArticleID: articleID,
		Quantity:  quantity,
		UnitPrice: decimal.NewFromFloat(price),
	}
}

func TestRecordSale_WritesSaleAndLines(t *testing.T) {
	_, db := setupCatalog(t)
	ledger := repository.NewLedger(db)
	ctx := context.Background()

	date := time.Date(2026, 8, 30, 14, 15, 0, 0, time.UTC)
	sale := saleAt(date, 2.50, 2.25, 10, domain.PaymentCash)
	lines := []domain.SaleLine{line(1, 5, 0.50)}

	recorded, err := ledger.RecordSale(ctx, sale, lines)
	require.NoError(t, err)
	assert.Equal(t, int64(1), recorded.ID)

	got, err := ledger.Sale(ctx, recorded.ID)
	require.NoError(t, err)
	assert.Equal(t, "2.50", got.Subtotal.StringFixed(2))
	assert.Equal(t, float64(10), got.DiscountPercent)
	assert.Equal(t, "2.25", got.FinalTotal.StringFixed(2))
	assert.Equal(t, domain.PaymentCash, got.Payment)
	assert.True(t, got.Date.Equal(date))

	gotLines, err := ledger.SaleLines(ctx, recorded.ID)
	require.NoError(t, err)
	require.Len(t, gotLines, 1)
	assert.Equal(t, recorded.ID, gotLines[0].SaleID)
	assert.Equal(t, int64(1), gotLines[0].ArticleID)
	assert.Equal(t, int64(5), gotLines[0].Quantity)
	assert.Equal(t, "0.50", gotLines[0].UnitPrice.StringFixed(2))
}

func TestRecordSale_LineTotalsMatchSubtotal(t *testing.T) {
	_, db := setupCatalog(t)
	ledger := repository.NewLedger(db)
	ctx := context.Background()

	sale := saleAt(time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC), 4.10, 4.10, 0, domain.PaymentCard)
	// 2.50 + 0.60 + 1.00 = 4.10
	lines := []domain.SaleLine{
		line(1, 5, 0.50),
		line(2, 2, 0.30),
		line(4, 1, 1.00),
	}
	recorded, err := ledger.RecordSale(ctx, sale, lines)
	require.NoError(t, err)

	gotLines, err := ledger.SaleLines(ctx, recorded.ID)
	require.NoError(t, err)
	require.Len(t, gotLines, len(lines))

	sum := decimal.Zero
	for _, l := range gotLines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)))
	}
	assert.True(t, sum.Equal(recorded.Subtotal), "line totals %s != subtotal %s", sum, recorded.Subtotal)
}

func TestRecordSale_RejectsEmptyLines(t *testing.T) {
	_, db := setupCatalog(t)
	ledger := repository.NewLedger(db)

	sale := saleAt(time.Now(), 1, 1, 0, domain.PaymentCash)
	_, err := ledger.RecordSale(context.Background(), sale, nil)
	assert.ErrorIs(t, err, repository.ErrNoSaleLines)
}

func TestSale_UnknownID(t *testing.T) {
	_, db := setupCatalog(t)
	ledger := repository.NewLedger(db)

	_, err := ledger.Sale(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrSaleNotFound)
}

func TestHistory_NewestFirstWithGrandTotal(t *testing.T) {
	_, db := setupCatalog(t)
	ledger := repository.NewLedger(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i, total := range []float64{1.00, 2.00, 3.50} {
		sale := saleAt(base.AddDate(0, 0, i), total, total, 0, domain.PaymentCash)
		_, err := ledger.RecordSale(ctx, sale, []domain.SaleLine{line(1, 1, total)})
		require.NoError(t, err)
	}

	sales, grandTotal, err := ledger.History(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 3)

	assert.Equal(t, "3.50", sales[0].FinalTotal.StringFixed(2))
	assert.Equal(t, "1.00", sales[2].FinalTotal.StringFixed(2))
	assert.Equal(t, "6.50", grandTotal.StringFixed(2))
}

func TestHistory_EmptyLedger(t *testing.T) {
	_, db := setupCatalog(t)
	ledger := repository.NewLedger(db)

	sales, grandTotal, err := ledger.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sales)
	assert.True(t, grandTotal.IsZero())
}

func TestSalesOverTime_AscendingByDate(t *testing.T) {
	_, db := setupCatalog(t)
	ledger := repository.NewLedger(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	// Insert out of order; the query must sort ascending.
	for _, day := range []int{2, 0, 1} {
		sale := saleAt(base.AddDate(0, 0, day), 1.00, 1.00, 0, domain.PaymentCash)
		_, err := ledger.RecordSale(ctx, sale, []domain.SaleLine{line(1, 1, 1.00)})
		require.NoError(t, err)
	}

	points, err := ledger.SalesOverTime(ctx)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.True(t, points[0].Date.Before(points[1].Date))
	assert.True(t, points[1].Date.Before(points[2].Date))

	empty, err := repository.NewLedger(setupDB(t)).SalesOverTime(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTopSellingItems_OrderAndTieBreak(t *testing.T) {
	_, db := setupCatalog(t)
	ledger := repository.NewLedger(db)
	ctx := context.Background()

	// Banana(2): 7 sold. Apple(1) and Bread(5): 5 each — the tie breaks
	// by name ascending, so Apple before Bread.
	date := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	sale := saleAt(date, 10, 10, 0, domain.PaymentCard)
	_, err := ledger.RecordSale(ctx, sale, []domain.SaleLine{
		line(2, 7, 0.30),
		line(5, 5, 1.00),
		line(1, 5, 0.50),
	})
	require.NoError(t, err)

	items, err := ledger.TopSellingItems(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, repository.ItemSales{Name: "Banana", Quantity: 7}, items[0])
	assert.Equal(t, repository.ItemSales{Name: "Apple", Quantity: 5}, items[1])
	assert.Equal(t, repository.ItemSales{Name: "Bread", Quantity: 5}, items[2])

	// Idempotent over an unchanged ledger.
	again, err := ledger.TopSellingItems(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, items, again)

	limited, err := ledger.TopSellingItems(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestDiscountDistribution(t *testing.T) {
	_, db := setupCatalog(t)
	ledger := repository.NewLedger(db)
	ctx := context.Background()

	date := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	for _, d := range []float64{0, 10, 10, 25} {
		sale := saleAt(date, 1, 1, d, domain.PaymentCash)
		_, err := ledger.RecordSale(ctx, sale, []domain.SaleLine{line(1, 1, 1)})
		require.NoError(t, err)
	}

	discounts, err := ledger.DiscountDistribution(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 10, 10, 25}, discounts)
}

func TestHistoryDetail_KeepsDeletedArticleRows(t *testing.T) {
	catalog, db := setupCatalog(t)
	ledger := repository.NewLedger(db)
	ctx := context.Background()

	date := time.Date(2026, 8, 20, 16, 30, 0, 0, time.UTC)
	sale := saleAt(date, 2.50, 2.50, 0, domain.PaymentCash)
	_, err := ledger.RecordSale(ctx, sale, []domain.SaleLine{line(1, 5, 0.50)})
	require.NoError(t, err)

	require.NoError(t, catalog.Delete(ctx, 1))

	rows, err := ledger.HistoryDetail(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// The snapshot survives the delete; only the name is gone.
	assert.Equal(t, "(deleted)", rows[0].ArticleName)
	assert.Equal(t, int64(5), rows[0].Quantity)
	assert.Equal(t, "0.50", rows[0].UnitPrice.StringFixed(2))
}
