package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/swissmarley/cashier/internal/domain"
)

var (
	ErrSaleNotFound = errors.New("sale not found")
	ErrNoSaleLines  = errors.New("a sale must have at least one line")
)

// Ledger is the append-only sale store plus its read-side reporting
// queries. Sales are never updated or deleted.
type Ledger struct {
	db *sql.DB
}

func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// RecordSale persists one sale row and its lines in a single database
// transaction. Either everything is written or nothing is; a failure
// leaves no partial sale behind. Returns the sale with its assigned id
// and the same id stamped on every line.
func (l *Ledger) RecordSale(ctx context.Context, sale *domain.Sale, lines []domain.SaleLine) (*domain.Sale, error) {
	if len(lines) == 0 {
		return nil, ErrNoSaleLines
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin sale transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sales (date, total, discount, final_total, payment_type) VALUES (?, ?, ?, ?, ?)`,
		sale.Date.Format(domain.DateLayout),
		sale.Subtotal.Round(2).InexactFloat64(),
		sale.DiscountPercent,
		sale.FinalTotal.Round(2).InexactFloat64(),
		string(sale.Payment))
	if err != nil {
		return nil, fmt.Errorf("failed to insert sale: %w", err)
	}

	saleID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted sale id: %w", err)
	}

	for i := range lines {
		lines[i].SaleID = saleID
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sales_items (sale_id, article_id, quantity, price) VALUES (?, ?, ?, ?)`,
			saleID, lines[i].ArticleID, lines[i].Quantity,
			lines[i].UnitPrice.Round(2).InexactFloat64())
		if err != nil {
			return nil, fmt.Errorf("failed to insert sale line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale: %w", err)
	}

	recorded := *sale
	recorded.ID = saleID
	return &recorded, nil
}

func (l *Ledger) Sale(ctx context.Context, id int64) (*domain.Sale, error) {
	row := l.db.QueryRowContext(ctx,
		`SELECT sale_id, date, total, discount, final_total, payment_type FROM sales WHERE sale_id = ?`, id)

	sale, err := scanSale(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sale: %w", err)
	}
	return sale, nil
}

func (l *Ledger) SaleLines(ctx context.Context, saleID int64) ([]domain.SaleLine, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT sale_id, article_id, quantity, price FROM sales_items WHERE sale_id = ? ORDER BY sale_item_id`,
		saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale lines: %w", err)
	}
	defer rows.Close()

	lines := []domain.SaleLine{}
	for rows.Next() {
		var line domain.SaleLine
		var price float64
		if err := rows.Scan(&line.SaleID, &line.ArticleID, &line.Quantity, &price); err != nil {
			return nil, fmt.Errorf("failed to scan sale line: %w", err)
		}
		line.UnitPrice = decimal.NewFromFloat(price).Round(2)
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return lines, nil
}

// History returns all sales newest first, along with the running grand
// total over the returned rows. An empty ledger yields an empty slice
// and a zero total.
func (l *Ledger) History(ctx context.Context) ([]*domain.Sale, decimal.Decimal, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT sale_id, date, total, discount, final_total, payment_type FROM sales ORDER BY date DESC, sale_id DESC`)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to query sales history: %w", err)
	}
	defer rows.Close()

	sales := []*domain.Sale{}
	grandTotal := decimal.Zero
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
		grandTotal = grandTotal.Add(sale.FinalTotal)
	}

	if err := rows.Err(); err != nil {
		return nil, decimal.Zero, fmt.Errorf("row iteration error: %w", err)
	}
	return sales, grandTotal, nil
}

// SalePoint is one sample of the sales-over-time series.
type SalePoint struct {
	Date       time.Time
	FinalTotal decimal.Decimal
}

func (l *Ledger) SalesOverTime(ctx context.Context) ([]SalePoint, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT date, final_total FROM sales ORDER BY date ASC, sale_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales over time: %w", err)
	}
	defer rows.Close()

	points := []SalePoint{}
	for rows.Next() {
		var raw string
		var total float64
		if err := rows.Scan(&raw, &total); err != nil {
			return nil, fmt.Errorf("failed to scan sale point: %w", err)
		}
		date, err := time.Parse(domain.DateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sale date %q: %w", raw, err)
		}
		points = append(points, SalePoint{
			Date:       date,
			FinalTotal: decimal.NewFromFloat(total).Round(2),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return points, nil
}

// ItemSales is one row of the top-sellers ranking.
type ItemSales struct {
	Name     string
	Quantity int64
}

const DefaultTopItemsLimit = 10

// TopSellingItems ranks articles by total quantity sold, descending,
// with ties broken by name ascending so repeated calls over an
// unchanged ledger return identical results. A non-positive limit
// falls back to DefaultTopItemsLimit.
func (l *Ledger) TopSellingItems(ctx context.Context, limit int) ([]ItemSales, error) {
	if limit <= 0 {
		limit = DefaultTopItemsLimit
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT articles.name, SUM(sales_items.quantity) AS quantity
		FROM sales_items
		JOIN articles ON sales_items.article_id = articles.id
		GROUP BY articles.name
		ORDER BY quantity DESC, articles.name ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top selling items: %w", err)
	}
	defer rows.Close()

	items := []ItemSales{}
	for rows.Next() {
		var item ItemSales
		if err := rows.Scan(&item.Name, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan item sales: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return items, nil
}

// DiscountDistribution returns every recorded discount percent, in
// insertion order, for histogram binning.
func (l *Ledger) DiscountDistribution(ctx context.Context) ([]float64, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT discount FROM sales ORDER BY sale_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query discounts: %w", err)
	}
	defer rows.Close()

	discounts := []float64{}
	for rows.Next() {
		var d float64
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan discount: %w", err)
		}
		discounts = append(discounts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return discounts, nil
}

// HistoryDetailRow is one exported sale line joined with its parent
// sale. ArticleName falls back to "(deleted)" when the article no
// longer exists, so history stays exportable after catalog deletes.
type HistoryDetailRow struct {
	SaleID          int64
	Date            time.Time
	Subtotal        decimal.Decimal
	DiscountPercent float64
	FinalTotal      decimal.Decimal
	Payment         domain.PaymentMethod
	ArticleName     string
	Quantity        int64
	UnitPrice       decimal.Decimal
}

func (l *Ledger) HistoryDetail(ctx context.Context) ([]HistoryDetailRow, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT sales.sale_id, sales.date, sales.total, sales.discount, sales.final_total, sales.payment_type,
		       COALESCE(articles.name, '(deleted)'), sales_items.quantity, sales_items.price
		FROM sales
		JOIN sales_items ON sales.sale_id = sales_items.sale_id
		LEFT JOIN articles ON sales_items.article_id = articles.id
		ORDER BY sales.date DESC, sales.sale_id DESC, sales_items.sale_item_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query history detail: %w", err)
	}
	defer rows.Close()

	detail := []HistoryDetailRow{}
	for rows.Next() {
		var row HistoryDetailRow
		var rawDate, payment string
		var subtotal, finalTotal, price float64
		if err := rows.Scan(&row.SaleID, &rawDate, &subtotal, &row.DiscountPercent, &finalTotal,
			&payment, &row.ArticleName, &row.Quantity, &price); err != nil {
			return nil, fmt.Errorf("failed to scan history detail: %w", err)
		}
		date, err := time.Parse(domain.DateLayout, rawDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sale date %q: %w", rawDate, err)
		}
		row.Date = date
		row.Subtotal = decimal.NewFromFloat(subtotal).Round(2)
		row.FinalTotal = decimal.NewFromFloat(finalTotal).Round(2)
		row.UnitPrice = decimal.NewFromFloat(price).Round(2)
		row.Payment = domain.PaymentMethod(payment)
		detail = append(detail, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return detail, nil
}

func scanSale(row rowScanner) (*domain.Sale, error) {
	sale := &domain.Sale{}
	var rawDate, payment string
	var subtotal, finalTotal float64
	if err := row.Scan(&sale.ID, &rawDate, &subtotal, &sale.DiscountPercent, &finalTotal, &payment); err != nil {
		return nil, err
	}
	date, err := time.Parse(domain.DateLayout, rawDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sale date %q: %w", rawDate, err)
	}
	sale.Date = date
	sale.Subtotal = decimal.NewFromFloat(subtotal).Round(2)
	sale.FinalTotal = decimal.NewFromFloat(finalTotal).Round(2)
	sale.Payment = domain.PaymentMethod(payment)
	return sale, nil
}
