package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/swissmarley/cashier/internal/domain"
)

var ErrArticleNotFound = errors.New("article not found")

// Catalog owns article records. All stock changes outside creation go
// through AdjustStock.
type Catalog struct {
	db *sql.DB
}

func NewCatalog(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

// Seed inserts the sample catalog on first run, when the articles
// table is empty. Subsequent runs are no-ops.
func (c *Catalog) Seed(ctx context.Context) error {
	var count int64
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count articles: %w", err)
	}
	if count > 0 {
		return nil
	}

	samples := []struct {
		name  string
		price float64
		stock int64
	}{
		{"Apple", 0.50, 100},
		{"Banana", 0.30, 150},
		{"Orange", 0.80, 80},
		{"Milk", 1.20, 50},
		{"Bread", 1.00, 60},
	}

	for _, s := range samples {
		_, err := c.db.ExecContext(ctx,
			`INSERT INTO articles (name, price, stock, photo) VALUES (?, ?, ?, NULL)`,
			s.name, s.price, s.stock)
		if err != nil {
			return fmt.Errorf("failed to seed article %q: %w", s.name, err)
		}
	}
	return nil
}

func (c *Catalog) Find(ctx context.Context, id int64) (*domain.Article, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, name, price, stock, photo FROM articles WHERE id = ?`, id)

	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query article: %w", err)
	}
	return article, nil
}

// Search returns articles whose name contains query, ordered by id. An
// empty query lists the whole catalog. Matching is case-insensitive
// for ASCII, as sqlite LIKE is.
func (c *Catalog) Search(ctx context.Context, query string) ([]*domain.Article, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, name, price, stock, photo FROM articles WHERE name LIKE ? ORDER BY id`,
		"%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	articles := []*domain.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return articles, nil
}

func (c *Catalog) Create(ctx context.Context, name string, price decimal.Decimal, stock int64, photoRef string) (*domain.Article, error) {
	if err := validateArticle(name, price); err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, &domain.ValidationError{Field: "stock", Reason: "must not be negative"}
	}

	res, err := c.db.ExecContext(ctx,
		`INSERT INTO articles (name, price, stock, photo) VALUES (?, ?, ?, ?)`,
		name, price.Round(2).InexactFloat64(), stock, nullable(photoRef))
	if err != nil {
		return nil, fmt.Errorf("failed to insert article: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted article id: %w", err)
	}

	return c.Find(ctx, id)
}

// Update replaces an article's name, price and photo reference and
// returns the updated row, so the caller never has to re-query the
// catalog. Stock is deliberately not updatable here; use AdjustStock.
func (c *Catalog) Update(ctx context.Context, id int64, name string, price decimal.Decimal, photoRef string) (*domain.Article, error) {
	if err := validateArticle(name, price); err != nil {
		return nil, err
	}

	res, err := c.db.ExecContext(ctx,
		`UPDATE articles SET name = ?, price = ?, photo = ? WHERE id = ?`,
		name, price.Round(2).InexactFloat64(), nullable(photoRef), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update article: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, ErrArticleNotFound
	}

	return c.Find(ctx, id)
}

// Delete removes an article. Historical sale lines keep their snapshot
// values; nothing cascades.
func (c *Catalog) Delete(ctx context.Context, id int64) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrArticleNotFound
	}
	return nil
}

// AdjustStock applies delta to an article's stock and returns the new
// level. It fails with InsufficientStockError before writing anything
// if the result would go negative.
func (c *Catalog) AdjustStock(ctx context.Context, id int64, delta int64) (int64, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin stock adjustment: %w", err)
	}
	defer tx.Rollback()

	var stock int64
	err = tx.QueryRowContext(ctx, `SELECT stock FROM articles WHERE id = ?`, id).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrArticleNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query stock: %w", err)
	}

	newStock := stock + delta
	if newStock < 0 {
		return 0, &domain.InsufficientStockError{
			ArticleID: id,
			Requested: -delta,
			Available: stock,
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE articles SET stock = ? WHERE id = ?`, newStock, id); err != nil {
		return 0, fmt.Errorf("failed to update stock: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit stock adjustment: %w", err)
	}

	return newStock, nil
}

func validateArticle(name string, price decimal.Decimal) error {
	if name == "" {
		return &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if price.IsNegative() {
		return &domain.ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*domain.Article, error) {
	a := &domain.Article{}
	var price float64
	var photo sql.NullString
	if err := row.Scan(&a.ID, &a.Name, &price, &a.Stock, &photo); err != nil {
		return nil, err
	}
	a.Price = decimal.NewFromFloat(price).Round(2)
	a.PhotoRef = photo.String
	return a, nil
}
