package cart

import (
	"context"
	"math"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/swissmarley/cashier/internal/domain"
)

// StockReserver is the slice of the catalog the cart needs: it reserves
// stock by adjusting it downward the moment a line is added.
type StockReserver interface {
	AdjustStock(ctx context.Context, id int64, delta int64) (int64, error)
}

// Cart is the session-scoped line collection. It is never persisted
// and lives for exactly one checkout cycle. One instance is shared by
// all requests, so every public method holds the mutex.
//
// Stock is reserved optimistically: AddLine decrements catalog stock
// immediately, and Clear does not give it back. Abandoning a populated
// cart therefore keeps the reservation, matching the register's
// long-standing behavior.
type Cart struct {
	mu       sync.Mutex
	catalog  StockReserver
	lines    []domain.CartLine
	discount float64
}

func New(catalog StockReserver) *Cart {
	return &Cart{catalog: catalog}
}

// AddLine reserves quantity units of article and adds them to the
// cart. On any failure neither the cart nor the catalog stock is
// touched. Re-adding an article sums quantities but keeps the unit
// price snapshotted by the first add.
func (c *Cart) AddLine(ctx context.Context, article *domain.Article, quantity int64) error {
	if quantity <= 0 {
		return &domain.ValidationError{Field: "quantity", Reason: "must be a positive integer"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Reserve first: if the stock is short this fails with the
	// available amount and the cart stays untouched.
	if _, err := c.catalog.AdjustStock(ctx, article.ID, -quantity); err != nil {
		return err
	}

	for i := range c.lines {
		if c.lines[i].ArticleID == article.ID {
			c.lines[i].Quantity += quantity
			return nil
		}
	}

	c.lines = append(c.lines, domain.CartLine{
		ArticleID: article.ID,
		Name:      article.Name,
		UnitPrice: article.Price,
		Quantity:  quantity,
	})
	return nil
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// SetDiscount stores the discount percent. Anything outside [0,100],
// NaN or infinite is silently coerced to 0; bad discount input never
// raises.
func (c *Cart) SetDiscount(percent float64) {
	if math.IsNaN(percent) || math.IsInf(percent, 0) || percent < 0 || percent > 100 {
		percent = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.discount = percent
}

func (c *Cart) Discount() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.discount
}

// Totals holds the cart's monetary summary, rounded to cents.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalTotal     decimal.Decimal
}

func (c *Cart) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()
	subtotal := decimal.Zero
	for _, line := range c.lines {
		subtotal = subtotal.Add(line.LineTotal())
	}
	subtotal = subtotal.Round(2)

	discountAmount := subtotal.
		Mul(decimal.NewFromFloat(c.discount)).
		Div(decimal.NewFromInt(100)).
		Round(2)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		FinalTotal:     subtotal.Sub(discountAmount),
	}
}

// Clear empties the cart and resets the discount. Reserved stock is
// not restored.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.discount = 0
}
