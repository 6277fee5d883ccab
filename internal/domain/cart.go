package domain

import "github.com/shopspring/decimal"

// CartLine is one article's position in a session cart. UnitPrice is
// snapshotted when the article is first added and is kept even if the
// catalog price changes before checkout; adding the same article again
// only increments Quantity.
type CartLine struct {
	ArticleID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int64
}

// LineTotal returns UnitPrice * Quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}
