package domain

import "github.com/shopspring/decimal"

// Article is a catalog entry. Stock is never negative; outside of
// creation it changes only through the catalog's AdjustStock.
type Article struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	Stock    int64
	PhotoRef string
}
