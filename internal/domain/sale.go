package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is how sale dates are stored and rendered. Lexicographic
// order on the stored text equals chronological order.
const DateLayout = "2006-01-02 15:04:05"

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "Cash"
	PaymentCard PaymentMethod = "Card"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentCard
}

// Sale is an append-only ledger entry, immutable once recorded.
type Sale struct {
	ID              int64
	Date            time.Time
	Subtotal        decimal.Decimal
	DiscountPercent float64
	FinalTotal      decimal.Decimal
	Payment         PaymentMethod
}

// SaleLine references its parent sale and the sold article by id only.
// UnitPrice is the cart's snapshot, so history stays readable even
// after the article is deleted or repriced.
type SaleLine struct {
	SaleID    int64
	ArticleID int64
	Quantity  int64
	UnitPrice decimal.Decimal
}
