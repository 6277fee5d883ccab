package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/swissmarley/cashier/internal/cart"
	"github.com/swissmarley/cashier/internal/domain"
)

// SaleRecorder persists one sale plus its lines as a single atomic
// unit. Implemented by the repository ledger.
type SaleRecorder interface {
	RecordSale(ctx context.Context, sale *domain.Sale, lines []domain.SaleLine) (*domain.Sale, error)
}

// ReceiptWriter renders a sale into a printable document and saves it
// to a timestamped file.
type ReceiptWriter interface {
	Render(sale *domain.Sale, lines []domain.CartLine) string
	Save(content string, at time.Time) (string, error)
}

// Transaction walks one checkout cycle through
// EMPTY -> POPULATED -> CONFIRMED -> RECORDED -> RECEIPTED -> CLEARED.
// It is not reusable: a new transaction is created per cycle. Stock is
// not touched here; the cart already reserved it at add time, so a
// failed Record only needs to keep sale rows atomic and leave the cart
// intact for retry.
type Transaction struct {
	id       string
	cart     *cart.Cart
	recorder SaleRecorder
	receipts ReceiptWriter
	status   domain.CheckoutStatus

	payment domain.PaymentMethod
	sale    *domain.Sale
	lines   []domain.SaleLine
	now     func() time.Time
}

func NewTransaction(c *cart.Cart, recorder SaleRecorder, receipts ReceiptWriter) *Transaction {
	status := domain.CheckoutStatusEmpty
	if !c.IsEmpty() {
		status = domain.CheckoutStatusPopulated
	}
	return &Transaction{
		id:       uuid.New().String(),
		cart:     c,
		recorder: recorder,
		receipts: receipts,
		status:   status,
		now:      time.Now,
	}
}

func (t *Transaction) ID() string {
	return t.id
}

func (t *Transaction) Status() domain.CheckoutStatus {
	return t.status
}

// Confirm is the commit point: it freezes the cart's totals and lines
// into a pending sale. An empty cart fails with ErrEmptyCart and the
// transaction stays where it was.
func (t *Transaction) Confirm(payment domain.PaymentMethod) error {
	if t.cart.IsEmpty() {
		return ErrEmptyCart
	}
	if !domain.CanTransitionTo(t.status, domain.CheckoutStatusConfirmed) {
		return IllegalTransitionError
	}

	totals := t.cart.Totals()
	t.payment = payment
	t.sale = &domain.Sale{
		Date:            t.now(),
		Subtotal:        totals.Subtotal,
		DiscountPercent: t.cart.Discount(),
		FinalTotal:      totals.FinalTotal,
		Payment:         payment,
	}

	t.lines = nil
	for _, line := range t.cart.Lines() {
		t.lines = append(t.lines, domain.SaleLine{
			ArticleID: line.ArticleID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	t.status = domain.CheckoutStatusConfirmed
	return nil
}

// Record persists the confirmed sale. On a storage fault the sale and
// the cart are unchanged and the transaction stays CONFIRMED, so the
// caller may retry.
func (t *Transaction) Record(ctx context.Context) (*domain.Sale, error) {
	if !domain.CanTransitionTo(t.status, domain.CheckoutStatusRecorded) {
		return nil, IllegalTransitionError
	}

	recorded, err := t.recorder.RecordSale(ctx, t.sale, t.lines)
	if err != nil {
		return nil, err
	}

	t.sale = recorded
	for i := range t.lines {
		t.lines[i].SaleID = recorded.ID
	}
	t.status = domain.CheckoutStatusRecorded
	return recorded, nil
}

// Receipt renders and saves the receipt document for the recorded
// sale, returning the saved file path. A save failure keeps the
// transaction RECORDED for retry.
func (t *Transaction) Receipt() (string, error) {
	if !domain.CanTransitionTo(t.status, domain.CheckoutStatusReceipted) {
		return "", IllegalTransitionError
	}

	content := t.receipts.Render(t.sale, t.cart.Lines())
	path, err := t.receipts.Save(content, t.sale.Date)
	if err != nil {
		return "", err
	}

	t.status = domain.CheckoutStatusReceipted
	return path, nil
}

// Clear empties the cart and finishes the cycle. The transaction is
// terminal afterwards.
func (t *Transaction) Clear() error {
	if !domain.CanTransitionTo(t.status, domain.CheckoutStatusCleared) {
		return IllegalTransitionError
	}
	t.cart.Clear()
	t.status = domain.CheckoutStatusCleared
	return nil
}

// Complete runs the whole cycle: confirm, record, receipt, clear. It
// returns the recorded sale and the receipt path.
func (t *Transaction) Complete(ctx context.Context, payment domain.PaymentMethod) (*domain.Sale, string, error) {
	if err := t.Confirm(payment); err != nil {
		return nil, "", err
	}
	sale, err := t.Record(ctx)
	if err != nil {
		return nil, "", err
	}
	path, err := t.Receipt()
	if err != nil {
		return nil, "", err
	}
	if err := t.Clear(); err != nil {
		return nil, "", err
	}
	return sale, path, nil
}
