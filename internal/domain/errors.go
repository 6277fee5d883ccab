package domain

import "fmt"

// ValidationError reports rejected user input. These are recovered
// locally and surfaced as messages; they never abort the session.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InsufficientStockError reports a requested quantity that exceeds the
// article's available stock. Available carries the quantity the caller
// could still take.
type InsufficientStockError struct {
	ArticleID int64
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for article %d: requested %d, available %d",
		e.ArticleID, e.Requested, e.Available)
}
