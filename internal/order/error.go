package order

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyOrder      = errors.New("order has no items")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrForbidden       = errors.New("forbidden")
)

// InsufficientStockError reports the first line that cannot be satisfied.
// Nothing is mutated when it is returned.
type InsufficientStockError struct {
	PinTitle  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: %d available, %d requested",
		e.PinTitle, e.Available, e.Requested)
}
