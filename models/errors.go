package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrPartNotFound  = errors.New("part not found")

	// ErrClosedOrder rejects line-item mutations against a closed order.
	ErrClosedOrder = errors.New("order is closed")

	ErrAlreadyClosed = errors.New("order is already closed")
	ErrNotClosed     = errors.New("order is not closed")

	// ErrUnauthorized rejects synthetic line-item deletion by non-admins.
	ErrUnauthorized = errors.New("not authorized")

	ErrValidation = errors.New("validation failed")
)

// InsufficientInventoryError is returned when an adjustment would drive a
// part's quantity_on_hand negative. It carries the current on-hand quantity
// so callers can surface a precise message.
type InsufficientInventoryError struct {
	PartID     int
	PartNumber string
	OnHand     decimal.Decimal
	Requested  decimal.Decimal
}

func (e *InsufficientInventoryError) Error() string {
	name := e.PartNumber
	if name == "" {
		name = fmt.Sprintf("part_id=%d", e.PartID)
	}
	return fmt.Sprintf("insufficient stock on hand for %s (available=%s, requested=%s)",
		name, e.OnHand.String(), e.Requested.String())
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
