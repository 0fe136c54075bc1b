// Package apperr defines the error taxonomy shared by all usecases.
// Handlers map these to HTTP status codes; everything else is a plain
// internal error.
package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound marks errors caused by a referenced entity being absent.
// Wrap it with NotFound so callers can test with errors.Is.
var ErrNotFound = errors.New("not found")

// NotFound reports a missing entity, e.g. NotFound("item", 42).
func NotFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

// ValidationError reports malformed input to a mutation. The store is never
// touched when one of these is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InsufficientStockError reports a manual inventory removal that exceeds the
// on-hand quantity. Delivery clamps instead; only RemoveInventory errors.
type InsufficientStockError struct {
	ItemID    int64
	Requested int
	OnHand    int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("cannot remove %d units from item %d: current inventory is %d", e.Requested, e.ItemID, e.OnHand)
}

// IsInsufficientStock reports whether err is (or wraps) an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var ise *InsufficientStockError
	return errors.As(err, &ise)
}
