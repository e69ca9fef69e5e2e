package ledger

import "errors"

// Business outcomes surfaced to the caller unchanged. These are expected
// results of normal operation, not storage faults; only wrapped storage
// errors are worth a caller-level retry.
var (
	ErrNotFound          = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidName       = errors.New("product name is empty")
	ErrInvalidQuantity   = errors.New("quantity must not be negative")
	ErrInvalidPrice      = errors.New("price must not be negative")
)
