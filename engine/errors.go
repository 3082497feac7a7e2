package engine

import "errors"

var (
	// ErrInvalidAmount rejects a payment whose amount is not positive.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrNegativeAmount rejects a negative catalog price or rate before it
	// can reach an aggregate.
	ErrNegativeAmount = errors.New("monetary amount must not be negative")

	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrServiceNotSelected = errors.New("service is not part of the selection")

	ErrInvalidExtensionHours = errors.New("extension hours must be between 1 and 24")
	ErrNoCheckOutTime        = errors.New("booking has no expected check-out time")
)
