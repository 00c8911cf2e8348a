package entity

import "errors"

var (
	// ErrCapacityExceeded means an add/increment would push a line past the
	// applicable stock ceiling. The collection is left unchanged.
	ErrCapacityExceeded = errors.New("quantity exceeds available stock")

	// ErrInsufficientStock is returned by the gateway when real-time stock is
	// lower than the requested deduction.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrEmptyOrder means Submit was called with no product lines.
	ErrEmptyOrder = errors.New("order has no product lines")

	// ErrValidation means a ledger entry was malformed (missing description,
	// non-positive amount).
	ErrValidation = errors.New("invalid transaction entry")

	// ErrNotFound means the referenced row does not exist.
	ErrNotFound = errors.New("not found")
)
