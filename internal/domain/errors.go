package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument indicates malformed input to a cart operation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInsufficientStock indicates a conditional stock decrement matched no row.
	ErrInsufficientStock = errors.New("insufficient stock")
)
