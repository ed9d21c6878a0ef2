package models

import "errors"

var (
	// ErrProductNotFound is returned when a product does not exist in the backing store.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateProduct is returned when a product with the same id already exists.
	ErrDuplicateProduct = errors.New("product id already used")
	// ErrTransactionNotFound is returned when a ledger entry does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrDuplicateTransaction is returned when a ledger entry with the same id already exists.
	ErrDuplicateTransaction = errors.New("transaction id already used")
	// ErrInsufficientStock is returned when a stock change would make the quantity negative.
	ErrInsufficientStock = errors.New("quantity cannot be negative")
	// ErrVersionConflict is returned when the product changed since it was read.
	ErrVersionConflict = errors.New("product was modified concurrently")
)
