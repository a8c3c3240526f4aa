package domain

import "errors"

// Sentinel errors for the catalog domain. Use errors.Is() to check these.
var (
	// ErrInvalidInput indicates a product was constructed or mutated with an
	// empty name, a negative price, or a negative quantity.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientQuantity indicates a purchase requested more units than
	// the product has in stock. No stock is deducted when this is returned.
	ErrInsufficientQuantity = errors.New("insufficient quantity")

	// ErrProductNotFound indicates the requested product does not exist in the store.
	ErrProductNotFound = errors.New("product not found")
)
