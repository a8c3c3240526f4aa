package domain

import "errors"

// Sentinel errors for the checkout domain. Use errors.Is() to check these.
// All of them except ErrCheckoutNotFound are recoverable: the caller reports
// the message and re-prompts instead of aborting the checkout.
var (
	// ErrInvalidSelection indicates the product index is not in the active list.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrInvalidQuantity indicates the requested quantity is non-positive or
	// exceeds the remaining allowance for the selected product.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrLimitExceeded indicates the accumulated line for a limit-capped
	// product would exceed its per-order limit, regardless of stock.
	ErrLimitExceeded = errors.New("per-order limit exceeded")

	// ErrInvalidTransition indicates an operation was called in a state that
	// does not permit it (e.g. committing a checkout that is not complete).
	ErrInvalidTransition = errors.New("invalid checkout transition")

	// ErrCheckoutNotFound indicates no in-flight checkout matches the token.
	ErrCheckoutNotFound = errors.New("checkout not found")
)
