// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/storefront/pkg/httpx"
	catalogdomain "github.com/ghuser/storefront/services/catalog/domain"
	checkoutdomain "github.com/ghuser/storefront/services/checkout/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, catalogdomain.ErrProductNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, catalogdomain.ErrInsufficientQuantity):
		return http.StatusConflict // 409
	case errors.Is(err, catalogdomain.ErrInvalidInput):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, checkoutdomain.ErrCheckoutNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, checkoutdomain.ErrInvalidTransition):
		return http.StatusConflict // 409
	case errors.Is(err, checkoutdomain.ErrInvalidSelection),
		errors.Is(err, checkoutdomain.ErrInvalidQuantity),
		errors.Is(err, checkoutdomain.ErrLimitExceeded):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
