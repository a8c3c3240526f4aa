package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/storefront/pkg/errhttp"
	"github.com/ghuser/storefront/pkg/httpx"
	appsvcs "github.com/ghuser/storefront/services/checkout/application/services"
	checkoutdomain "github.com/ghuser/storefront/services/checkout/domain"
	"github.com/ghuser/storefront/services/checkout/domain/models"
)

// CompleteCheckoutResponse is returned by POST /checkout/complete. Receipt is
// null when the checkout was completed empty and nothing was purchased.
type CompleteCheckoutResponse struct {
	Receipt *models.Receipt `json:"receipt"`
	Summary string          `json:"summary,omitempty"`
}

// CompleteCheckoutHandler handles POST /checkout/complete requests.
type CompleteCheckoutHandler struct {
	svc      *appsvcs.Services
	sessions sessions.Store
}

// NewCompleteCheckoutHandler returns a CompleteCheckoutHandler backed by the given services.
func NewCompleteCheckoutHandler(svc *appsvcs.Services, sessionStore sessions.Store) *CompleteCheckoutHandler {
	return &CompleteCheckoutHandler{svc: svc, sessions: sessionStore}
}

// Execute finishes the caller's checkout and commits it against the store.
// The token is consumed whether or not anything was purchased.
func (h *CompleteCheckoutHandler) Execute(w http.ResponseWriter, r *http.Request) {
	token := resolveToken(r, h.sessions)
	if token == "" {
		errhttp.WriteError(w, checkoutdomain.ErrCheckoutNotFound)
		return
	}

	receipt, err := h.svc.Checkout.Complete(r.Context(), token)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	clearToken(w, r, h.sessions)

	resp := CompleteCheckoutResponse{Receipt: receipt}
	if receipt != nil {
		resp.Summary = receipt.Summary()
	}
	httpx.JSON(w, http.StatusOK, resp)
}
