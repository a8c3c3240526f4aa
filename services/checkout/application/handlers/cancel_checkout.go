package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/storefront/pkg/errhttp"
	"github.com/ghuser/storefront/pkg/httpx"
	appsvcs "github.com/ghuser/storefront/services/checkout/application/services"
	checkoutdomain "github.com/ghuser/storefront/services/checkout/domain"
)

// CancelCheckoutHandler handles POST /checkout/cancel requests.
type CancelCheckoutHandler struct {
	svc      *appsvcs.Services
	sessions sessions.Store
}

// NewCancelCheckoutHandler returns a CancelCheckoutHandler backed by the given services.
func NewCancelCheckoutHandler(svc *appsvcs.Services, sessionStore sessions.Store) *CancelCheckoutHandler {
	return &CancelCheckoutHandler{svc: svc, sessions: sessionStore}
}

// Execute aborts the caller's checkout, discarding all accumulated lines.
func (h *CancelCheckoutHandler) Execute(w http.ResponseWriter, r *http.Request) {
	token := resolveToken(r, h.sessions)
	if token == "" {
		errhttp.WriteError(w, checkoutdomain.ErrCheckoutNotFound)
		return
	}
	if err := h.svc.Checkout.Cancel(r.Context(), token); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	clearToken(w, r, h.sessions)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
