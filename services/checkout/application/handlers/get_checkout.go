package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/storefront/pkg/errhttp"
	"github.com/ghuser/storefront/pkg/httpx"
	appsvcs "github.com/ghuser/storefront/services/checkout/application/services"
	checkoutdomain "github.com/ghuser/storefront/services/checkout/domain"
)

// GetCheckoutHandler handles GET /checkout requests.
type GetCheckoutHandler struct {
	svc      *appsvcs.Services
	sessions sessions.Store
}

// NewGetCheckoutHandler returns a GetCheckoutHandler backed by the given services.
func NewGetCheckoutHandler(svc *appsvcs.Services, sessionStore sessions.Store) *GetCheckoutHandler {
	return &GetCheckoutHandler{svc: svc, sessions: sessionStore}
}

// Execute returns the current view of the caller's in-flight checkout.
func (h *GetCheckoutHandler) Execute(w http.ResponseWriter, r *http.Request) {
	token := resolveToken(r, h.sessions)
	if token == "" {
		errhttp.WriteError(w, checkoutdomain.ErrCheckoutNotFound)
		return
	}
	view, err := h.svc.Checkout.Get(r.Context(), token)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}
