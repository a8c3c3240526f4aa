package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/storefront/pkg/errhttp"
	"github.com/ghuser/storefront/pkg/httpx"
	appsvcs "github.com/ghuser/storefront/services/checkout/application/services"
)

// StartCheckoutResponse is returned by POST /checkout.
type StartCheckoutResponse struct {
	Token    string                `json:"token"`
	Checkout *appsvcs.CheckoutView `json:"checkout"`
}

// StartCheckoutHandler handles POST /checkout requests.
type StartCheckoutHandler struct {
	svc      *appsvcs.Services
	sessions sessions.Store
}

// NewStartCheckoutHandler returns a StartCheckoutHandler backed by the given services.
func NewStartCheckoutHandler(svc *appsvcs.Services, sessionStore sessions.Store) *StartCheckoutHandler {
	return &StartCheckoutHandler{svc: svc, sessions: sessionStore}
}

// Execute opens a new checkout. The token is returned in the body and bound
// to the caller's session cookie so browser clients need not track it.
func (h *StartCheckoutHandler) Execute(w http.ResponseWriter, r *http.Request) {
	token, view, err := h.svc.Checkout.Start(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if err := saveToken(w, r, h.sessions, token); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, StartCheckoutResponse{
		Token:    token,
		Checkout: view,
	})
}
