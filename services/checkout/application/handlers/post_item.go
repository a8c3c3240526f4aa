package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/storefront/pkg/errhttp"
	"github.com/ghuser/storefront/pkg/httpx"
	pkgvalidator "github.com/ghuser/storefront/pkg/validator"
	appsvcs "github.com/ghuser/storefront/services/checkout/application/services"
	checkoutdomain "github.com/ghuser/storefront/services/checkout/domain"
)

// AddItemRequest is the request body for POST /checkout/items.
type AddItemRequest struct {
	Index    int `json:"index" validate:"required,gte=1"`
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// PostItemHandler handles POST /checkout/items requests.
type PostItemHandler struct {
	svc      *appsvcs.Services
	sessions sessions.Store
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services, sessionStore sessions.Store) *PostItemHandler {
	return &PostItemHandler{svc: svc, sessions: sessionStore}
}

// Execute adds quantity units of the product at the 1-based index to the
// caller's checkout. Validation failures leave the checkout unchanged.
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	token := resolveToken(r, h.sessions)
	if token == "" {
		errhttp.WriteError(w, checkoutdomain.ErrCheckoutNotFound)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[AddItemRequest](w, r)
	if !ok {
		return
	}

	view, err := h.svc.Checkout.AddItem(r.Context(), token, req.Index, req.Quantity)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}
