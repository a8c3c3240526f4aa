package handlers

import (
	"net/http"

	"github.com/ghuser/storefront/pkg/httpx"
	appsvcs "github.com/ghuser/storefront/services/catalog/application/services"
)

// ListProductsResponse is returned by GET /products.
type ListProductsResponse struct {
	Products []appsvcs.ProductView `json:"products"`
	Count    int                   `json:"count"`
}

// GetProductsHandler handles GET /products requests.
type GetProductsHandler struct {
	svc *appsvcs.Services
}

// NewGetProductsHandler returns a GetProductsHandler backed by the given services.
func NewGetProductsHandler(svc *appsvcs.Services) *GetProductsHandler {
	return &GetProductsHandler{svc: svc}
}

// Execute lists all active products in the catalog.
func (h *GetProductsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	views, count := h.svc.Catalog.ListActive()
	httpx.JSON(w, http.StatusOK, ListProductsResponse{
		Products: views,
		Count:    count,
	})
}
