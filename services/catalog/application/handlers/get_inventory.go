package handlers

import (
	"net/http"

	"github.com/ghuser/storefront/pkg/httpx"
	appsvcs "github.com/ghuser/storefront/services/catalog/application/services"
)

// InventoryResponse is returned by GET /products/inventory.
type InventoryResponse struct {
	TotalQuantity int `json:"total_quantity"`
}

// GetInventoryHandler handles GET /products/inventory requests.
type GetInventoryHandler struct {
	svc *appsvcs.Services
}

// NewGetInventoryHandler returns a GetInventoryHandler backed by the given services.
func NewGetInventoryHandler(svc *appsvcs.Services) *GetInventoryHandler {
	return &GetInventoryHandler{svc: svc}
}

// Execute reports the total sellable unit count across active stocked products.
func (h *GetInventoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, InventoryResponse{
		TotalQuantity: h.svc.Catalog.TotalQuantity(),
	})
}
