package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/storefront/pkg/app"
	"github.com/ghuser/storefront/services/catalog/application/handlers"
	appsvcs "github.com/ghuser/storefront/services/catalog/application/services"
)

// CatalogRoutes registers catalog endpoints on the provided chi router.
func CatalogRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", handlers.NewGetProductsHandler(svcs).Execute)
			r.Get("/inventory", handlers.NewGetInventoryHandler(svcs).Execute)
		})
	})
}
