package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/storefront/pkg/app"
	"github.com/ghuser/storefront/services/checkout/application/handlers"
	appsvcs "github.com/ghuser/storefront/services/checkout/application/services"
)

// CheckoutRoutes registers checkout endpoints on the provided chi router and
// returns the wired service container so the caller can start the session
// sweeper.
func CheckoutRoutes(r chi.Router, a *app.Application) *appsvcs.Services {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", handlers.NewStartCheckoutHandler(svcs, a.SessionStore).Execute)
			r.Get("/", handlers.NewGetCheckoutHandler(svcs, a.SessionStore).Execute)
			r.Post("/items", handlers.NewPostItemHandler(svcs, a.SessionStore).Execute)
			r.Post("/complete", handlers.NewCompleteCheckoutHandler(svcs, a.SessionStore).Execute)
			r.Post("/cancel", handlers.NewCancelCheckoutHandler(svcs, a.SessionStore).Execute)
		})
	})
	return svcs
}
