package services

import (
	"time"

	"github.com/ghuser/storefront/pkg/app"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Checkout *CheckoutService
}

// New wires all checkout application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	return &Services{
		Checkout: NewCheckoutService(
			a.Catalog,
			a.EventBus,
			a.Logger,
			time.Duration(a.Config.CheckoutTTLMinutes)*time.Minute,
			a.Config.UnlimitedOrderCeiling,
			a.Config.OrderIDLength,
		),
	}
}
