package services

import (
	"github.com/ghuser/storefront/pkg/app"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Catalog *CatalogService
}

// New wires all catalog application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	return &Services{
		Catalog: NewCatalogService(a.Catalog),
	}
}
