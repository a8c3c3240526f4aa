package services

import (
	"github.com/ghuser/storefront/services/catalog/domain/models"
)

// ProductView is a read model of a single catalog entry, shaped for display.
type ProductView struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    string  `json:"quantity"`
	Kind        string  `json:"kind"`
	Limit       int     `json:"limit,omitempty"`
	Promotion   string  `json:"promotion,omitempty"`
	Description string  `json:"description"`
}

// CatalogService serves read views over the shared in-memory product store.
// All mutation goes through the checkout bounded context; this service never
// changes inventory.
type CatalogService struct {
	store *models.Store
}

// NewCatalogService returns a CatalogService over the given store.
func NewCatalogService(store *models.Store) *CatalogService {
	return &CatalogService{store: store}
}

// ListActive returns display views of every active product plus the count.
func (s *CatalogService) ListActive() ([]ProductView, int) {
	products, count := s.store.ListActive()
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, viewOf(p))
	}
	return views, count
}

// TotalQuantity returns the number of sellable units across active stocked
// products. Unlimited products do not contribute to the total.
func (s *CatalogService) TotalQuantity() int {
	return s.store.TotalQuantity()
}

func viewOf(p *models.Product) ProductView {
	v := ProductView{
		Name:        p.Name(),
		Price:       p.Price(),
		Quantity:    p.DisplayQuantity(),
		Kind:        p.Kind().String(),
		Description: p.Describe(),
	}
	if p.Kind() == models.KindLimitCapped {
		v.Limit = p.Limit()
	}
	if promo := p.Promotion(); promo != nil {
		v.Promotion = promo.Name()
	}
	return v
}
