// Package seed builds the initial in-memory catalog the store opens with.
package seed

import (
	"fmt"

	"github.com/ghuser/storefront/services/catalog/domain/models"
)

// DefaultCatalog returns a Store stocked with the standard product lineup
// and its promotions. Panics only if the hardcoded inventory is invalid,
// which would be a programming error.
func DefaultCatalog() *models.Store {
	macbook := mustStocked("MacBook Air M2", 1450, 100)
	earbuds := mustStocked("Bose QuietComfort Earbuds", 250, 500)
	pixel := mustStocked("Google Pixel 7", 500, 250)

	license, err := models.NewUnlimited("Windows License", 125)
	if err != nil {
		panic(fmt.Sprintf("seed catalog: %v", err))
	}
	shipping, err := models.NewLimitCapped("Shipping", 10, 250, 1)
	if err != nil {
		panic(fmt.Sprintf("seed catalog: %v", err))
	}

	macbook.SetPromotion(models.HalfOffPairs{Label: "Second Half price!"})
	earbuds.SetPromotion(models.ThirdFree{Label: "Third One Free!"})
	license.SetPromotion(models.PercentOff{Label: "30% off!", Percent: 30})

	return models.NewStore(macbook, earbuds, pixel, license, shipping)
}

func mustStocked(name string, price float64, quantity int) *models.Product {
	p, err := models.NewStocked(name, price, quantity)
	if err != nil {
		panic(fmt.Sprintf("seed catalog: %v", err))
	}
	return p
}
