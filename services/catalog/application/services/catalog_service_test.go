package services

import (
	"testing"

	"github.com/ghuser/storefront/services/catalog/domain/models"
)

func testStore(t *testing.T) *models.Store {
	t.Helper()
	laptop, err := models.NewStocked("Laptop", 1450, 100)
	if err != nil {
		t.Fatal(err)
	}
	laptop.SetPromotion(models.HalfOffPairs{Label: "Second Half price!"})
	license, err := models.NewUnlimited("License", 125)
	if err != nil {
		t.Fatal(err)
	}
	shipping, err := models.NewLimitCapped("Shipping", 10, 250, 1)
	if err != nil {
		t.Fatal(err)
	}
	return models.NewStore(laptop, license, shipping)
}

func TestListActive(t *testing.T) {
	svc := NewCatalogService(testStore(t))

	views, count := svc.ListActive()
	if count != 3 {
		t.Fatalf("count: got %d, want 3", count)
	}
	if len(views) != 3 {
		t.Fatalf("views: got %d, want 3", len(views))
	}

	if views[0].Name != "Laptop" || views[0].Promotion != "Second Half price!" {
		t.Errorf("unexpected first view: %+v", views[0])
	}
	if views[1].Quantity != "Unlimited" {
		t.Errorf("unlimited quantity: got %q", views[1].Quantity)
	}
	if views[2].Limit != 1 {
		t.Errorf("shipping limit: got %d, want 1", views[2].Limit)
	}
}

func TestListActive_SkipsInactive(t *testing.T) {
	store := testStore(t)
	store.FindByName("Laptop").Deactivate()
	svc := NewCatalogService(store)

	views, count := svc.ListActive()
	if count != 2 {
		t.Fatalf("count: got %d, want 2", count)
	}
	for _, v := range views {
		if v.Name == "Laptop" {
			t.Fatal("inactive product listed")
		}
	}
}

func TestTotalQuantity_IgnoresUnlimited(t *testing.T) {
	svc := NewCatalogService(testStore(t))

	// 100 laptops + 250 shipping slots; the unlimited license adds nothing.
	if got := svc.TotalQuantity(); got != 350 {
		t.Errorf("total quantity: got %d, want 350", got)
	}
}
