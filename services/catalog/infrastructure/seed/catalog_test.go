package seed

import (
	"testing"

	"github.com/ghuser/storefront/services/catalog/domain/models"
)

func TestDefaultCatalog(t *testing.T) {
	store := DefaultCatalog()

	products, count := store.ListActive()
	if count != 5 {
		t.Fatalf("active products: got %d, want 5", count)
	}

	// 100 + 500 + 250 + 250; the unlimited license adds nothing.
	if got := store.TotalQuantity(); got != 1100 {
		t.Errorf("total quantity: got %d, want 1100", got)
	}

	license := store.FindByName("Windows License")
	if license == nil || license.Kind() != models.KindUnlimited {
		t.Fatalf("windows license misconfigured: %+v", license)
	}
	if license.Promotion() == nil || license.Promotion().Name() != "30% off!" {
		t.Error("license should carry the 30% promotion")
	}

	shipping := store.FindByName("Shipping")
	if shipping == nil || shipping.Limit() != 1 {
		t.Fatalf("shipping limit misconfigured: %+v", shipping)
	}

	if products[0].Promotion() == nil || products[0].Promotion().Name() != "Second Half price!" {
		t.Error("macbook should carry the second-half-price promotion")
	}
	if products[1].Promotion() == nil || products[1].Promotion().Name() != "Third One Free!" {
		t.Error("earbuds should carry the third-one-free promotion")
	}
	if products[2].Promotion() != nil {
		t.Error("pixel should carry no promotion")
	}
}
