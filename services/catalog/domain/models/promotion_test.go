package models

import "testing"

func TestHalfOffPairs_PayableUnits(t *testing.T) {
	promo := HalfOffPairs{Label: "Second Half price!"}

	cases := []struct {
		quantity int
		want     float64
	}{
		{0, 0},
		{1, 1},
		{2, 1.5},
		{3, 2.5},
		{4, 3},
		{5, 4}, // 2 half-price + 3 full-price
		{10, 7.5},
	}
	for _, tc := range cases {
		if got := promo.PayableUnits(tc.quantity); got != tc.want {
			t.Errorf("PayableUnits(%d): got %v, want %v", tc.quantity, got, tc.want)
		}
	}
}

func TestThirdFree_PayableUnits(t *testing.T) {
	promo := ThirdFree{Label: "Third One Free!"}

	cases := []struct {
		quantity int
		want     float64
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{9, 6},
		{10, 7},
	}
	for _, tc := range cases {
		if got := promo.PayableUnits(tc.quantity); got != tc.want {
			t.Errorf("PayableUnits(%d): got %v, want %v", tc.quantity, got, tc.want)
		}
	}
}

func TestPercentOff_PayableUnits(t *testing.T) {
	promo := PercentOff{Label: "30% off!", Percent: 30}

	if got := promo.PayableUnits(10); got != 7 {
		t.Errorf("PayableUnits(10): got %v, want 7", got)
	}
	if got := promo.PayableUnits(0); got != 0 {
		t.Errorf("PayableUnits(0): got %v, want 0", got)
	}
}

// TestPercentOff_AppliedPrice checks the end-to-end price: 30% off 10 units
// at unit price 100 yields 700.
func TestPercentOff_AppliedPrice(t *testing.T) {
	p, err := NewStocked("Monitor", 100, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.SetPromotion(PercentOff{Label: "30% off!", Percent: 30})

	res, err := p.Buy(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Price != 700 {
		t.Errorf("price: got %v, want 700", res.Price)
	}
}

func TestPromotion_Name(t *testing.T) {
	promos := []Promotion{
		HalfOffPairs{Label: "Second Half price!"},
		ThirdFree{Label: "Third One Free!"},
		PercentOff{Label: "30% off!", Percent: 30},
	}
	wants := []string{"Second Half price!", "Third One Free!", "30% off!"}
	for i, promo := range promos {
		if promo.Name() != wants[i] {
			t.Errorf("Name: got %q, want %q", promo.Name(), wants[i])
		}
	}
}
