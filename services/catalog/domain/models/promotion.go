package models

// Promotion is a pricing rule attached to a single product. PayableUnits maps
// a purchased quantity to the equivalent number of full-price units, so the
// line price is always unitPrice × PayableUnits(quantity). Implementations are
// stateless; callers guarantee quantity >= 0.
//
// A product holds at most one promotion. Promotions never stack.
type Promotion interface {
	// Name returns the customer-facing promotion label.
	Name() string
	// PayableUnits returns the number of full-price units payable for quantity.
	PayableUnits(quantity int) float64
}

// HalfOffPairs prices the second item of every identical pair at half price.
// An odd leftover item is full price.
type HalfOffPairs struct {
	Label string
}

func (p HalfOffPairs) Name() string { return p.Label }

func (p HalfOffPairs) PayableUnits(quantity int) float64 {
	halfPrice := quantity / 2
	fullPrice := quantity - halfPrice
	return float64(fullPrice) + float64(halfPrice)*0.5
}

// ThirdFree makes every third unit free.
type ThirdFree struct {
	Label string
}

func (p ThirdFree) Name() string { return p.Label }

func (p ThirdFree) PayableUnits(quantity int) float64 {
	return float64(quantity - quantity/3)
}

// PercentOff applies a uniform percentage discount to every unit.
type PercentOff struct {
	Label   string
	Percent float64
}

func (p PercentOff) Name() string { return p.Label }

func (p PercentOff) PayableUnits(quantity int) float64 {
	return float64(quantity) * (100 - p.Percent) / 100
}
