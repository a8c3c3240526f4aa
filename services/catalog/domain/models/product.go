package models

import (
	"fmt"

	catalogdomain "github.com/ghuser/storefront/services/catalog/domain"
)

// Kind identifies the purchase semantics of a product. The set is closed;
// behavior differences live in case dispatches on Kind rather than in
// overridable hooks.
type Kind int

const (
	// KindStocked is a finite-quantity product that deactivates at zero stock.
	KindStocked Kind = iota
	// KindUnlimited is a product with no physical inventory. Its quantity is
	// pinned at zero as a sentinel and it never deactivates through Buy;
	// per-order volume is bounded by a store-wide policy ceiling enforced by
	// the checkout layer.
	KindUnlimited
	// KindLimitCapped is a stocked product with an independent per-order
	// purchase limit, enforced by the checkout layer rather than by Buy.
	KindLimitCapped
)

func (k Kind) String() string {
	switch k {
	case KindStocked:
		return "stocked"
	case KindUnlimited:
		return "unlimited"
	case KindLimitCapped:
		return "limit-capped"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Product is one catalog entry: name (identity key within the store), unit
// price, quantity on hand, derived active flag, and an optional promotion.
// Products are created at seed time and live for the whole session; the only
// state changes are Buy decrements and the explicit setters.
type Product struct {
	name      string
	price     float64
	quantity  int
	active    bool
	limit     int // per-order cap; meaningful only for KindLimitCapped
	kind      Kind
	promotion Promotion
}

// PurchaseResult is the outcome of a successful (or soft-declined) Buy call.
// Status is human-readable text suitable for direct display.
type PurchaseResult struct {
	Status string
	Price  float64
}

// NewStocked constructs a finite-quantity product. The product starts active
// iff quantity > 0.
func NewStocked(name string, price float64, quantity int) (*Product, error) {
	if err := validateProduct(name, price, quantity); err != nil {
		return nil, err
	}
	return &Product{
		name:     name,
		price:    price,
		quantity: quantity,
		active:   quantity > 0,
		kind:     KindStocked,
	}, nil
}

// NewUnlimited constructs a product without physical inventory. Quantity is
// pinned at zero as a sentinel and the product starts active.
func NewUnlimited(name string, price float64) (*Product, error) {
	if err := validateProduct(name, price, 0); err != nil {
		return nil, err
	}
	return &Product{
		name:   name,
		price:  price,
		active: true,
		kind:   KindUnlimited,
	}, nil
}

// NewLimitCapped constructs a stocked product with a per-order purchase limit.
// The limit must be at least 1.
func NewLimitCapped(name string, price float64, quantity, limit int) (*Product, error) {
	if err := validateProduct(name, price, quantity); err != nil {
		return nil, err
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: per-order limit must be at least 1", catalogdomain.ErrInvalidInput)
	}
	return &Product{
		name:     name,
		price:    price,
		quantity: quantity,
		active:   quantity > 0,
		limit:    limit,
		kind:     KindLimitCapped,
	}, nil
}

func validateProduct(name string, price float64, quantity int) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", catalogdomain.ErrInvalidInput)
	}
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", catalogdomain.ErrInvalidInput)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", catalogdomain.ErrInvalidInput)
	}
	return nil
}

// Name returns the product name.
func (p *Product) Name() string { return p.name }

// Price returns the current unit price.
func (p *Product) Price() float64 { return p.price }

// Quantity returns the units on hand. Unlimited products always report zero.
func (p *Product) Quantity() int { return p.quantity }

// Kind returns the product's purchase-semantics variant.
func (p *Product) Kind() Kind { return p.kind }

// Limit returns the per-order purchase cap. Zero for uncapped variants.
func (p *Product) Limit() int {
	if p.kind != KindLimitCapped {
		return 0
	}
	return p.limit
}

// Promotion returns the attached promotion, or nil.
func (p *Product) Promotion() Promotion { return p.promotion }

// SetPromotion attaches or replaces the product's promotion. A promotion is
// never removed, only replaced.
func (p *Product) SetPromotion(promo Promotion) { p.promotion = promo }

// IsActive reports whether the product can currently be purchased.
func (p *Product) IsActive() bool { return p.active }

// Activate marks the product purchasable again.
func (p *Product) Activate() { p.active = true }

// Deactivate takes the product off sale. For unlimited products this is the
// operator's "out of service" switch; Buy never triggers it.
func (p *Product) Deactivate() { p.active = false }

// SetPrice updates the unit price, rejecting negative values.
func (p *Product) SetPrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", catalogdomain.ErrInvalidInput)
	}
	p.price = price
	return nil
}

// SetQuantity replaces the units on hand, reactivating at > 0 and
// deactivating at zero. Unlimited products keep their zero sentinel and stay
// active regardless of the value passed.
func (p *Product) SetQuantity(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", catalogdomain.ErrInvalidInput)
	}
	if p.kind == KindUnlimited {
		p.quantity = 0
		return nil
	}
	p.quantity = quantity
	p.active = quantity > 0
	return nil
}

// SetLimit replaces the per-order cap of a limit-capped product.
func (p *Product) SetLimit(limit int) error {
	if p.kind != KindLimitCapped {
		return fmt.Errorf("%w: %s has no per-order limit", catalogdomain.ErrInvalidInput, p.name)
	}
	if limit < 1 {
		return fmt.Errorf("%w: per-order limit must be at least 1", catalogdomain.ErrInvalidInput)
	}
	p.limit = limit
	return nil
}

// Buy purchases quantity units and returns the status text plus the computed
// line price (promotional when a promotion is attached, linear otherwise).
//
// Stocked and limit-capped products: an inactive product soft-declines with an
// out-of-stock status and zero price; asking for more than the units on hand
// fails with ErrInsufficientQuantity and deducts nothing; buying the last
// units deactivates the product. Unlimited products never run out — they
// soft-decline only when an operator has deactivated them.
//
// The per-order limit of limit-capped products is deliberately NOT checked
// here; the checkout layer enforces it before committing.
func (p *Product) Buy(quantity int) (PurchaseResult, error) {
	if !p.active {
		return PurchaseResult{Status: p.inactiveStatus()}, nil
	}

	if p.kind != KindUnlimited {
		if quantity > p.quantity {
			return PurchaseResult{}, fmt.Errorf(
				"%w: the %s has insufficient quantity available", catalogdomain.ErrInsufficientQuantity, p.name)
		}
		p.quantity -= quantity
	}

	price := p.price * float64(quantity)
	if p.promotion != nil {
		price = p.price * p.promotion.PayableUnits(quantity)
	}

	status := fmt.Sprintf("Purchased %d units of %s.", quantity, p.name)
	if p.kind != KindUnlimited && p.quantity == 0 {
		p.active = false
		status = fmt.Sprintf("Purchased %d units of %s. %s is out of stock.", quantity, p.name, p.name)
	}
	return PurchaseResult{Status: status, Price: price}, nil
}

func (p *Product) inactiveStatus() string {
	if p.kind == KindUnlimited {
		return fmt.Sprintf("%s is out of service right now, contact customer service to reactivate it.", p.name)
	}
	return fmt.Sprintf("%s is out of stock.", p.name)
}

// DisplayQuantity renders the quantity for listings: the unit count for
// stocked variants, "Unlimited" for non-stocked products.
func (p *Product) DisplayQuantity() string {
	if p.kind == KindUnlimited {
		return "Unlimited"
	}
	return fmt.Sprintf("%d", p.quantity)
}

// Describe returns the catalog listing line for the product.
func (p *Product) Describe() string {
	promoName := "None"
	if p.promotion != nil {
		promoName = p.promotion.Name()
	}
	if p.kind == KindLimitCapped {
		return fmt.Sprintf("%s, Price: $%g, Quantity: %s, Limited to %d per order, Promotion: %s",
			p.name, p.price, p.DisplayQuantity(), p.limit, promoName)
	}
	return fmt.Sprintf("%s, Price: $%g, Quantity: %s, Promotion: %s",
		p.name, p.price, p.DisplayQuantity(), promoName)
}
