package models

import (
	"fmt"
	"time"

	catalogmodels "github.com/ghuser/storefront/services/catalog/domain/models"
	checkoutdomain "github.com/ghuser/storefront/services/checkout/domain"
)

// State is the phase of one checkout. The machine loops
// Selecting ⇄ Quantifying until the caller finishes or cancels.
type State int

const (
	// StateSelecting awaits a 1-based product index, a cancel, or a finish.
	StateSelecting State = iota
	// StateQuantifying awaits a quantity for the selected product.
	StateQuantifying
	// StateCompleted is terminal; the accumulated lines are ready to commit.
	StateCompleted
	// StateCancelled is terminal; all accumulated lines were discarded.
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateQuantifying:
		return "quantifying"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// DefaultPolicyCeiling caps the per-order quantity of unlimited-stock
// products when no explicit ceiling is configured.
const DefaultPolicyCeiling = 10000

// Builder accumulates one order against a store. It owns the transient line
// list for the session: selections merge into existing lines by product name,
// quantity requests are validated against live stock, per-order limits, and
// the unlimited-item policy ceiling, and nothing touches store inventory
// until Commit. Recoverable validation failures leave the machine in place so
// the caller can re-prompt indefinitely.
//
// A Builder is not safe for concurrent use; the owning session serializes
// access.
type Builder struct {
	store    *catalogmodels.Store
	products []*catalogmodels.Product // active snapshot, display order
	lines    []catalogmodels.OrderLine
	state    State
	selected *catalogmodels.Product
	ceiling  int
	idgen    IDGenerator
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithPolicyCeiling sets the per-order maximum for unlimited-stock products.
func WithPolicyCeiling(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.ceiling = n
		}
	}
}

// WithIDGenerator injects the order-identifier generator used by Commit.
func WithIDGenerator(g IDGenerator) BuilderOption {
	return func(b *Builder) {
		if g != nil {
			b.idgen = g
		}
	}
}

// NewBuilder starts a checkout over the store's currently active products.
// The active list is snapshotted once so display indexes stay stable for the
// whole session.
func NewBuilder(store *catalogmodels.Store, opts ...BuilderOption) *Builder {
	active, _ := store.ListActive()
	b := &Builder{
		store:    store,
		products: active,
		state:    StateSelecting,
		ceiling:  DefaultPolicyCeiling,
		idgen:    RandomIDGenerator{Length: DefaultOrderIDLength},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// State returns the current phase.
func (b *Builder) State() State { return b.state }

// Products returns the selectable products in display order (1-based for
// selection).
func (b *Builder) Products() []*catalogmodels.Product { return b.products }

// Selected returns the product awaiting a quantity, or nil.
func (b *Builder) Selected() *catalogmodels.Product { return b.selected }

// Lines returns a copy of the accumulated order lines in insertion order.
func (b *Builder) Lines() []catalogmodels.OrderLine {
	out := make([]catalogmodels.OrderLine, len(b.lines))
	copy(out, b.lines)
	return out
}

// Select picks a product by 1-based display index and moves to Quantifying.
// Selecting again while Quantifying replaces the pending selection, which
// lets stateless callers (one HTTP request per item) retry cleanly.
func (b *Builder) Select(index int) error {
	if b.state != StateSelecting && b.state != StateQuantifying {
		return fmt.Errorf("%w: cannot select in state %s", checkoutdomain.ErrInvalidTransition, b.state)
	}
	if index < 1 || index > len(b.products) {
		return fmt.Errorf("%w: product #%d is not on the list", checkoutdomain.ErrInvalidSelection, index)
	}
	b.selected = b.products[index-1]
	b.state = StateQuantifying
	return nil
}

// Allowance returns how many more units of the selected product this order
// may still take: remaining stock minus what the order already holds for
// stocked products, additionally capped by the per-order limit for
// limit-capped products, and the policy ceiling minus what the order already
// holds for unlimited products.
func (b *Builder) Allowance() int {
	if b.selected == nil {
		return 0
	}
	accumulated := b.accumulated(b.selected.Name())
	var allowance int
	switch b.selected.Kind() {
	case catalogmodels.KindUnlimited:
		allowance = b.ceiling - accumulated
	case catalogmodels.KindLimitCapped:
		allowance = b.selected.Quantity() - accumulated
		if remaining := b.selected.Limit() - accumulated; remaining < allowance {
			allowance = remaining
		}
	default:
		allowance = b.selected.Quantity() - accumulated
	}
	if allowance < 0 {
		return 0
	}
	return allowance
}

// RequestQuantity validates quantity for the selected product and merges it
// into the order, returning to Selecting. Failures are recoverable: the
// machine stays in Quantifying and the caller re-prompts.
//
// The per-order limit of a limit-capped product is checked before stock, so
// an over-limit request is rejected with ErrLimitExceeded even when plenty of
// stock remains.
func (b *Builder) RequestQuantity(quantity int) error {
	if b.state != StateQuantifying || b.selected == nil {
		return fmt.Errorf("%w: no product selected", checkoutdomain.ErrInvalidTransition)
	}
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", checkoutdomain.ErrInvalidQuantity)
	}

	accumulated := b.accumulated(b.selected.Name())

	if b.selected.Kind() == catalogmodels.KindLimitCapped {
		if accumulated+quantity > b.selected.Limit() {
			return fmt.Errorf("%w: %s is limited to %d per order",
				checkoutdomain.ErrLimitExceeded, b.selected.Name(), b.selected.Limit())
		}
	}

	if allowance := b.Allowance(); quantity > allowance {
		return fmt.Errorf("%w: only %d more units of %s are available for this order",
			checkoutdomain.ErrInvalidQuantity, allowance, b.selected.Name())
	}

	b.mergeLine(b.selected.Name(), quantity)
	b.selected = nil
	b.state = StateSelecting
	return nil
}

// Finish completes the order with the lines accumulated so far.
func (b *Builder) Finish() {
	if b.state == StateSelecting || b.state == StateQuantifying {
		b.selected = nil
		b.state = StateCompleted
	}
}

// Cancel aborts the whole order, discarding every accumulated line. Store
// inventory is untouched.
func (b *Builder) Cancel() {
	if b.state == StateSelecting || b.state == StateQuantifying {
		b.selected = nil
		b.lines = nil
		b.state = StateCancelled
	}
}

// Commit buys the accumulated lines against the store and returns the
// receipt. It may only be called once the checkout is Completed. An empty
// order commits nothing and yields a nil receipt. A Buy failure during
// commit (which the pre-checks are designed to prevent) aborts remaining
// lines without rolling back earlier ones.
func (b *Builder) Commit() (*Receipt, error) {
	if b.state != StateCompleted {
		return nil, fmt.Errorf("%w: cannot commit in state %s", checkoutdomain.ErrInvalidTransition, b.state)
	}
	if len(b.lines) == 0 {
		return nil, nil
	}
	total, soldOut, err := b.store.CommitOrder(b.lines)
	if err != nil {
		return nil, err
	}
	return &Receipt{
		OrderID:  b.idgen.NewOrderID(),
		Lines:    b.Lines(),
		Total:    total,
		SoldOut:  soldOut,
		PlacedAt: time.Now().UTC(),
	}, nil
}

func (b *Builder) accumulated(name string) int {
	for _, line := range b.lines {
		if line.Name == name {
			return line.Quantity
		}
	}
	return 0
}

func (b *Builder) mergeLine(name string, quantity int) {
	for i, line := range b.lines {
		if line.Name == name {
			b.lines[i].Quantity += quantity
			return
		}
	}
	b.lines = append(b.lines, catalogmodels.OrderLine{Name: name, Quantity: quantity})
}
