package models

import (
	"fmt"
	"sync"

	catalogdomain "github.com/ghuser/storefront/services/catalog/domain"
)

// OrderLine is one accumulated (product name, quantity) pair within a single
// checkout. Lines are unique by name within an order; insertion order is
// preserved for the receipt.
type OrderLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Store owns the ordered product collection for one shop. Insertion order is
// display order. A single mutex serializes mutation so concurrent checkout
// sessions cannot interleave a Buy's check-and-decrement; a single-session
// caller pays one uncontended lock per call.
type Store struct {
	mu       sync.Mutex
	products []*Product
}

// NewStore builds a store over the given products, keeping their order.
func NewStore(products ...*Product) *Store {
	return &Store{products: products}
}

// Add appends a product to the end of the catalog.
func (s *Store) Add(p *Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
}

// Remove deletes the product from the catalog. Unknown products are ignored.
func (s *Store) Remove(p *Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, candidate := range s.products {
		if candidate == p {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return
		}
	}
}

// Products returns a snapshot of the full catalog in insertion order.
func (s *Store) Products() []*Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Product, len(s.products))
	copy(out, s.products)
	return out
}

// ListActive returns the currently purchasable products in insertion order,
// plus their count. The slice doubles as the addressable index set for order
// selection (1-based on display).
func (s *Store) ListActive() ([]*Product, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var active []*Product
	for _, p := range s.products {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active, len(active)
}

// TotalQuantity sums quantity across all products regardless of active state.
// Unlimited products contribute their zero sentinel, so the total counts
// physical inventory only.
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, p := range s.products {
		total += p.Quantity()
	}
	return total
}

// FindByName returns the product with the given name, or nil if absent.
// Names are not enforced unique; the last match wins.
func (s *Store) FindByName(name string) *Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByName(name)
}

func (s *Store) findByName(name string) *Product {
	for i := len(s.products) - 1; i >= 0; i-- {
		if s.products[i].Name() == name {
			return s.products[i]
		}
	}
	return nil
}

// CommitOrder buys every line against the catalog and returns the order
// total plus the names of products the order sold out. The checkout layer
// validates availability before committing, so failures here are unexpected;
// when one occurs anyway the commit fails fast — remaining lines are not
// bought and lines already bought are not rolled back.
func (s *Store) CommitOrder(lines []OrderLine) (float64, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	var soldOut []string
	for _, line := range lines {
		p := s.findByName(line.Name)
		if p == nil {
			return total, soldOut, fmt.Errorf("%w: %s", catalogdomain.ErrProductNotFound, line.Name)
		}
		wasActive := p.IsActive()
		res, err := p.Buy(line.Quantity)
		if err != nil {
			return total, soldOut, fmt.Errorf("commit %s: %w", line.Name, err)
		}
		total += res.Price
		if wasActive && !p.IsActive() {
			soldOut = append(soldOut, p.Name())
		}
	}
	return total, soldOut, nil
}
