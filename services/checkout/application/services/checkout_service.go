package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	pkgevents "github.com/ghuser/storefront/pkg/events"
	"github.com/ghuser/storefront/pkg/logger"
	catalogevents "github.com/ghuser/storefront/services/catalog/domain/events"
	catalogmodels "github.com/ghuser/storefront/services/catalog/domain/models"
	checkoutdomain "github.com/ghuser/storefront/services/checkout/domain"
	checkoutevents "github.com/ghuser/storefront/services/checkout/domain/events"
	"github.com/ghuser/storefront/services/checkout/domain/models"
)

// ProductChoice is one selectable catalog entry with its 1-based index.
type ProductChoice struct {
	Index       int     `json:"index"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    string  `json:"quantity"`
	Description string  `json:"description"`
}

// CheckoutView is the client-facing snapshot of one in-flight checkout.
type CheckoutView struct {
	State     string                    `json:"state"`
	Products  []ProductChoice           `json:"products"`
	Lines     []catalogmodels.OrderLine `json:"lines"`
	ExpiresAt time.Time                 `json:"expires_at"`
}

type checkoutSession struct {
	builder   *models.Builder
	expiresAt time.Time
}

// CheckoutService manages in-flight checkouts keyed by an opaque token. Each
// token owns one order Builder; the service serializes all access to it.
// Abandoned checkouts expire after a TTL and are reaped by the sweeper.
//
// Committing an order publishes OrderCompletedEvent, plus one
// ProductSoldOutEvent per product the order drained.
type CheckoutService struct {
	store *catalogmodels.Store
	bus   *pkgevents.EventBus
	log   logger.Logger

	mu       sync.Mutex
	sessions map[string]*checkoutSession

	ttl      time.Duration
	ceiling  int
	idLength int

	ordersCompleted metric.Int64Counter
	ordersCancelled metric.Int64Counter
	orderValue      metric.Float64Counter
	unitsSold       metric.Int64Counter
}

// NewCheckoutService returns a CheckoutService over the given store and bus.
// ttl bounds how long an untouched checkout survives; ceiling caps per-order
// quantities of unlimited-stock products; idLength sizes generated order ids.
func NewCheckoutService(store *catalogmodels.Store, bus *pkgevents.EventBus, log logger.Logger, ttl time.Duration, ceiling, idLength int) *CheckoutService {
	meter := otel.Meter("storefront/checkout")
	ordersCompleted, _ := meter.Int64Counter("checkout_orders_completed_total",
		metric.WithDescription("Orders committed successfully"))
	ordersCancelled, _ := meter.Int64Counter("checkout_orders_cancelled_total",
		metric.WithDescription("Checkouts cancelled before commit"))
	orderValue, _ := meter.Float64Counter("checkout_order_value_total",
		metric.WithDescription("Cumulative value of committed orders"))
	unitsSold, _ := meter.Int64Counter("checkout_units_sold_total",
		metric.WithDescription("Units sold across committed orders"))

	return &CheckoutService{
		store:           store,
		bus:             bus,
		log:             log,
		sessions:        make(map[string]*checkoutSession),
		ttl:             ttl,
		ceiling:         ceiling,
		idLength:        idLength,
		ordersCompleted: ordersCompleted,
		ordersCancelled: ordersCancelled,
		orderValue:      orderValue,
		unitsSold:       unitsSold,
	}
}

// Start opens a new checkout and returns its token and initial view.
func (s *CheckoutService) Start(ctx context.Context) (string, *CheckoutView, error) {
	builder := models.NewBuilder(s.store,
		models.WithPolicyCeiling(s.ceiling),
		models.WithIDGenerator(models.RandomIDGenerator{Length: s.idLength}),
	)
	token := uuid.NewString()

	s.mu.Lock()
	s.sessions[token] = &checkoutSession{
		builder:   builder,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	s.log.InfoContext(ctx, "checkout started", "token", token)
	return token, viewOf(builder, time.Now().Add(s.ttl)), nil
}

// Get returns the current view of the checkout identified by token.
func (s *CheckoutService) Get(_ context.Context, token string) (*CheckoutView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(token)
	if err != nil {
		return nil, err
	}
	return viewOf(sess.builder, sess.expiresAt), nil
}

// AddItem selects the product at the 1-based index and requests quantity
// units of it, merging into any existing line for the same product. A
// validation failure leaves the checkout untouched so the caller can retry.
func (s *CheckoutService) AddItem(ctx context.Context, token string, index, quantity int) (*CheckoutView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(token)
	if err != nil {
		return nil, err
	}
	if err := sess.builder.Select(index); err != nil {
		return nil, err
	}
	if err := sess.builder.RequestQuantity(quantity); err != nil {
		return nil, err
	}
	sess.expiresAt = time.Now().Add(s.ttl)

	s.log.InfoContext(ctx, "item added to checkout",
		"token", token, "index", index, "quantity", quantity)
	return viewOf(sess.builder, sess.expiresAt), nil
}

// Complete finishes the checkout and commits it against the store. The token
// is consumed either way. A nil receipt with nil error means the checkout was
// empty and nothing was purchased.
func (s *CheckoutService) Complete(ctx context.Context, token string) (*models.Receipt, error) {
	s.mu.Lock()
	sess, err := s.lookup(token)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	delete(s.sessions, token)
	sess.builder.Finish()
	receipt, err := sess.builder.Commit()
	s.mu.Unlock()

	if err != nil {
		s.log.ErrorContext(ctx, "order commit failed", "token", token, "error", err)
		return nil, fmt.Errorf("commit order: %w", err)
	}
	if receipt == nil {
		s.log.InfoContext(ctx, "empty checkout completed", "token", token)
		return nil, nil
	}

	s.recordCommit(ctx, receipt)
	s.publishOrderCompleted(ctx, receipt)
	s.publishSoldOut(ctx, receipt)

	s.log.InfoContext(ctx, "order committed",
		"order_id", receipt.OrderID, "total", receipt.Total, "lines", len(receipt.Lines))
	return receipt, nil
}

// Cancel aborts the checkout, discarding every accumulated line. Store
// inventory is untouched.
func (s *CheckoutService) Cancel(ctx context.Context, token string) error {
	s.mu.Lock()
	sess, err := s.lookup(token)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	delete(s.sessions, token)
	sess.builder.Cancel()
	s.mu.Unlock()

	s.ordersCancelled.Add(ctx, 1)
	s.log.InfoContext(ctx, "checkout cancelled", "token", token)
	return nil
}

// RunSweeper reaps expired checkouts every interval until ctx is done.
// Run it in its own goroutine.
func (s *CheckoutService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sweep(time.Now()); n > 0 {
				s.log.Info("expired checkouts reaped", "count", n)
			}
		}
	}
}

func (s *CheckoutService) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var reaped int
	for token, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			sess.builder.Cancel()
			delete(s.sessions, token)
			reaped++
		}
	}
	return reaped
}

// lookup must be called with s.mu held. Expired sessions are treated as not
// found and removed eagerly, so a stale token errors even between sweeps.
func (s *CheckoutService) lookup(token string) (*checkoutSession, error) {
	sess, ok := s.sessions[token]
	if !ok {
		return nil, checkoutdomain.ErrCheckoutNotFound
	}
	if time.Now().After(sess.expiresAt) {
		sess.builder.Cancel()
		delete(s.sessions, token)
		return nil, fmt.Errorf("%w: checkout expired", checkoutdomain.ErrCheckoutNotFound)
	}
	return sess, nil
}

func (s *CheckoutService) recordCommit(ctx context.Context, receipt *models.Receipt) {
	s.ordersCompleted.Add(ctx, 1)
	s.orderValue.Add(ctx, receipt.Total)
	var units int64
	for _, line := range receipt.Lines {
		units += int64(line.Quantity)
	}
	s.unitsSold.Add(ctx, units)
}

func (s *CheckoutService) publishOrderCompleted(ctx context.Context, receipt *models.Receipt) {
	event := checkoutevents.OrderCompletedEvent{
		EventID:    uuid.New(),
		Version:    1,
		OrderID:    receipt.OrderID,
		Lines:      receipt.Lines,
		Total:      receipt.Total,
		OccurredAt: receipt.PlacedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.log.ErrorContext(ctx, "marshal order completed event", "error", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	if err := s.bus.Publish(ctx, checkoutevents.TopicOrderCompleted, msg); err != nil {
		s.log.ErrorContext(ctx, "publish order completed event",
			"order_id", receipt.OrderID, "error", err)
	}
}

func (s *CheckoutService) publishSoldOut(ctx context.Context, receipt *models.Receipt) {
	for _, name := range receipt.SoldOut {
		event := catalogevents.ProductSoldOutEvent{
			EventID:    uuid.New(),
			Version:    1,
			Name:       name,
			OrderID:    receipt.OrderID,
			OccurredAt: receipt.PlacedAt,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.log.ErrorContext(ctx, "marshal sold out event", "product", name, "error", err)
			continue
		}
		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.Metadata.Set("event_id", event.EventID.String())
		msg.Metadata.Set("event_version", "1")
		if err := s.bus.Publish(ctx, catalogevents.TopicProductSoldOut, msg); err != nil {
			s.log.ErrorContext(ctx, "publish sold out event", "product", name, "error", err)
		}
	}
}

func viewOf(b *models.Builder, expiresAt time.Time) *CheckoutView {
	products := b.Products()
	choices := make([]ProductChoice, 0, len(products))
	for i, p := range products {
		choices = append(choices, ProductChoice{
			Index:       i + 1,
			Name:        p.Name(),
			Price:       p.Price(),
			Quantity:    p.DisplayQuantity(),
			Description: p.Describe(),
		})
	}
	return &CheckoutView{
		State:     b.State().String(),
		Products:  choices,
		Lines:     b.Lines(),
		ExpiresAt: expiresAt,
	}
}
