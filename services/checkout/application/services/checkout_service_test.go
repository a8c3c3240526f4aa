package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/storefront/pkg/config"
	pkgevents "github.com/ghuser/storefront/pkg/events"
	"github.com/ghuser/storefront/pkg/logger"
	catalogevents "github.com/ghuser/storefront/services/catalog/domain/events"
	catalogmodels "github.com/ghuser/storefront/services/catalog/domain/models"
	checkoutdomain "github.com/ghuser/storefront/services/checkout/domain"
	checkoutevents "github.com/ghuser/storefront/services/checkout/domain/events"
)

func nopLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

func testStore(t *testing.T) *catalogmodels.Store {
	t.Helper()
	laptop, err := catalogmodels.NewStocked("Laptop", 1450, 100)
	if err != nil {
		t.Fatal(err)
	}
	earbuds, err := catalogmodels.NewStocked("Earbuds", 250, 3)
	if err != nil {
		t.Fatal(err)
	}
	shipping, err := catalogmodels.NewLimitCapped("Shipping", 10, 250, 1)
	if err != nil {
		t.Fatal(err)
	}
	return catalogmodels.NewStore(laptop, earbuds, shipping)
}

func newTestService(t *testing.T, store *catalogmodels.Store) (*CheckoutService, *pkgevents.EventBus) {
	t.Helper()
	bus := pkgevents.NewEventBus(nopLogger())
	t.Cleanup(func() { _ = bus.Close() })
	svc := NewCheckoutService(store, bus, nopLogger(), time.Minute, 10000, 9)
	return svc, bus
}

func TestStartGetAddComplete(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	svc, _ := newTestService(t, store)

	token, view, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if view.State != "selecting" {
		t.Fatalf("initial state: got %q", view.State)
	}
	if len(view.Products) != 3 {
		t.Fatalf("products: got %d, want 3", len(view.Products))
	}
	if view.Products[0].Index != 1 {
		t.Errorf("first index: got %d, want 1", view.Products[0].Index)
	}

	view, err = svc.AddItem(ctx, token, 1, 2)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if len(view.Lines) != 1 || view.Lines[0].Quantity != 2 {
		t.Fatalf("lines after add: %+v", view.Lines)
	}

	receipt, err := svc.Complete(ctx, token)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if receipt == nil {
		t.Fatal("expected a receipt")
	}
	if receipt.Total != 2900 {
		t.Errorf("total: got %g, want 2900", receipt.Total)
	}
	if got := store.FindByName("Laptop").Quantity(); got != 98 {
		t.Errorf("stock after commit: got %d, want 98", got)
	}

	// Token is consumed by Complete.
	if _, err := svc.Get(ctx, token); !errors.Is(err, checkoutdomain.ErrCheckoutNotFound) {
		t.Errorf("get after complete: got %v, want ErrCheckoutNotFound", err)
	}
}

func TestAddItem_ValidationLeavesCheckoutIntact(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testStore(t))
	token, _, err := svc.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}

	// Shipping is limited to 1 per order.
	if _, err := svc.AddItem(ctx, token, 3, 2); !errors.Is(err, checkoutdomain.ErrLimitExceeded) {
		t.Fatalf("over-limit add: got %v, want ErrLimitExceeded", err)
	}
	// Only 3 earbuds in stock.
	if _, err := svc.AddItem(ctx, token, 2, 5); !errors.Is(err, checkoutdomain.ErrInvalidQuantity) {
		t.Fatalf("over-stock add: got %v, want ErrInvalidQuantity", err)
	}
	if _, err := svc.AddItem(ctx, token, 9, 1); !errors.Is(err, checkoutdomain.ErrInvalidSelection) {
		t.Fatalf("bad index add: got %v, want ErrInvalidSelection", err)
	}

	// The checkout is still usable after every failure.
	view, err := svc.AddItem(ctx, token, 3, 1)
	if err != nil {
		t.Fatalf("valid add after failures: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("lines: %+v", view.Lines)
	}
}

func TestCompleteEmptyCheckout(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	svc, _ := newTestService(t, store)
	token, _, err := svc.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}

	receipt, err := svc.Complete(ctx, token)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if receipt != nil {
		t.Fatalf("expected nil receipt, got %+v", receipt)
	}
	if got := store.TotalQuantity(); got != 353 {
		t.Errorf("inventory changed by empty order: %d", got)
	}
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	svc, _ := newTestService(t, store)
	token, _, err := svc.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddItem(ctx, token, 1, 5); err != nil {
		t.Fatal(err)
	}

	if err := svc.Cancel(ctx, token); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := store.FindByName("Laptop").Quantity(); got != 100 {
		t.Errorf("stock after cancel: got %d, want 100", got)
	}
	if err := svc.Cancel(ctx, token); !errors.Is(err, checkoutdomain.ErrCheckoutNotFound) {
		t.Errorf("double cancel: got %v, want ErrCheckoutNotFound", err)
	}
}

func TestExpiredCheckoutIsReaped(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	bus := pkgevents.NewEventBus(nopLogger())
	t.Cleanup(func() { _ = bus.Close() })
	svc := NewCheckoutService(store, bus, nopLogger(), time.Nanosecond, 10000, 9)

	token, _, err := svc.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)

	if _, err := svc.Get(ctx, token); !errors.Is(err, checkoutdomain.ErrCheckoutNotFound) {
		t.Fatalf("expired get: got %v, want ErrCheckoutNotFound", err)
	}
	if n := svc.sweep(time.Now()); n != 0 {
		t.Errorf("sweep after eager reap: got %d, want 0", n)
	}
}

func TestCompletePublishesEvents(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store := testStore(t)
	svc, bus := newTestService(t, store)

	orderEvents := make(chan checkoutevents.OrderCompletedEvent, 1)
	if _, err := bus.Subscribe(ctx, checkoutevents.TopicOrderCompleted, func(_ context.Context, msg *message.Message) error {
		var ev checkoutevents.OrderCompletedEvent
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			return err
		}
		orderEvents <- ev
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	soldOutEvents := make(chan catalogevents.ProductSoldOutEvent, 1)
	if _, err := bus.Subscribe(ctx, catalogevents.TopicProductSoldOut, func(_ context.Context, msg *message.Message) error {
		var ev catalogevents.ProductSoldOutEvent
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			return err
		}
		soldOutEvents <- ev
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	token, _, err := svc.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	// Buying all 3 earbuds drains the product.
	if _, err := svc.AddItem(ctx, token, 2, 3); err != nil {
		t.Fatal(err)
	}
	receipt, err := svc.Complete(ctx, token)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	select {
	case ev := <-orderEvents:
		if ev.OrderID != receipt.OrderID {
			t.Errorf("order id: got %q, want %q", ev.OrderID, receipt.OrderID)
		}
		if ev.Total != 750 {
			t.Errorf("total: got %g, want 750", ev.Total)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for order completed event")
	}

	select {
	case ev := <-soldOutEvents:
		if ev.Name != "Earbuds" {
			t.Errorf("sold out product: got %q, want Earbuds", ev.Name)
		}
		if ev.OrderID != receipt.OrderID {
			t.Errorf("sold out order id: got %q, want %q", ev.OrderID, receipt.OrderID)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for sold out event")
	}
}
