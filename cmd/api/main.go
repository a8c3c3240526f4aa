package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ghuser/storefront/pkg/app"
	"github.com/ghuser/storefront/pkg/config"
	"github.com/ghuser/storefront/pkg/events"
	"github.com/ghuser/storefront/pkg/httpx"
	"github.com/ghuser/storefront/pkg/logger"
	"github.com/ghuser/storefront/pkg/session"
	"github.com/ghuser/storefront/pkg/telemetry"
	catalogAPI "github.com/ghuser/storefront/services/catalog/application/api"
	catalogEvents "github.com/ghuser/storefront/services/catalog/domain/events"
	"github.com/ghuser/storefront/services/catalog/infrastructure/seed"
	checkoutAPI "github.com/ghuser/storefront/services/checkout/application/api"
	checkoutEvents "github.com/ghuser/storefront/services/checkout/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional — log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	eventBus := events.NewEventBus(log)
	defer eventBus.Close() //nolint:errcheck

	catalog := seed.DefaultCatalog()
	_, active := catalog.ListActive()
	log.Info("catalog seeded", "active_products", active, "total_units", catalog.TotalQuantity())

	sessionStore := session.NewMemoryStore(
		[]byte(cfg.SessionAuthKey),
		[]byte(cfg.SessionEncryptionKey),
		cfg.Environment == config.EnvProduction,
	)
	log.Info("session store initialized", "backend", "memory")

	appConfig := &app.Application{
		Config:       cfg,
		Logger:       log,
		EventBus:     eventBus,
		Catalog:      catalog,
		SessionStore: sessionStore,
	}

	// The event bus is in-process, so subscribers run in this process too.
	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	sweepCtx, cancelSweep := context.WithCancel(ctx)
	defer cancelSweep()

	r.Get("/health", httpx.HealthHandler(httpx.HealthChecks{
		EventBus: eventBus,
	}))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Route("/api", func(r chi.Router) {
		catalogAPI.CatalogRoutes(r, appConfig)
		checkoutSvcs := checkoutAPI.CheckoutRoutes(r, appConfig)
		go checkoutSvcs.Checkout.RunSweeper(sweepCtx, time.Minute)
	})

	srv := httpx.NewServer(cfg.ListenAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	topics := map[string]func(context.Context, *message.Message) error{
		checkoutEvents.TopicOrderCompleted: handleOrderCompleted(a),
		catalogEvents.TopicProductSoldOut:  handleProductSoldOut(a),
	}

	for topic, handler := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}
		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string, errCh <-chan error) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic, errCh)
	}

	a.Logger.Info("event subscribers registered",
		"topics", []string{checkoutEvents.TopicOrderCompleted, catalogEvents.TopicProductSoldOut})
	return nil
}

// handleOrderCompleted returns a handler for order.completed events.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
func handleOrderCompleted(a *app.Application) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt checkoutEvents.OrderCompletedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		a.Logger.InfoContext(ctx, "order completed",
			"order_id", evt.OrderID, "total", evt.Total, "lines", len(evt.Lines))
		return nil
	}
}

// handleProductSoldOut returns a handler for product.sold_out events.
// The product has already deactivated itself; this is the restocking signal.
func handleProductSoldOut(a *app.Application) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt catalogEvents.ProductSoldOutEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		a.Logger.WarnContext(ctx, "product sold out, restock needed",
			"product", evt.Name, "order_id", evt.OrderID)
		return nil
	}
}
