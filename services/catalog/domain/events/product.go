package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicProductSoldOut is the topic published when a committed order drains a
// product's remaining stock.
const TopicProductSoldOut = "product.sold_out"

// ProductSoldOutEvent is published after a product deactivates at zero stock.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicProductSoldOut).
type ProductSoldOutEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	Name       string    `json:"name"`
	OrderID    string    `json:"order_id"` // order that drained the stock
	OccurredAt time.Time `json:"occurred_at"`
}
