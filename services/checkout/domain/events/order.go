package events

import (
	"time"

	"github.com/google/uuid"

	catalogmodels "github.com/ghuser/storefront/services/catalog/domain/models"
)

// TopicOrderCompleted is the topic published when a checkout commits.
const TopicOrderCompleted = "order.completed"

// OrderCompletedEvent is published after an order is committed against the
// store. Consumers subscribe via EventBus.Subscribe(ctx, events.TopicOrderCompleted).
type OrderCompletedEvent struct {
	EventID    uuid.UUID                 `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int                       `json:"version"`  // Schema version; increment on breaking changes
	OrderID    string                    `json:"order_id"`
	Lines      []catalogmodels.OrderLine `json:"lines"`
	Total      float64                   `json:"total"`
	OccurredAt time.Time                 `json:"occurred_at"`
}
