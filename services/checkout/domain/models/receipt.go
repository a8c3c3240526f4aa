package models

import (
	"fmt"
	"strings"
	"time"

	catalogmodels "github.com/ghuser/storefront/services/catalog/domain/models"
)

// Receipt is the itemized summary of a committed order.
type Receipt struct {
	OrderID  string                    `json:"order_id"`
	Lines    []catalogmodels.OrderLine `json:"lines"`
	Total    float64                   `json:"total"`
	SoldOut  []string                  `json:"sold_out,omitempty"` // products this order drained
	PlacedAt time.Time                 `json:"placed_at"`
}

// Summary renders the receipt as display text: order id header, numbered
// lines with quantities, and the total.
func (r *Receipt) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "  <---- Order #%s Summary ---->\n", r.OrderID)
	b.WriteString(" You have successfully purchased the following:\n")
	for i, line := range r.Lines {
		fmt.Fprintf(&b, "%d. %s - Qty: %d\n", i+1, line.Name, line.Quantity)
	}
	b.WriteString("------------------------------------------\n")
	fmt.Fprintf(&b, "   Total price:         $%g", r.Total)
	return b.String()
}
