package models

import (
	"crypto/rand"
	"fmt"
)

// orderIDCharset is uppercase alphanumeric; order IDs are cosmetic display
// tokens with no uniqueness guarantee.
const orderIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultOrderIDLength matches the receipt format: 9 characters.
const DefaultOrderIDLength = 9

// IDGenerator produces order identifiers for receipts. It is injected into
// the Builder so tests can supply a deterministic generator.
type IDGenerator interface {
	NewOrderID() string
}

// RandomIDGenerator produces fixed-length uppercase alphanumeric tokens from
// crypto/rand.
type RandomIDGenerator struct {
	Length int
}

// NewOrderID returns a fresh random token. A zero or negative Length falls
// back to DefaultOrderIDLength.
func (g RandomIDGenerator) NewOrderID() string {
	length := g.Length
	if length <= 0 {
		length = DefaultOrderIDLength
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in much deeper trouble
		// than a cosmetic token; surface it loudly.
		panic(fmt.Sprintf("order id generation: %v", err))
	}
	for i, b := range buf {
		buf[i] = orderIDCharset[int(b)%len(orderIDCharset)]
	}
	return string(buf)
}
