package pricefeed

import "time"

const (
	// Currency is the quote currency of every provider.
	Currency = "USD"
	// FallbackSource marks a quote that did not come from any provider.
	FallbackSource = "Static Fallback"
)

// Quote is a BTC/USD price with its origin.
type Quote struct {
	Price     string    `json:"price"` // two fraction digits
	Currency  string    `json:"currency"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// IsFallback reports whether the quote is the static fallback value.
func (q Quote) IsFallback() bool { return q.Source == FallbackSource }
