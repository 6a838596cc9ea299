package pricefeed

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Extractor pulls the price out of a decoded JSON document.
type Extractor func(doc any) (decimal.Decimal, error)

// Provider describes one upstream price source.
type Provider struct {
	Name    string
	URL     string
	Headers map[string]string
	Timeout time.Duration // zero uses Config.ProviderTimeout
	Extract Extractor
}

func (p Provider) validate() error {
	if p.Name == "" || p.URL == "" || p.Extract == nil {
		return fmt.Errorf("%w: %q", ErrInvalidProvider, p.Name)
	}
	return nil
}

// FieldPath returns an Extractor that follows object keys and reads the
// value found there. Numbers and numeric strings are accepted.
func FieldPath(keys ...string) Extractor {
	path := strings.Join(keys, ".")
	return func(doc any) (decimal.Decimal, error) {
		cur := doc
		for _, key := range keys {
			obj, ok := cur.(map[string]any)
			if !ok {
				return decimal.Zero, fmt.Errorf("%w: %s", ErrFieldMissing, path)
			}
			if cur, ok = obj[key]; !ok || cur == nil {
				return decimal.Zero, fmt.Errorf("%w: %s", ErrFieldMissing, path)
			}
		}
		return toDecimal(cur, path)
	}
}

func toDecimal(v any, path string) (decimal.Decimal, error) {
	switch val := v.(type) {
	case json.Number:
		return parseDecimal(val.String(), path)
	case string:
		return parseDecimal(strings.TrimSpace(val), path)
	case float64:
		return decimal.NewFromFloat(val), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %s has type %T", ErrFieldNotNumeric, path, v)
	}
}

func parseDecimal(s, path string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s=%q", ErrFieldNotNumeric, path, s)
	}
	return d, nil
}

// DefaultProviders is the built-in provider order.
func DefaultProviders() []Provider {
	return []Provider{
		{
			Name:    "CoinGecko",
			URL:     "https://api.coingecko.com/api/v3/simple/price?ids=bitcoin&vs_currencies=usd",
			Extract: FieldPath("bitcoin", "usd"),
		},
		{
			Name:    "Binance",
			URL:     "https://api.binance.com/api/v3/ticker/price?symbol=BTCUSDT",
			Extract: FieldPath("price"),
		},
		{
			Name:    "CoinCap",
			URL:     "https://api.coincap.io/v2/assets/bitcoin",
			Extract: FieldPath("data", "priceUsd"),
		},
		{
			Name:    "Blockchain.com",
			URL:     "https://api.blockchain.com/v3/exchange/tickers/BTC-USD",
			Extract: FieldPath("last_trade_price"),
		},
	}
}
