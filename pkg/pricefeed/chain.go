package pricefeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/btcpulse/pkg/logger"
)

const maxResponseBytes = 1 << 20

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=pricefeed_test -destination=mock_http_client_test.go -source=chain.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Chain queries providers in order and returns the first usable price.
// It holds no per-call state and is safe for concurrent use.
type Chain struct {
	providers []Provider
	client    HTTPClient
	timeout   time.Duration
	fallback  decimal.Decimal
	jitter    decimal.Decimal
	logger    *slog.Logger
	now       func() time.Time
	random    func() float64
}

// Option configures a Chain.
type Option func(*Chain)

// WithProviders replaces the provider list.
func WithProviders(providers ...Provider) Option {
	return func(c *Chain) { c.providers = providers }
}

func WithHTTPClient(client HTTPClient) Option {
	return func(c *Chain) {
		if client != nil {
			c.client = client
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Chain) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock overrides the quote timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Chain) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRandom overrides the [0,1) source used for fallback jitter.
func WithRandom(random func() float64) Option {
	return func(c *Chain) {
		if random != nil {
			c.random = random
		}
	}
}

// New builds a Chain. The provider list comes from cfg.ProvidersFile when
// set, otherwise DefaultProviders; WithProviders overrides both.
func New(cfg Config, opts ...Option) (*Chain, error) {
	fallback, err := decimal.NewFromString(cfg.FallbackPrice)
	if err != nil || !fallback.IsPositive() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFallback, cfg.FallbackPrice)
	}

	c := &Chain{
		client:   http.DefaultClient,
		timeout:  cfg.ProviderTimeout,
		fallback: fallback,
		jitter:   decimal.NewFromFloat(cfg.FallbackJitter).Abs(),
		logger:   slog.Default(),
		now:      func() time.Time { return time.Now().UTC() },
		random:   rand.Float64,
	}
	if c.timeout <= 0 {
		c.timeout = 5 * time.Second
	}

	if cfg.ProvidersFile != "" {
		if c.providers, err = LoadProviders(cfg.ProvidersFile); err != nil {
			return nil, err
		}
	} else {
		c.providers = DefaultProviders()
	}

	for _, opt := range opts {
		opt(c)
	}

	for _, p := range c.providers {
		if err := p.validate(); err != nil {
			return nil, err
		}
	}

	c.logger = c.logger.With(logger.Component("pricefeed"))
	return c, nil
}

// Providers returns the names of the configured providers in query order.
func (c *Chain) Providers() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name
	}
	return names
}

// Fetch returns the price from the first provider that answers in time with
// a usable value. Failures are logged and skipped; when every provider fails
// the static fallback is returned. Fetch never fails.
func (c *Chain) Fetch(ctx context.Context) Quote {
	for _, p := range c.providers {
		if ctx.Err() != nil {
			break
		}

		start := time.Now()
		price, err := c.query(ctx, p)
		if err != nil {
			c.logger.WarnContext(ctx, "price provider failed",
				logger.Provider(p.Name),
				logger.Duration(time.Since(start)),
				logger.Error(err),
			)
			continue
		}

		return Quote{
			Price:     price.StringFixed(2),
			Currency:  Currency,
			Source:    p.Name,
			Timestamp: c.now(),
		}
	}

	c.logger.WarnContext(ctx, "all price providers failed, serving fallback")
	return c.fallbackQuote()
}

func (c *Chain) query(ctx context.Context, p Provider) (decimal.Decimal, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return decimal.Zero, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return decimal.Zero, errors.Join(ErrDecodeResponse, err)
	}

	price, err := p.Extract(doc)
	if err != nil {
		return decimal.Zero, err
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidPrice, price)
	}
	return price, nil
}

func (c *Chain) fallbackQuote() Quote {
	price := c.fallback
	if c.jitter.IsPositive() {
		// uniform in [-jitter%, +jitter%)
		factor := decimal.NewFromFloat(c.random()*2 - 1)
		offset := c.fallback.Mul(c.jitter).Div(decimal.NewFromInt(100)).Mul(factor)
		price = price.Add(offset)
	}
	return Quote{
		Price:     price.StringFixed(2),
		Currency:  Currency,
		Source:    FallbackSource,
		Timestamp: c.now(),
	}
}
