package account

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/btcpulse/pkg/auth"
	"github.com/dmitrymomot/btcpulse/pkg/enrich"
	"github.com/dmitrymomot/btcpulse/pkg/pricefeed"
	"github.com/dmitrymomot/btcpulse/pkg/ratelimiter"
)

// Enricher describes the requesting client.
type Enricher interface {
	FromRequest(r *http.Request) enrich.ClientDescriptor
}

// PriceSource returns the current BTC/USD quote. It must not fail.
type PriceSource interface {
	Fetch(ctx context.Context) pricefeed.Quote
}

// Module serves the account API: registration, login, the BTC price and
// the admin user listing.
type Module struct {
	auth     *auth.Service
	enricher Enricher
	prices   PriceSource
	limiter  ratelimiter.RateLimiter
	logger   *slog.Logger
}

type Option func(*Module)

// WithLoginLimiter throttles POST /login per client IP. Store failures let
// the request through.
func WithLoginLimiter(l ratelimiter.RateLimiter) Option {
	return func(m *Module) { m.limiter = l }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.logger = l
		}
	}
}

func New(svc *auth.Service, enricher Enricher, prices PriceSource, opts ...Option) *Module {
	m := &Module{
		auth:     svc,
		enricher: enricher,
		prices:   prices,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Handle returns the module router. Mount it under /api/auth:
//
//	r.Mount("/api/auth", account.New(authSvc, enricher, prices).Handle())
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/register", m.registerHandler())

	r.Group(func(r chi.Router) {
		if m.limiter != nil {
			r.Use(ratelimiter.Middleware(m.limiter,
				ratelimiter.Composite(ratelimiter.Static("login"), ratelimiter.ByIP),
				ratelimiter.WithLimitedHandler(m.loginLimited),
				ratelimiter.WithFailOpen(m.limiterFailed),
			))
		}
		r.Post("/login", m.loginHandler())
	})

	r.Get("/btc-price", m.priceHandler())

	r.Group(func(r chi.Router) {
		r.Use(m.requireToken)
		admin := m.adminUsersHandler()
		r.Get("/admin/users", admin)
		r.Post("/admin/users", admin)
	})

	return r
}
