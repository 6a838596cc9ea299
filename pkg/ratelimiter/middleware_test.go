package ratelimiter_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/btcpulse/pkg/ratelimiter"
)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (*ratelimiter.Result, error) {
	return nil, ratelimiter.ErrStoreUnavailable
}

func (failingLimiter) AllowN(context.Context, string, int) (*ratelimiter.Result, error) {
	return nil, ratelimiter.ErrStoreUnavailable
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	b, _, _ := newBucket(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})

	var limited bool
	h := ratelimiter.Middleware(b, ratelimiter.ByIP,
		ratelimiter.WithLimitedHandler(func(w http.ResponseWriter, _ *http.Request, res *ratelimiter.Result) {
			limited = true
			assert.False(t, res.Allowed())
			w.WriteHeader(http.StatusTooManyRequests)
		}),
	)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "198.51.100.1:5555"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.True(t, limited)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	other := httptest.NewRequest(http.MethodPost, "/login", nil)
	other.RemoteAddr = "198.51.100.2:5555"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareStoreFailure(t *testing.T) {
	t.Parallel()

	t.Run("fail closed", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		ratelimiter.Middleware(failingLimiter{}, ratelimiter.ByIP)(okHandler()).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("fail open", func(t *testing.T) {
		t.Parallel()
		var reported error
		rec := httptest.NewRecorder()
		ratelimiter.Middleware(failingLimiter{}, ratelimiter.ByIP,
			ratelimiter.WithFailOpen(func(_ *http.Request, err error) { reported = err }),
		)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, errors.Is(reported, ratelimiter.ErrStoreUnavailable))
	})
}

func TestComposite(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:1"

	key := ratelimiter.Composite(ratelimiter.Static("login"), ratelimiter.ByIP)(req)
	assert.Equal(t, "login:203.0.113.9", key)

	empty := ratelimiter.Composite(ratelimiter.Static(""))(req)
	assert.Empty(t, empty)

	long := ratelimiter.Composite(ratelimiter.Static(strings.Repeat("x", 80)), ratelimiter.ByIP)(req)
	require.NotEmpty(t, long)
	assert.LessOrEqual(t, len(long), 13)
}
