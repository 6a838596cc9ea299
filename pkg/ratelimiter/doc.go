// Package ratelimiter implements token bucket rate limiting with an
// in-memory or Redis store and an HTTP middleware.
//
// A bucket holds up to Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each request spends one token; a request finding the
// bucket empty is denied with 429 and a Retry-After header.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     1,
//		RefillInterval: 30 * time.Second,
//	})
//
//	r.With(ratelimiter.Middleware(limiter,
//		ratelimiter.Composite(ratelimiter.Static("login"), ratelimiter.ByIP),
//	)).Post("/login", h)
//
// NewRedisStore runs the same algorithm as a Lua script so that buckets are
// shared by every instance behind a load balancer.
package ratelimiter
