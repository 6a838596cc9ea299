package ratelimiter

import "time"

// Result is the outcome of one bucket check.
type Result struct {
	Limit     int       // bucket capacity
	Remaining int       // negative when the request was denied
	ResetAt   time.Time // next refill
}

func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is zero for allowed results.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

// Config is a token bucket shape. The env tags describe the login throttle.
type Config struct {
	Capacity       int           `env:"LOGIN_RATE_LIMIT_BURST" envDefault:"10"`
	RefillRate     int           `env:"LOGIN_RATE_LIMIT_REFILL" envDefault:"1"`
	RefillInterval time.Duration `env:"LOGIN_RATE_LIMIT_INTERVAL" envDefault:"30s"`
}
