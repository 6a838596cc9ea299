package httpclient

import (
	"net"
	"net/http"
	"time"
)

// Config holds the settings shared by every outbound HTTP integration.
// Per-call deadlines are set through the request context; Timeout is an
// upper bound for calls made without one.
type Config struct {
	Timeout   time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"15s"`
	UserAgent string        `env:"HTTP_CLIENT_USER_AGENT" envDefault:"btcpulse/1.0"`
}

// New returns an *http.Client with a pooled transport that sets the
// configured User-Agent on requests which do not carry one.
func New(cfg Config) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ExpectContinueTimeout: time.Second,
	}

	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &userAgentTransport{next: transport, userAgent: cfg.UserAgent},
	}
}

type userAgentTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.next.RoundTrip(req)
}
