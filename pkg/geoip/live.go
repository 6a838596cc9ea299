package geoip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPClient is the subset of *http.Client used by Live.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Live queries an ip-api.com compatible service.
type Live struct {
	baseURL string
	client  HTTPClient
	timeout time.Duration
}

// NewLive creates a live Locator. The timeout is clamped to MaxLiveTimeout;
// zero selects MaxLiveTimeout.
func NewLive(baseURL string, client HTTPClient, timeout time.Duration) *Live {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 || timeout > MaxLiveTimeout {
		timeout = MaxLiveTimeout
	}
	return &Live{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		timeout: timeout,
	}
}

type liveResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	CountryCode string `json:"countryCode"`
	Region      string `json:"region"`
	City        string `json:"city"`
}

// Lookup calls GET {base}/json/{ip}. The call runs under the client's own
// deadline, which applies in addition to any deadline already on ctx.
func (l *Live) Lookup(ctx context.Context, ip string) (Location, error) {
	if ip == "" {
		return Location{}, ErrInvalidIP
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/json/%s?fields=status,message,countryCode,region,city", l.baseURL, url.PathEscape(ip))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Location{}, errors.Join(ErrLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return Location{}, errors.Join(ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Location{}, fmt.Errorf("%w: status %d", ErrLookupFailed, resp.StatusCode)
	}

	var body liveResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err != nil {
		return Location{}, errors.Join(ErrLookupFailed, err)
	}
	if body.Status != "success" {
		return Location{}, fmt.Errorf("%w: %s", ErrNotFound, body.Message)
	}

	return Location{
		Country: body.CountryCode,
		Region:  body.Region,
		City:    body.City,
	}, nil
}
