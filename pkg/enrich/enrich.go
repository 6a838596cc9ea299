package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/btcpulse/pkg/clientip"
	"github.com/dmitrymomot/btcpulse/pkg/geoip"
	"github.com/dmitrymomot/btcpulse/pkg/logger"
	"github.com/dmitrymomot/btcpulse/pkg/useragent"
)

//go:generate mockgen -destination=mock_locator_test.go -package=enrich_test github.com/dmitrymomot/btcpulse/pkg/geoip Locator

// Enricher derives a ClientDescriptor from request metadata. It keeps no
// per-request state and is safe for concurrent use.
type Enricher struct {
	cfg     Config
	offline geoip.Locator
	live    geoip.Locator
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithOfflineLocator sets the local geolocation source.
func WithOfflineLocator(l geoip.Locator) Option {
	return func(e *Enricher) {
		if l != nil {
			e.offline = l
		}
	}
}

// WithLiveLocator sets the network geolocation source used when the offline
// lookup has no country. It is ignored unless Config.LiveGeo is set.
func WithLiveLocator(l geoip.Locator) Option {
	return func(e *Enricher) { e.live = l }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Enricher) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Enricher) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an Enricher. Without options it uses no geolocation sources
// and every location field keeps its default.
func New(cfg Config, opts ...Option) *Enricher {
	if cfg.FallbackIP == "" {
		cfg.FallbackIP = "8.8.8.8"
	}
	e := &Enricher{
		cfg:     cfg,
		offline: geoip.Nop{},
		logger:  slog.Default(),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	if !cfg.LiveGeo {
		e.live = nil
	}
	e.logger = e.logger.With(logger.Component("enrich"))
	return e
}

// FromRequest enriches r using its headers and connection address.
func (e *Enricher) FromRequest(r *http.Request) ClientDescriptor {
	return e.Enrich(r.Context(), r.Header, r.RemoteAddr)
}

// Enrich builds the descriptor for a caller. It never fails: missing inputs
// fall back to defaults and any internal failure yields a degraded
// descriptor that still carries the address and raw user agent.
func (e *Enricher) Enrich(ctx context.Context, header http.Header, remoteAddr string) (d ClientDescriptor) {
	now := e.now()
	rawUA := header.Get("User-Agent")

	ip := clientip.FromHeaders(header, remoteAddr)
	if ip == "" {
		ip = e.cfg.FallbackIP
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.ErrorContext(ctx, "enrichment failed",
				logger.ClientIP(ip),
				logger.Error(fmt.Errorf("panic: %v", r)),
			)
			d = degraded(ip, rawUA, now)
		}
	}()

	d = newDescriptor(ip, rawUA, now)
	d.IsLocal = clientip.IsLoopback(ip)

	lookupIP := ip
	if d.IsLocal {
		lookupIP = e.cfg.FallbackIP
	}
	e.locate(ctx, lookupIP, &d)

	parsed, _ := useragent.Parse(rawUA)
	applyBaseline(parsed, &d)
	classify(rawUA, &d)

	return d
}

func (e *Enricher) locate(ctx context.Context, ip string, d *ClientDescriptor) {
	loc, err := e.offline.Lookup(ctx, ip)
	if err != nil && !errors.Is(err, geoip.ErrNotFound) {
		e.logger.DebugContext(ctx, "offline geolocation failed", logger.ClientIP(ip), logger.Error(err))
	}

	if !loc.Found() && e.live != nil {
		remote, err := e.live.Lookup(ctx, ip)
		if err != nil {
			e.logger.WarnContext(ctx, "live geolocation failed", logger.ClientIP(ip), logger.Error(err))
		} else {
			loc.Country, loc.Region, loc.City = remote.Country, remote.Region, remote.City
		}
	}

	if loc.Country != "" {
		d.Country = loc.Country
	}
	if loc.Region != "" {
		d.Region = loc.Region
	}
	if loc.City != "" {
		d.City = loc.City
	}
	if loc.Timezone != "" {
		d.Timezone = loc.Timezone
	}
	if loc.Latitude != 0 || loc.Longitude != 0 {
		d.LL = [2]float64{loc.Latitude, loc.Longitude}
	}
}

func applyBaseline(ua useragent.UserAgent, d *ClientDescriptor) {
	if ua.Browser.Family != useragent.Unknown {
		d.Browser = ua.Browser.Family
		d.BrowserVersion = ua.Browser.Version
	}
	if ua.OS.Family != useragent.Unknown {
		d.OS = ua.OS.String()
		d.OSVersion = ua.OS.Version
	}
	if ua.Device.Type != useragent.DeviceTypeUnknown {
		d.DeviceType = ua.Device.Type
	}
	d.DeviceBrand = ua.Device.Brand
	d.DeviceModel = ua.Device.Model
}
