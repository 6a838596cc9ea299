package enrich

// Config controls request enrichment. It is passed to New explicitly.
type Config struct {
	// FallbackIP is used when no client address can be extracted and as the
	// geolocation key for loopback callers.
	FallbackIP string `env:"ENRICH_FALLBACK_IP" envDefault:"8.8.8.8"`
	// LiveGeo enables escalation to the live geolocation service when the
	// offline lookup has no country.
	LiveGeo bool `env:"GEOIP_LIVE_ENABLED" envDefault:"true"`
}
