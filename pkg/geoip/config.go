package geoip

import "time"

// Config configures both lookup sources.
type Config struct {
	DatabasePath string        `env:"GEOIP_DB_PATH"` // MaxMind GeoLite2/GeoIP2 City .mmdb
	LiveEnabled  bool          `env:"GEOIP_LIVE_ENABLED" envDefault:"true"`
	LiveURL      string        `env:"GEOIP_LIVE_URL" envDefault:"http://ip-api.com"`
	LiveTimeout  time.Duration `env:"GEOIP_LIVE_TIMEOUT" envDefault:"3s"`
}

// MaxLiveTimeout caps the live lookup regardless of configuration.
const MaxLiveTimeout = 5 * time.Second
