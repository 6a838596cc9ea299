package pricefeed

import "time"

// Config controls the fetch chain.
type Config struct {
	ProviderTimeout time.Duration `env:"PRICE_PROVIDER_TIMEOUT" envDefault:"5s"`
	FallbackPrice   string        `env:"PRICE_FALLBACK" envDefault:"86629.41"`
	// FallbackJitter is the maximum random offset applied to the fallback
	// price, in percent of it. Zero returns the fallback unchanged.
	FallbackJitter float64 `env:"PRICE_FALLBACK_JITTER" envDefault:"0"`
	// ProvidersFile optionally replaces the built-in provider list.
	ProvidersFile string `env:"PRICE_PROVIDERS_FILE"`
}
