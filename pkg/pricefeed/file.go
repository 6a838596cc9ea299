package pricefeed

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type providerFile struct {
	Providers []providerSpec `yaml:"providers"`
}

type providerSpec struct {
	Name    string            `yaml:"name"`
	URL     string            `yaml:"url"`
	Path    string            `yaml:"path"` // dot separated, e.g. data.priceUsd
	Timeout time.Duration     `yaml:"timeout"`
	Headers map[string]string `yaml:"headers"`
}

// LoadProviders reads an ordered provider list from a YAML file:
//
//	providers:
//	  - name: Binance
//	    url: https://api.binance.com/api/v3/ticker/price?symbol=BTCUSDT
//	    path: price
//	    timeout: 3s
func LoadProviders(path string) ([]Provider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrLoadProviders, err)
	}
	return ParseProviders(raw)
}

// ParseProviders decodes the YAML provider list format.
func ParseProviders(raw []byte) ([]Provider, error) {
	var file providerFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Join(ErrLoadProviders, err)
	}
	if len(file.Providers) == 0 {
		return nil, fmt.Errorf("%w: no providers defined", ErrLoadProviders)
	}

	providers := make([]Provider, 0, len(file.Providers))
	for _, entry := range file.Providers {
		if entry.Path == "" {
			return nil, fmt.Errorf("%w: %q has no path", ErrInvalidProvider, entry.Name)
		}
		p := Provider{
			Name:    entry.Name,
			URL:     entry.URL,
			Headers: entry.Headers,
			Timeout: entry.Timeout,
			Extract: FieldPath(strings.Split(entry.Path, ".")...),
		}
		if err := p.validate(); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, nil
}
