package geoip

import "context"

// Location is an approximate position for an IP address. Country and
// Region are ISO codes; empty fields mean the source had no data.
type Location struct {
	Country   string
	Region    string
	City      string
	Timezone  string
	Latitude  float64
	Longitude float64
}

// Found reports whether the lookup produced a country.
func (l Location) Found() bool { return l.Country != "" }

// Locator resolves an IP address to a Location.
type Locator interface {
	Lookup(ctx context.Context, ip string) (Location, error)
}

// Nop is a Locator that never finds anything. It stands in for the offline
// database when none is configured.
type Nop struct{}

func (Nop) Lookup(context.Context, string) (Location, error) {
	return Location{}, ErrNotFound
}
