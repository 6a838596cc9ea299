package geoip

import "errors"

var (
	ErrInvalidIP    = errors.New("geoip: invalid ip address")
	ErrNotFound     = errors.New("geoip: location not found")
	ErrOpenDatabase = errors.New("geoip: failed to open database")
	ErrLookupFailed = errors.New("geoip: lookup failed")
)
