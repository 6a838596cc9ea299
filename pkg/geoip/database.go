package geoip

import (
	"context"
	"errors"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// Database is an offline Locator backed by a MaxMind City database.
type Database struct {
	reader *geoip2.Reader
}

// Open memory-maps the database file at path.
func Open(path string) (*Database, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, errors.Join(ErrOpenDatabase, err)
	}
	return &Database{reader: reader}, nil
}

// Lookup resolves ip. An address absent from the database yields ErrNotFound.
func (d *Database) Lookup(_ context.Context, ip string) (Location, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return Location{}, ErrInvalidIP
	}

	rec, err := d.reader.City(parsed)
	if err != nil {
		return Location{}, errors.Join(ErrLookupFailed, err)
	}
	if rec.Country.IsoCode == "" {
		return Location{}, ErrNotFound
	}

	loc := Location{
		Country:   rec.Country.IsoCode,
		City:      rec.City.Names["en"],
		Timezone:  rec.Location.TimeZone,
		Latitude:  rec.Location.Latitude,
		Longitude: rec.Location.Longitude,
	}
	if len(rec.Subdivisions) > 0 {
		loc.Region = rec.Subdivisions[0].IsoCode
	}
	return loc, nil
}

// Close releases the memory-mapped file.
func (d *Database) Close() error {
	return d.reader.Close()
}
