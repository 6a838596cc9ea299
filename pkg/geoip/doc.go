// Package geoip resolves IP addresses to approximate locations.
//
// Two Locator implementations are provided: Database reads a MaxMind City
// database (github.com/oschwald/geoip2-golang) and answers without network
// access; Live queries an ip-api.com compatible HTTP service under its own
// short deadline. Nop is used when no database is configured.
package geoip
