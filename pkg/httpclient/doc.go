// Package httpclient builds the shared outbound *http.Client used by the
// price providers and the live geolocation lookup.
package httpclient
