// Package requestid propagates an X-Request-ID through HTTP handlers and
// into structured logs.
package requestid
