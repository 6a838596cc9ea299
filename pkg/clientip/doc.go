// Package clientip extracts the originating client's IP address from an
// incoming HTTP request.
//
// The first valid entry of X-Forwarded-For wins; otherwise the TCP peer
// address (RemoteAddr, port stripped) is used. Addresses are normalized:
// surrounding whitespace is trimmed and the IPv6-mapped IPv4 prefix
// ("::ffff:") is removed.
//
// # Usage
//
//	ip := clientip.GetIP(r)
//	if ip == "" || clientip.IsLoopback(ip) {
//		// substitute a public address for lookups
//	}
//
// Middleware stores the resolved address in the request context so that
// downstream handlers can read it with FromContext, and LoggerExtractor
// adds it to request-scoped log records.
//
// # Error Handling
//
// GetIP never returns an error. If no valid address is found an empty
// string is returned so callers can decide how to proceed.
package clientip
