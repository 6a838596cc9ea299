package clientip

import (
	"net"
	"net/http"
	"strings"
)

const mappedIPv4Prefix = "::ffff:"

// GetIP returns the client's IP address from HTTP request.
// Resolution order:
// 1. X-Forwarded-For (first valid entry)
// 2. RemoteAddr (direct connection)
//
// An empty string is returned when neither source yields a valid address.
func GetIP(r *http.Request) string {
	return FromHeaders(r.Header, r.RemoteAddr)
}

// FromHeaders resolves the client IP from raw request headers and the
// connection address. It is the header-level form of GetIP.
func FromHeaders(h http.Header, remoteAddr string) string {
	if forwarded := h.Get("X-Forwarded-For"); forwarded != "" {
		for ip := range strings.SplitSeq(forwarded, ",") {
			if parsed := parseIP(ip); parsed != "" {
				return parsed
			}
		}
	}

	remoteAddr = strings.TrimSpace(remoteAddr)
	if remoteAddr == "" {
		return ""
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		// No port, RemoteAddr may already be a bare address
		return parseIP(remoteAddr)
	}
	return parseIP(host)
}

// Normalize trims the address and strips the IPv6-mapped IPv4 prefix,
// so "::ffff:203.0.113.5" becomes "203.0.113.5".
func Normalize(ip string) string {
	ip = strings.TrimSpace(ip)
	if len(ip) > len(mappedIPv4Prefix) && strings.EqualFold(ip[:len(mappedIPv4Prefix)], mappedIPv4Prefix) {
		ip = ip[len(mappedIPv4Prefix):]
	}
	return ip
}

// IsLoopback reports whether ip is one of the loopback literals
// "127.0.0.1" or "::1".
func IsLoopback(ip string) bool {
	switch Normalize(ip) {
	case "127.0.0.1", "::1":
		return true
	}
	return false
}

// parseIP validates and normalizes an IP address string.
// Returns empty string if the IP is invalid.
func parseIP(ipStr string) string {
	ipStr = Normalize(ipStr)
	if ipStr == "" {
		return ""
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return ""
	}

	return ip.String()
}
