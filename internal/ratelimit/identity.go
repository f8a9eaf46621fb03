package ratelimit

import (
	"net"
	"strings"
)

// Identity resolves the bucketing key for a request. The first address in
// a forwarded-for chain wins when present; deployments must strip or trust
// that header at the edge, since a direct client can set it freely. The
// fallback is the transport peer address, then a shared unknown bucket.
func Identity(forwardedFor, remoteAddr string) string {
	if forwardedFor != "" {
		first := forwardedFor
		if i := strings.Index(first, ","); i >= 0 {
			first = first[:i]
		}
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if remoteAddr != "" {
		if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
			return host
		}
		return remoteAddr
	}
	return UnknownIdentity
}
