// Package clientip derives a best-guess client address from an HTTP request.
//
// Proxy headers are trusted over the socket address: the service is deployed
// behind a platform load balancer that sets them. Values are not validated;
// the geolocation resolver tolerates malformed input.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Loopback is returned when the request carries no usable signal.
const Loopback = "127.0.0.1"

const (
	HeaderForwardedFor = "X-Forwarded-For"
	HeaderRealIP       = "X-Real-IP"
)

// FromRequest returns the client address using, in order, X-Forwarded-For,
// X-Real-IP and the socket address. For a forwarding chain only the first
// (client-most) hop is kept.
func FromRequest(r *http.Request) string {
	if r == nil {
		return Loopback
	}
	return Extract(r.Header.Get(HeaderForwardedFor), r.Header.Get(HeaderRealIP), r.RemoteAddr)
}

// Extract applies the precedence rules to raw signal values. Empty values are
// skipped.
func Extract(forwardedFor, realIP, remoteAddr string) string {
	for _, v := range []string{forwardedFor, realIP} {
		if ip := firstHop(v); ip != "" {
			return ip
		}
	}
	if ip := firstHop(stripPort(remoteAddr)); ip != "" {
		return ip
	}
	return Loopback
}

func firstHop(v string) string {
	if idx := strings.IndexByte(v, ','); idx != -1 {
		v = v[:idx]
	}
	return strings.TrimSpace(v)
}

// stripPort removes the port from a host:port socket address; anything else
// is returned unchanged.
func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
