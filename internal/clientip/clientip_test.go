package clientip

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{name: "forwarding chain keeps first hop", forwarded: "203.0.113.5, 10.0.0.1", remoteAddr: "10.0.0.2:4000", want: "203.0.113.5"},
		{name: "forwarded wins over real ip", forwarded: "198.51.100.7", realIP: "203.0.113.9", want: "198.51.100.7"},
		{name: "real ip when no forwarded", realIP: " 203.0.113.9 ", remoteAddr: "10.0.0.2:4000", want: "203.0.113.9"},
		{name: "socket address without port", remoteAddr: "192.0.2.44:51234", want: "192.0.2.44"},
		{name: "ipv6 socket address", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "socket address without port passes through", remoteAddr: "192.0.2.44", want: "192.0.2.44"},
		{name: "malformed value passes through", forwarded: "not-an-ip", want: "not-an-ip"},
		{name: "empty first hop falls back", forwarded: " , 203.0.113.5", realIP: "198.51.100.1", want: "198.51.100.1"},
		{name: "nothing available", want: Loopback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set(HeaderRealIP, tt.realIP)
			}
			assert.Equal(t, tt.want, FromRequest(req))
		})
	}
}

func TestFromRequestNil(t *testing.T) {
	assert.Equal(t, Loopback, FromRequest(nil))
}
