package geoip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRemoteCountry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/203.0.113.5/country/", r.URL.Path)
		assert.Equal(t, "test-agent/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("de\n"))
	}))
	defer server.Close()

	client := NewRemote(server.URL+"/", "test-agent/1.0", time.Second, zap.NewNop())
	got, err := client.Country(context.Background(), netip.MustParseAddr("203.0.113.5"))
	require.NoError(t, err)
	assert.Equal(t, "DE", got)
}

func TestRemoteCountryIgnoresZone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2001:4860::1/country/", r.URL.Path)
		_, _ = w.Write([]byte("DE"))
	}))
	defer server.Close()

	client := NewRemote(server.URL, "test-agent/1.0", time.Second, zap.NewNop())
	got, err := client.Country(context.Background(), netip.MustParseAddr("2001:4860::1%eth0"))
	require.NoError(t, err)
	assert.Equal(t, "DE", got)
}

func TestRemoteCountryFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: "RateLimited", wantErr: ErrUnexpectedStatus},
		{name: "server error", status: http.StatusInternalServerError, body: "oops", wantErr: ErrUnexpectedStatus},
		{name: "reserved address", status: http.StatusOK, body: "Undefined", wantErr: ErrMalformedResponse},
		{name: "empty body", status: http.StatusOK, body: "", wantErr: ErrMalformedResponse},
		{name: "json body", status: http.StatusOK, body: `{"error":true}`, wantErr: ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewRemote(server.URL, "", time.Second, zap.NewNop())
			_, err := client.Country(context.Background(), netip.MustParseAddr("203.0.113.5"))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRemoteCountryTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewRemote(server.URL, "", 50*time.Millisecond, zap.NewNop())
	start := time.Now()
	_, err := client.Country(context.Background(), netip.MustParseAddr("203.0.113.5"))
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRemoteUnreachable(t *testing.T) {
	client := NewRemote("http://127.0.0.1:1", "", 200*time.Millisecond, zap.NewNop())
	r := NewResolver(client, 200*time.Millisecond, zap.NewNop(), nil)

	res := r.Resolve(context.Background(), "203.0.113.5")
	assert.Equal(t, OutcomeError, res.Outcome)
	assert.Empty(t, res.Country)
}
