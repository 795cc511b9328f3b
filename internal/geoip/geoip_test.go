package geoip

import (
	"context"
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineJSONFallback(t *testing.T) {
	g, err := OpenOffline("testdata/geo_fallback.json")
	require.NoError(t, err)
	defer func() { _ = g.Close() }()

	tests := []struct {
		ip      string
		want    string
		wantErr error
	}{
		{ip: "192.0.2.5", want: "DE"},
		{ip: "198.51.100.5", want: "PL"},
		{ip: "203.0.113.77", want: "US"},
		{ip: "2001:db8::42", want: "DE"},
		{ip: "8.8.8.8", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			got, err := g.Country(context.Background(), netip.MustParseAddr(tt.ip))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenOfflineErrors(t *testing.T) {
	_, err := OpenOffline(filepath.Join(t.TempDir(), "missing.mmdb"))
	assert.Error(t, err)

	garbage := filepath.Join(t.TempDir(), "garbage.mmdb")
	require.NoError(t, os.WriteFile(garbage, []byte("not a database"), 0o600))
	_, err = OpenOffline(garbage)
	assert.Error(t, err)
}

func TestOfflineNilIsNotFound(t *testing.T) {
	var g *Offline
	_, err := g.Country(context.Background(), netip.MustParseAddr("192.0.2.5"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, g.Close())
}
