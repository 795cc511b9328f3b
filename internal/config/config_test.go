package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, GeoProviderRemote, cfg.Geo.Provider)
	assert.Equal(t, "https://ipapi.co", cfg.Geo.ProviderURL)
	assert.Equal(t, 2*time.Second, cfg.Geo.Timeout)
	assert.True(t, cfg.Geo.SkipBots)
	assert.False(t, cfg.Sheets.Enabled())
	assert.Equal(t, "Waitlist!A:F", cfg.Sheets.WaitlistRange)
	assert.Equal(t, 2*time.Second, cfg.Sheets.Timeout)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("GEO_PROVIDER", " Offline ")
	t.Setenv("GEO_PROVIDER_URL", "http://geo.local/")
	t.Setenv("GEO_TIMEOUT", "3s")
	t.Setenv("SHEETS_SPREADSHEET_ID", "sheet-1")
	t.Setenv("SHEETS_CREDENTIALS_FILE", "/etc/creds.json")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, GeoProviderOffline, cfg.Geo.Provider)
	assert.Equal(t, "http://geo.local", cfg.Geo.ProviderURL)
	assert.Equal(t, 3*time.Second, cfg.Geo.Timeout)
	assert.True(t, cfg.Sheets.Enabled())
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown provider", env: map[string]string{"GEO_PROVIDER": "carrier-pigeon"}},
		{name: "zero timeout", env: map[string]string{"GEO_TIMEOUT": "0s"}},
		{name: "sheet without credentials", env: map[string]string{"SHEETS_SPREADSHEET_ID": "sheet-1"}},
		{name: "bad duration", env: map[string]string{"READ_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}
