package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Geolocation provider modes accepted by GEO_PROVIDER.
const (
	GeoProviderRemote  = "remote"
	GeoProviderOffline = "offline"
	GeoProviderNone    = "none"
)

// Config holds application configuration derived from environment variables.
type Config struct {
	Port         string        `env:"PORT" envDefault:"3000"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ServiceName  string        `env:"SERVICE_NAME" envDefault:"sampadai-landing"`
	Environment  string        `env:"ENV" envDefault:"production"`

	Geo    GeoConfig
	Sheets SheetsConfig

	// Tracing configuration
	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TempoEndpoint     string  `env:"TEMPO_ENDPOINT" envDefault:"tempo:4317"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`
}

// GeoConfig selects and tunes the visitor geolocation source.
type GeoConfig struct {
	Provider    string        `env:"GEO_PROVIDER" envDefault:"remote"`
	ProviderURL string        `env:"GEO_PROVIDER_URL" envDefault:"https://ipapi.co"`
	Timeout     time.Duration `env:"GEO_TIMEOUT" envDefault:"2s"`
	UserAgent   string        `env:"GEO_USER_AGENT" envDefault:"SampadAI-Landing-Page/1.0"`
	DBPath      string        `env:"GEOIP_DB" envDefault:"data/GeoLite2-Country.mmdb"`
	SkipBots    bool          `env:"GEO_SKIP_BOTS" envDefault:"true"`
}

// SheetsConfig holds the Google Sheets credentials used to persist signups.
// An empty SpreadsheetID disables the integration.
type SheetsConfig struct {
	SpreadsheetID   string        `env:"SHEETS_SPREADSHEET_ID"`
	CredentialsJSON string        `env:"SHEETS_CREDENTIALS_JSON"`
	CredentialsFile string        `env:"SHEETS_CREDENTIALS_FILE"`
	WaitlistRange   string        `env:"SHEETS_WAITLIST_RANGE" envDefault:"Waitlist!A:F"`
	RSVPRange       string        `env:"SHEETS_RSVP_RANGE" envDefault:"RSVP!A:E"`
	Timeout         time.Duration `env:"SHEETS_TIMEOUT" envDefault:"2s"`
}

// Enabled reports whether a spreadsheet is configured.
func (s SheetsConfig) Enabled() bool {
	return s.SpreadsheetID != ""
}

// Load reads an optional .env file and parses environment variables into a
// Config populated with defaults when variables are absent.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse populates a Config from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that env parsing cannot.
func (c *Config) Validate() error {
	c.Geo.Provider = strings.ToLower(strings.TrimSpace(c.Geo.Provider))
	switch c.Geo.Provider {
	case GeoProviderRemote, GeoProviderOffline, GeoProviderNone:
	default:
		return fmt.Errorf("invalid GEO_PROVIDER %q: want remote, offline or none", c.Geo.Provider)
	}
	if c.Geo.Timeout <= 0 {
		return fmt.Errorf("GEO_TIMEOUT must be positive, got %s", c.Geo.Timeout)
	}
	c.Geo.ProviderURL = strings.TrimRight(c.Geo.ProviderURL, "/")
	if c.Sheets.Enabled() && c.Sheets.CredentialsJSON == "" && c.Sheets.CredentialsFile == "" {
		return errors.New("SHEETS_SPREADSHEET_ID requires SHEETS_CREDENTIALS_JSON or SHEETS_CREDENTIALS_FILE")
	}
	return nil
}
