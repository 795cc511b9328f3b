package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/netip"
	"os"

	"github.com/oschwald/geoip2-golang"
)

// Offline resolves countries from a local MaxMind DB or a JSON fallback.
// It is safe for concurrent use once opened.
type Offline struct {
	db       *geoip2.Reader
	fallback []record
}

type record struct {
	net     *net.IPNet
	country string
}

// OpenOffline opens the GeoIP2 country database located at path. When the file
// is not a MaxMind database it is parsed as a JSON list of
// {"net": "<cidr>", "country": "<iso>"} entries instead.
func OpenOffline(path string) (*Offline, error) {
	g := &Offline{}
	db, err := geoip2.Open(path)
	if err == nil {
		g.db = db
		return g, nil
	}

	data, jerr := os.ReadFile(path)
	if jerr != nil {
		return nil, fmt.Errorf("open geoip db %s: %w", path, err)
	}
	var entries []struct {
		Net     string `json:"net"`
		Country string `json:"country"`
	}
	if jerr = json.Unmarshal(data, &entries); jerr != nil {
		return nil, fmt.Errorf("open geoip db %s: %w", path, err)
	}
	for _, e := range entries {
		if _, n, perr := net.ParseCIDR(e.Net); perr == nil {
			g.fallback = append(g.fallback, record{net: n, country: e.Country})
		}
	}
	return g, nil
}

// Name identifies the lookup in logs and metrics.
func (g *Offline) Name() string { return "offline" }

// Country returns the ISO country code for ip, or ErrNotFound when the
// database has no entry for it.
func (g *Offline) Country(_ context.Context, ip netip.Addr) (string, error) {
	if g == nil {
		return "", ErrNotFound
	}
	std := net.IP(ip.AsSlice())
	if g.db != nil {
		rec, err := g.db.Country(std)
		if err != nil {
			return "", fmt.Errorf("geoip2 country %s: %w", ip, err)
		}
		if rec.Country.IsoCode != "" {
			return rec.Country.IsoCode, nil
		}
		return "", ErrNotFound
	}
	for _, r := range g.fallback {
		if r.net.Contains(std) {
			return r.country, nil
		}
	}
	return "", ErrNotFound
}

// Close releases resources associated with the database.
func (g *Offline) Close() error {
	if g != nil && g.db != nil {
		return g.db.Close()
	}
	return nil
}
