// Package geoip maps visitor IP addresses to ISO 3166-1 alpha-2 country codes.
//
// A Resolver wraps one Lookup (the remote ipapi.co style service or the
// offline MaxMind database) and never fails: every problem degrades to a
// Result with an empty Country and an Outcome describing why.
package geoip

import (
	"context"
	"errors"
	"net/netip"
	"strings"
	"time"

	"github.com/patrickwarner/sampadai-landing/internal/observability"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned by a Lookup that has no country for an address.
	ErrNotFound = errors.New("geoip: country not found")
	// ErrUnexpectedStatus is returned when the provider answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("geoip: unexpected status")
	// ErrMalformedResponse is returned when the provider body is not a country code.
	ErrMalformedResponse = errors.New("geoip: malformed response")
)

// Outcome labels how a resolution ended.
type Outcome string

const (
	OutcomeResolved Outcome = "resolved"
	OutcomeNotFound Outcome = "not_found"
	OutcomePrivate  Outcome = "private"
	OutcomeInvalid  Outcome = "invalid"
	OutcomeError    Outcome = "error"
	OutcomeDisabled Outcome = "disabled"
	OutcomeSkipped  Outcome = "skipped"
)

// Result is the country for an address, or the reason there is none.
type Result struct {
	Country string
	Outcome Outcome
}

// Known reports whether a country was resolved.
func (r Result) Known() bool {
	return r.Country != ""
}

// Lookup is a country source for public addresses.
type Lookup interface {
	Country(ctx context.Context, ip netip.Addr) (string, error)
	Name() string
}

// Resolver applies the private-address short-circuit and the timeout around a
// Lookup. A nil lookup disables resolution.
type Resolver struct {
	lookup  Lookup
	timeout time.Duration
	logger  *zap.Logger
	metrics observability.MetricsRegistry
}

// NewResolver constructs a Resolver. A timeout of zero leaves the deadline to
// the lookup itself.
func NewResolver(lookup Lookup, timeout time.Duration, logger *zap.Logger, metrics observability.MetricsRegistry) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewNoOpRegistry()
	}
	return &Resolver{
		lookup:  lookup,
		timeout: timeout,
		logger:  logger,
		metrics: metrics,
	}
}

func (r *Resolver) provider() string {
	if r.lookup == nil {
		return "none"
	}
	return r.lookup.Name()
}

// Resolve returns the country for address. It tolerates malformed input,
// never performs a lookup for loopback or private addresses and adds at most
// the configured timeout to the caller's latency.
func (r *Resolver) Resolve(ctx context.Context, address string) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("geolocation lookup panicked", zap.Any("panic", p), zap.String("ip", address))
			res = Result{Outcome: OutcomeError}
		}
		r.metrics.IncrementGeoLookups(r.provider(), string(res.Outcome))
	}()

	address = strings.TrimSpace(address)
	ip, err := netip.ParseAddr(address)
	if err != nil {
		if hasPrivatePrefix(address) {
			return Result{Outcome: OutcomePrivate}
		}
		r.logger.Debug("unparseable client address", zap.String("ip", address))
		return Result{Outcome: OutcomeInvalid}
	}
	ip = ip.Unmap().WithZone("")
	if IsPrivate(ip) {
		return Result{Outcome: OutcomePrivate}
	}
	if r.lookup == nil {
		return Result{Outcome: OutcomeDisabled}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	country, err := r.lookup.Country(ctx, ip)
	r.metrics.RecordGeoLookupLatency(r.provider(), time.Since(start))

	switch {
	case errors.Is(err, ErrNotFound):
		return Result{Outcome: OutcomeNotFound}
	case err != nil:
		r.logger.Warn("Geolocation lookup failed",
			zap.String("provider", r.provider()),
			zap.String("ip", ip.String()),
			zap.Error(err))
		return Result{Outcome: OutcomeError}
	}

	country = strings.ToUpper(strings.TrimSpace(country))
	if country == "" {
		return Result{Outcome: OutcomeNotFound}
	}
	return Result{Country: country, Outcome: OutcomeResolved}
}

// IsPrivate reports whether ip never carries useful geolocation: loopback,
// RFC 1918 / RFC 4193 private ranges, link-local and unspecified addresses.
func IsPrivate(ip netip.Addr) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}

func hasPrivatePrefix(address string) bool {
	for _, p := range []string{"127.", "10.", "192.168."} {
		if strings.HasPrefix(address, p) {
			return true
		}
	}
	return false
}
