package geoip

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// maxBodyBytes bounds how much of a provider response is read.
const maxBodyBytes = 512

// Remote looks countries up with an ipapi.co compatible HTTP service
// (GET {baseURL}/{ip}/country/ returning the bare ISO code).
type Remote struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewRemote creates a remote lookup client. The timeout bounds the whole
// exchange including reading the body.
func NewRemote(baseURL, userAgent string, timeout time.Duration, logger *zap.Logger) *Remote {
	return &Remote{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// Name identifies the lookup in logs and metrics.
func (c *Remote) Name() string { return "remote" }

// Country makes a single request to the provider. There is no retry: an
// overloaded provider must not multiply request latency.
func (c *Remote) Country(ctx context.Context, ip netip.Addr) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+ip.WithZone("").String()+"/country/", nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil && c.logger != nil {
			c.logger.Warn("failed to close response body", zap.Error(err))
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: http %d: %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	code := strings.ToUpper(strings.TrimSpace(string(body)))
	if !isCountryCode(code) {
		return "", fmt.Errorf("%w: %q", ErrMalformedResponse, code)
	}
	return code, nil
}

func isCountryCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
