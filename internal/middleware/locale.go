package middleware

import (
	"context"
	"net/http"

	"github.com/avct/uasurfer"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/patrickwarner/sampadai-landing/internal/clientip"
	"github.com/patrickwarner/sampadai-landing/internal/geoip"
	"github.com/patrickwarner/sampadai-landing/internal/locale"
	"github.com/patrickwarner/sampadai-landing/internal/observability"
)

// CountryResolver maps a client address to a country. *geoip.Resolver
// implements it.
type CountryResolver interface {
	Resolve(ctx context.Context, address string) geoip.Result
}

// LocaleConfig configures the Locale middleware.
type LocaleConfig struct {
	// Resolver may be nil, in which case every request gets the default locale.
	Resolver CountryResolver
	// SkipBots binds the default locale for crawlers without a lookup.
	SkipBots bool
	// Skip bypasses the middleware entirely for matching requests.
	Skip    func(r *http.Request) bool
	Logger  *zap.Logger
	Metrics observability.MetricsRegistry
}

// Locale binds a locale.Context to every request before it reaches the
// router's handlers. It blocks until resolution finishes or falls back and
// always binds a valid context, defaulting to English with no country.
func Locale(cfg LocaleConfig) func(http.Handler) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NewNoOpRegistry()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			lc := resolveLocale(r, cfg)
			cfg.Metrics.IncrementLanguages(lc.Language.String())
			w.Header().Set("Content-Language", lc.Language.String())

			ctx := locale.WithContext(r.Context(), lc)
			logger := LoggerFromContext(ctx, cfg.Logger).With(
				zap.String("language", lc.Language.String()),
				zap.String("country", lc.Country),
			)
			ctx = ContextWithLogger(ctx, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveLocale(r *http.Request, cfg LocaleConfig) (lc locale.Context) {
	logger := LoggerFromRequest(r, cfg.Logger)
	defer func() {
		if p := recover(); p != nil {
			logger.Error("Language detection failed", zap.Any("panic", p))
			lc = locale.DefaultContext
		}
	}()

	ctx, span := observability.Tracer("locale").Start(r.Context(), "locale.resolve")
	defer span.End()

	if cfg.Resolver == nil {
		return locale.DefaultContext
	}
	if cfg.SkipBots && isBot(r.UserAgent()) {
		cfg.Metrics.IncrementGeoLookups("bot", string(geoip.OutcomeSkipped))
		span.SetAttributes(attribute.String("geo.outcome", string(geoip.OutcomeSkipped)))
		return locale.DefaultContext
	}

	ip := clientip.FromRequest(r)
	res := cfg.Resolver.Resolve(ctx, ip)
	lc = locale.Context{
		Language: locale.ForCountry(res.Country),
		Country:  res.Country,
	}

	span.SetAttributes(
		attribute.String("geo.outcome", string(res.Outcome)),
		attribute.String("geo.country", res.Country),
		attribute.String("locale.language", lc.Language.String()),
	)
	logger.Debug("locale resolved",
		zap.String("ip", ip),
		zap.String("outcome", string(res.Outcome)),
		zap.String("country", res.Country),
		zap.String("language", lc.Language.String()),
	)
	return lc
}

func isBot(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	return uasurfer.Parse(userAgent).IsBot()
}
