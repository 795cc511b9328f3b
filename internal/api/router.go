package api

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/patrickwarner/sampadai-landing/internal/locale"
	"github.com/patrickwarner/sampadai-landing/internal/middleware"
	"github.com/patrickwarner/sampadai-landing/internal/web"
)

// RouterConfig configures NewRouter.
type RouterConfig struct {
	// Resolver geolocates visitors; nil binds English for everyone.
	Resolver    middleware.CountryResolver
	SkipBots    bool
	ServiceName string
	// Static overrides the embedded static assets.
	Static fs.FS
}

// rootFiles are served from the static tree at the site root.
var rootFiles = []string{"robots.txt", "sitemap.xml", "manifest.json"}

// NewRouter wires the routes and the middleware chain. The locale binder
// runs before route dispatch for every request except static assets and
// operational endpoints.
func NewRouter(s *Server, cfg RouterConfig) http.Handler {
	static := cfg.Static
	if static == nil {
		static = web.Static()
	}

	r := mux.NewRouter()
	r.HandleFunc("/", s.PageHandler).Methods(http.MethodGet, http.MethodHead)
	for _, lang := range locale.Supported {
		r.HandleFunc("/"+lang.String(), s.LanguagePageHandler(lang)).Methods(http.MethodGet, http.MethodHead)
	}
	r.HandleFunc("/waitlist", s.WaitlistHandler).Methods(http.MethodPost)
	r.HandleFunc("/rsvp", s.RSVPHandler).Methods(http.MethodPost)
	r.HandleFunc("/health", s.HealthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler())

	for _, name := range rootFiles {
		r.Handle("/"+name, staticFile(static, name)).Methods(http.MethodGet, http.MethodHead)
	}
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	var h http.Handler = r
	h = middleware.Locale(middleware.LocaleConfig{
		Resolver: cfg.Resolver,
		SkipBots: cfg.SkipBots,
		Skip:     skipLocale,
		Logger:   s.Logger,
		Metrics:  s.Metrics,
	})(h)
	h = middleware.SecurityHeaders(h)
	h = middleware.Recovery(s.Logger)(h)
	h = middleware.WithTraceLogger(s.Logger)(h)
	h = middleware.RequestID(h)

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "sampadai-landing"
	}
	return otelhttp.NewHandler(h, serviceName)
}

func skipLocale(r *http.Request) bool {
	p := r.URL.Path
	if strings.HasPrefix(p, "/static/") || p == "/health" || p == "/metrics" || p == "/favicon.ico" {
		return true
	}
	for _, name := range rootFiles {
		if p == "/"+name {
			return true
		}
	}
	return false
}

func staticFile(fsys fs.FS, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, fsys, name)
	})
}
