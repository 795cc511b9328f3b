package api

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/patrickwarner/sampadai-landing/internal/locale"
	"github.com/patrickwarner/sampadai-landing/internal/middleware"
)

// PageHandler renders the landing page in the language bound to the request.
func (s *Server) PageHandler(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "/", locale.FromContext(r.Context()).Language)
}

// LanguagePageHandler renders the landing page in lang regardless of the
// visitor's location.
func (s *Server) LanguagePageHandler(lang locale.Language) http.HandlerFunc {
	endpoint := "/" + lang.String()
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, r, endpoint, lang)
	}
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, endpoint string, lang locale.Language) {
	_, span := tracer.Start(r.Context(), "PageHandler")
	defer span.End()
	span.SetAttributes(
		attribute.String("http.route", endpoint),
		attribute.String("locale.language", lang.String()),
	)

	logger := middleware.LoggerFromRequest(r, s.Logger)
	start := time.Now()
	method := r.Method

	var buf bytes.Buffer
	if s.Pages == nil {
		logger.Error("page renderer not configured")
		s.Metrics.IncrementRequests(endpoint, method, "500")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if err := s.Pages.Render(&buf, lang); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		logger.Error("render page", zap.Error(err), zap.String("language", lang.String()))
		s.Metrics.IncrementRequests(endpoint, method, "500")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Content-Language", lang.String())
	h.Set("Content-Length", strconv.Itoa(buf.Len()))
	h.Set("Cache-Control", "private, no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = buf.WriteTo(w)
	}

	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
