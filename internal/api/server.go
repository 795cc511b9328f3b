package api

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/patrickwarner/sampadai-landing/internal/observability"
	"github.com/patrickwarner/sampadai-landing/internal/signup"
	"github.com/patrickwarner/sampadai-landing/internal/web"
)

var tracer = observability.Tracer("sampadai-landing/api")

// Server groups dependencies for HTTP handlers.
type Server struct {
	Logger   *zap.Logger
	Metrics  observability.MetricsRegistry
	Recorder signup.Recorder
	Pages    *web.Renderer

	// Now and NewID stamp accepted submissions.
	Now   func() time.Time
	NewID func() string
}

// NewServer constructs a Server. A nil recorder falls back to a
// signup.LogRecorder and nil metrics to a no-op registry.
func NewServer(logger *zap.Logger, metrics observability.MetricsRegistry, recorder signup.Recorder, pages *web.Renderer) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewNoOpRegistry()
	}
	if recorder == nil {
		recorder = signup.LogRecorder{Logger: logger}
	}
	return &Server{
		Logger:   logger,
		Metrics:  metrics,
		Recorder: recorder,
		Pages:    pages,
		Now:      time.Now,
		NewID:    uuid.NewString,
	}
}

func (s *Server) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *Server) newID() string {
	if s.NewID == nil {
		return uuid.NewString()
	}
	return s.NewID()
}
