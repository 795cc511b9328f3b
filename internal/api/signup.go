package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/patrickwarner/sampadai-landing/internal/locale"
	"github.com/patrickwarner/sampadai-landing/internal/middleware"
	"github.com/patrickwarner/sampadai-landing/internal/signup"
)

// maxBodyBytes caps submission bodies.
const maxBodyBytes = 64 << 10

// WaitlistHandler handles POST /waitlist. A recorder failure is logged and
// counted but the visitor is still told they were added.
func (s *Server) WaitlistHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "WaitlistHandler")
	defer span.End()

	logger := middleware.LoggerFromRequest(r, s.Logger)
	start := time.Now()
	const endpoint = "/waitlist"
	const method = "POST"

	lc := locale.FromContext(ctx)
	msgs := locale.MessagesFor(lc.Language)

	var req signup.WaitlistRequest
	err := decodeSubmission(w, r, &req, func(form url.Values) error {
		req.Email = form.Get("email")
		return nil
	})
	if err != nil {
		logger.Warn("invalid waitlist body", zap.Error(err))
		s.writeJSON(w, endpoint, method, start, http.StatusBadRequest, signup.Response{Message: msgs.InvalidBody})
		return
	}
	if err := req.Validate(); err != nil {
		logger.Info("rejected waitlist signup", zap.Error(err))
		s.writeJSON(w, endpoint, method, start, http.StatusBadRequest, signup.Response{Message: msgs.InvalidEmail})
		return
	}

	entry := signup.Entry{
		ID:        s.newID(),
		Email:     req.Email,
		Timestamp: s.now(),
		Status:    signup.StatusPending,
		Country:   lc.Country,
		Language:  lc.Language.String(),
	}
	span.SetAttributes(attribute.String("signup.id", entry.ID))
	logger.Info("New waitlist signup", zap.String("id", entry.ID), zap.String("email", entry.Email))
	s.Metrics.IncrementSignups(signup.KindWaitlist)

	if err := s.Recorder.RecordWaitlist(ctx, entry); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist failed")
		logger.Error("failed to persist waitlist signup", zap.String("id", entry.ID), zap.Error(err))
		s.Metrics.IncrementPersistErrors(signup.KindWaitlist)
	}

	s.writeJSON(w, endpoint, method, start, http.StatusOK, signup.Response{Success: true, Message: msgs.WaitlistAccepted})
}

// RSVPHandler handles POST /rsvp. Like the waitlist, persistence is best
// effort.
func (s *Server) RSVPHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "RSVPHandler")
	defer span.End()

	logger := middleware.LoggerFromRequest(r, s.Logger)
	start := time.Now()
	const endpoint = "/rsvp"
	const method = "POST"

	lc := locale.FromContext(ctx)
	msgs := locale.MessagesFor(lc.Language)

	var req signup.RSVPRequest
	err := decodeSubmission(w, r, &req, func(form url.Values) error {
		req.Name = form.Get("name")
		guests, err := signup.ParseGuestCount(form.Get("guests"))
		req.Guests = guests
		return err
	})
	switch {
	case errors.Is(err, signup.ErrInvalidGuests):
		logger.Info("rejected rsvp", zap.Error(err))
		s.writeJSON(w, endpoint, method, start, http.StatusBadRequest, signup.Response{Message: msgs.RSVPMissing})
		return
	case err != nil:
		logger.Warn("invalid rsvp body", zap.Error(err))
		s.writeJSON(w, endpoint, method, start, http.StatusBadRequest, signup.Response{Message: msgs.InvalidBody})
		return
	}
	if err := req.Validate(); err != nil {
		logger.Info("rejected rsvp", zap.Error(err))
		msg := msgs.RSVPMissing
		if errors.Is(err, signup.ErrGuestsOutOfRange) {
			msg = msgs.RSVPGuestsRange
		}
		s.writeJSON(w, endpoint, method, start, http.StatusBadRequest, signup.Response{Message: msg})
		return
	}

	entry := signup.RSVPEntry{
		ID:        s.newID(),
		Name:      req.Name,
		Guests:    int(req.Guests),
		Timestamp: s.now(),
		Country:   lc.Country,
	}
	span.SetAttributes(attribute.String("signup.id", entry.ID), attribute.Int("rsvp.guests", entry.Guests))
	logger.Info("New RSVP", zap.String("id", entry.ID), zap.String("name", entry.Name), zap.Int("guests", entry.Guests))
	s.Metrics.IncrementSignups(signup.KindRSVP)

	if err := s.Recorder.RecordRSVP(ctx, entry); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist failed")
		logger.Error("failed to persist rsvp", zap.String("id", entry.ID), zap.Error(err))
		s.Metrics.IncrementPersistErrors(signup.KindRSVP)
	}

	s.writeJSON(w, endpoint, method, start, http.StatusOK, signup.Response{Success: true, Message: msgs.RSVPAccepted})
}

// decodeSubmission reads a JSON body into dst, or hands the parsed form to
// fromForm for urlencoded and multipart bodies. An empty JSON body leaves
// dst zero so validation reports the missing fields.
func decodeSubmission(w http.ResponseWriter, r *http.Request, dst any, fromForm func(url.Values) error) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return fmt.Errorf("content type: %w", err)
		}
		mediaType = mt
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("parse form: %w", err)
		}
		return fromForm(r.PostForm)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return fmt.Errorf("parse multipart form: %w", err)
		}
		return fromForm(r.PostForm)
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode json: %w", err)
	}
	if dec.More() {
		return errors.New("decode json: unexpected data after body")
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, endpoint, method string, start time.Time, status int, body signup.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.Logger.Warn("write response", zap.String("endpoint", endpoint), zap.Error(err))
	}
	s.Metrics.IncrementRequests(endpoint, method, strconv.Itoa(status))
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
