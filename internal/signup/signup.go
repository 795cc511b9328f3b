// Package signup validates waitlist and RSVP submissions and hands accepted
// entries to a Recorder.
package signup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Kinds label entries in logs and metrics.
const (
	KindWaitlist = "waitlist"
	KindRSVP     = "rsvp"
)

// StatusPending is the status recorded for new waitlist entries.
const StatusPending = "pending"

var (
	// ErrInvalid is returned by Validate for submissions that fail validation.
	ErrInvalid = errors.New("signup: invalid submission")
	// ErrInvalidGuests is returned when a guest count is not a whole number.
	ErrInvalidGuests = errors.New("signup: guests must be a whole number")
	// ErrGuestsOutOfRange is returned alongside ErrInvalid when a guest count
	// is present but outside MinGuests..MaxGuests.
	ErrGuestsOutOfRange = errors.New("signup: guests out of range")
)

// Accepted guest counts per RSVP.
const (
	MinGuests = 1
	MaxGuests = 50
)

// WaitlistRequest is the body of POST /waitlist.
type WaitlistRequest struct {
	Email string `json:"email" validate:"required,contains=@,max=254"`
}

// RSVPRequest is the body of POST /rsvp.
type RSVPRequest struct {
	Name   string     `json:"name" validate:"required,max=200"`
	Guests GuestCount `json:"guests" validate:"required,min=1,max=50"`
}

// Response is the JSON envelope returned by both endpoints.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// GuestCount accepts either a JSON number or a numeric string, since the
// browser form posts every field as a string. Empty values decode to zero.
type GuestCount int

func (g *GuestCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*g = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return g.parse(s)
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGuests, err)
	}
	*g = GuestCount(n)
	return nil
}

// ParseGuestCount parses a form value into a GuestCount.
func ParseGuestCount(s string) (GuestCount, error) {
	var g GuestCount
	err := g.parse(s)
	return g, err
}

func (g *GuestCount) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*g = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGuests, err)
	}
	*g = GuestCount(n)
	return nil
}

// Entry is one accepted waitlist signup as handed to a Recorder.
type Entry struct {
	ID        string
	Email     string
	Timestamp time.Time
	Status    string
	Country   string
	Language  string
}

// RSVPEntry is one accepted RSVP as handed to a Recorder.
type RSVPEntry struct {
	ID        string
	Name      string
	Guests    int
	Timestamp time.Time
	Country   string
}

// Recorder persists accepted submissions. Persistence is advisory: callers
// log failures and still report success to the visitor.
type Recorder interface {
	RecordWaitlist(ctx context.Context, e Entry) error
	RecordRSVP(ctx context.Context, e RSVPEntry) error
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize trims surrounding whitespace before validation.
func (w *WaitlistRequest) Normalize() {
	w.Email = strings.TrimSpace(w.Email)
}

// Validate reports whether the waitlist request carries an email address.
func (w *WaitlistRequest) Validate() error {
	w.Normalize()
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Normalize trims surrounding whitespace before validation.
func (r *RSVPRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

// Validate reports whether the RSVP request has a name and at least one guest.
// When the only problem is a guest count outside the accepted range the error
// also matches ErrGuestsOutOfRange.
func (r *RSVPRequest) Validate() error {
	r.Normalize()
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	if onlyGuestRange(err) {
		return fmt.Errorf("%w: %w: %v", ErrInvalid, ErrGuestsOutOfRange, err)
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}

func onlyGuestRange(err error) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return false
	}
	for _, fe := range verrs {
		if fe.Field() != "Guests" || (fe.Tag() != "min" && fe.Tag() != "max") {
			return false
		}
	}
	return true
}
