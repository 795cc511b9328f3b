package signup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

func TestWaitlistValidate(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{email: "a@b.com", valid: true},
		{email: "  ana@example.pl  ", valid: true},
		{email: "@", valid: true},
		{email: "not-an-email", valid: false},
		{email: "", valid: false},
		{email: "   ", valid: false},
		{email: strings.Repeat("a", 250) + "@b.com", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			req := WaitlistRequest{Email: tt.email}
			err := req.Validate()
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, strings.TrimSpace(tt.email), req.Email)
				return
			}
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestRSVPValidate(t *testing.T) {
	tests := []struct {
		name       string
		req        RSVPRequest
		valid      bool
		outOfRange bool
	}{
		{name: "ok", req: RSVPRequest{Name: "Ana", Guests: 2}, valid: true},
		{name: "trimmed name", req: RSVPRequest{Name: "  Jan ", Guests: 1}, valid: true},
		{name: "empty name", req: RSVPRequest{Name: "", Guests: 2}},
		{name: "blank name", req: RSVPRequest{Name: "  ", Guests: 2}},
		{name: "zero guests", req: RSVPRequest{Name: "Ana"}},
		{name: "negative guests", req: RSVPRequest{Name: "Ana", Guests: -1}, outOfRange: true},
		{name: "too many guests", req: RSVPRequest{Name: "Ana", Guests: 51}, outOfRange: true},
		{name: "max guests", req: RSVPRequest{Name: "Ana", Guests: MaxGuests}, valid: true},
		{name: "too many guests without name", req: RSVPRequest{Guests: 51}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Equal(t, tt.outOfRange, errors.Is(err, ErrGuestsOutOfRange))
		})
	}
}

func TestGuestCountDecoding(t *testing.T) {
	tests := []struct {
		body    string
		want    GuestCount
		wantErr bool
	}{
		{body: `{"guests": 2}`, want: 2},
		{body: `{"guests": "3"}`, want: 3},
		{body: `{"guests": " 4 "}`, want: 4},
		{body: `{"guests": ""}`, want: 0},
		{body: `{"guests": null}`, want: 0},
		{body: `{}`, want: 0},
		{body: `{"guests": "many"}`, wantErr: true},
		{body: `{"guests": 1.5}`, wantErr: true},
		{body: `{"guests": true}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req RSVPRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidGuests)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Guests)
		})
	}
}

func TestParseGuestCount(t *testing.T) {
	g, err := ParseGuestCount("5")
	require.NoError(t, err)
	assert.Equal(t, GuestCount(5), g)

	g, err = ParseGuestCount("")
	require.NoError(t, err)
	assert.Zero(t, g)

	_, err = ParseGuestCount("five")
	assert.ErrorIs(t, err, ErrInvalidGuests)
}

func TestLogRecorderNeverFails(t *testing.T) {
	var r Recorder = LogRecorder{}
	assert.NoError(t, r.RecordWaitlist(context.Background(), Entry{Email: "a@b.com"}))
	assert.NoError(t, r.RecordRSVP(context.Background(), RSVPEntry{Name: "Ana", Guests: 2}))
}

type appendCall struct {
	path   string
	query  string
	values [][]interface{}
}

// fakeSheets serves the values.append endpoint and records each call.
func fakeSheets(t *testing.T, status int) (*httptest.Server, func() []appendCall) {
	t.Helper()
	var mu sync.Mutex
	var calls []appendCall
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var vr struct {
			Values [][]interface{} `json:"values"`
		}
		_ = json.Unmarshal(body, &vr)
		mu.Lock()
		calls = append(calls, appendCall{path: r.URL.Path, query: r.URL.RawQuery, values: vr.Values})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status >= 300 {
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"bad range"}}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)
	return srv, func() []appendCall {
		mu.Lock()
		defer mu.Unlock()
		return append([]appendCall(nil), calls...)
	}
}

func newTestSheets(t *testing.T, url string) *Sheets {
	t.Helper()
	s, err := NewSheets(context.Background(), SheetsConfig{
		SpreadsheetID: "sheet-1",
		WaitlistRange: "Waitlist!A:F",
		RSVPRange:     "RSVP!A:E",
		Timeout:       time.Second,
	}, zap.NewNop(), option.WithEndpoint(url+"/"), option.WithoutAuthentication())
	require.NoError(t, err)
	return s
}

func TestSheetsAppendsRows(t *testing.T) {
	srv, calls := fakeSheets(t, http.StatusOK)
	s := newTestSheets(t, srv.URL)
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordWaitlist(context.Background(), Entry{
		ID: "id-1", Email: "a@b.com", Timestamp: ts, Status: StatusPending, Language: "de",
	}))
	require.NoError(t, s.RecordRSVP(context.Background(), RSVPEntry{
		ID: "id-2", Name: "Ana", Guests: 2, Timestamp: ts, Country: "PL",
	}))

	got := calls()
	require.Len(t, got, 2)

	assert.Contains(t, got[0].path, "/spreadsheets/sheet-1/values/")
	assert.True(t, strings.HasSuffix(got[0].path, ":append"), got[0].path)
	assert.Contains(t, got[0].query, "valueInputOption=USER_ENTERED")
	assert.Equal(t, [][]interface{}{{"a@b.com", "2025-03-01T12:00:00Z", "pending", "unknown", "de", "id-1"}}, got[0].values)

	// JSON numbers decode as float64.
	assert.Equal(t, [][]interface{}{{"Ana", float64(2), "2025-03-01T12:00:00Z", "PL", "id-2"}}, got[1].values)
}

func TestSheetsReportsFailures(t *testing.T) {
	srv, _ := fakeSheets(t, http.StatusBadRequest)
	s := newTestSheets(t, srv.URL)

	err := s.RecordWaitlist(context.Background(), Entry{Email: "a@b.com", Timestamp: time.Now()})
	assert.Error(t, err)
}

func TestNewSheetsRequiresSpreadsheet(t *testing.T) {
	_, err := NewSheets(context.Background(), SheetsConfig{}, nil)
	assert.Error(t, err)
}

func TestSheetsCredentials(t *testing.T) {
	assert.Len(t, SheetsCredentials("", ""), 1)
	assert.Len(t, SheetsCredentials(`{"type":"service_account"}`, "/etc/creds.json"), 2)
	assert.Len(t, SheetsCredentials("", "/etc/creds.json"), 2)
}
